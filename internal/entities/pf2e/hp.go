package pf2e

import "encoding/json"

// HpInfo is one hit point pool, for the character or its mount.
//
// max = ancestry + (class + con) * level. Current stays within [0, max]
// after any change; temp is never negative.
type HpInfo struct {
	ancestryHP int
	classHP    int
	maxHP      int
	currentHP  int
	tempHP     int
}

// NewHpInfo creates a full pool for the given level and constitution
func NewHpInfo(ancestryHP, classHP, level, con int) *HpInfo {
	h := &HpInfo{
		ancestryHP: ancestryHP,
		classHP:    classHP,
	}
	h.RecomputeMax(level, con)
	h.currentHP = h.maxHP
	return h
}

// AncestryHP returns the fixed ancestry contribution
func (h *HpInfo) AncestryHP() int { return h.ancestryHP }

// ClassHP returns the fixed per-level class contribution
func (h *HpInfo) ClassHP() int { return h.classHP }

// MaxHP returns the maximum hit points
func (h *HpInfo) MaxHP() int { return h.maxHP }

// CurrentHP returns the current hit points
func (h *HpInfo) CurrentHP() int { return h.currentHP }

// TempHP returns the temporary hit points
func (h *HpInfo) TempHP() int { return h.tempHP }

// RecomputeMax sets the maximum for the level and constitution. Current
// hit points are left alone and may exceed the new maximum.
func (h *HpInfo) RecomputeMax(level, con int) int {
	h.maxHP = h.ancestryHP + (h.classHP+con)*level
	return h.maxHP
}

// SetTemp overwrites temporary hit points; they do not stack
func (h *HpInfo) SetTemp(value int) {
	h.tempHP = max(value, 0)
}

// Change applies damage (negative) or healing (positive). Damage drains
// temporary hit points first and only the remainder reaches current.
func (h *HpInfo) Change(delta int) {
	change := delta
	if h.tempHP > 0 && delta < 0 {
		h.tempHP += delta
		change = min(h.tempHP, 0)
		h.tempHP = max(h.tempHP, 0)
	}
	if change != 0 {
		h.currentHP = max(min(h.currentHP+change, h.maxHP), 0)
	}
}

func (h *HpInfo) clone() *HpInfo {
	if h == nil {
		return nil
	}
	c := *h
	return &c
}

type hpInfoJSON struct {
	AncestryHP int `json:"ancestry_hp"`
	ClassHP    int `json:"class_hp"`
	MaxHP      int `json:"max_hp"`
	CurrentHP  int `json:"current_hp"`
	TempHP     int `json:"temp_hp"`
}

// MarshalJSON implements json.Marshaler
func (h *HpInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(hpInfoJSON{
		AncestryHP: h.ancestryHP,
		ClassHP:    h.classHP,
		MaxHP:      h.maxHP,
		CurrentHP:  h.currentHP,
		TempHP:     h.tempHP,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Values are taken verbatim.
func (h *HpInfo) UnmarshalJSON(data []byte) error {
	var raw hpInfoJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*h = HpInfo{
		ancestryHP: raw.AncestryHP,
		classHP:    raw.ClassHP,
		maxHP:      raw.MaxHP,
		currentHP:  raw.CurrentHP,
		tempHP:     raw.TempHP,
	}
	return nil
}
