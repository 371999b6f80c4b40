package pf2e

import "encoding/json"

// ShieldInfo tracks a shield's hit points, hardness and raised stance
type ShieldInfo struct {
	maxHP     int
	currentHP int
	hardness  int
	raised    bool
}

// NewShieldInfo creates an undamaged, lowered shield
func NewShieldInfo(maxHP, hardness int) *ShieldInfo {
	return &ShieldInfo{
		maxHP:     maxHP,
		currentHP: maxHP,
		hardness:  hardness,
	}
}

// MaxHP returns the shield's maximum hit points
func (s *ShieldInfo) MaxHP() int { return s.maxHP }

// CurrentHP returns the shield's current hit points
func (s *ShieldInfo) CurrentHP() int { return s.currentHP }

// Hardness returns the flat damage reduction
func (s *ShieldInfo) Hardness() int { return s.hardness }

// Raised reports whether the bearer holds the shield up
func (s *ShieldInfo) Raised() bool { return s.raised }

// Broken reports whether current hit points are at or below half the maximum
func (s *ShieldInfo) Broken() bool {
	return s.currentHP <= s.maxHP/2
}

// Change applies damage or repair. Unless ignoreHardness is set, damage is
// reduced by hardness first and never turns into repair.
func (s *ShieldInfo) Change(delta int, ignoreHardness bool) {
	if !ignoreHardness && delta < 0 {
		delta = min(delta+s.hardness, 0)
	}
	if delta != 0 {
		s.currentHP = max(min(s.currentHP+delta, s.maxHP), 0)
	}
}

// ChangeHardness shifts hardness by delta. Hardness may go negative.
func (s *ShieldInfo) ChangeHardness(delta int) {
	s.hardness += delta
}

// SetRaised sets the raised stance
func (s *ShieldInfo) SetRaised(raised bool) {
	s.raised = raised
}

func (s *ShieldInfo) clone() *ShieldInfo {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

type shieldInfoJSON struct {
	MaxHP     int  `json:"max_hp"`
	CurrentHP int  `json:"current_hp"`
	Hardness  int  `json:"hardness"`
	Raised    bool `json:"raised"`
}

// MarshalJSON implements json.Marshaler
func (s *ShieldInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(shieldInfoJSON{
		MaxHP:     s.maxHP,
		CurrentHP: s.currentHP,
		Hardness:  s.hardness,
		Raised:    s.raised,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (s *ShieldInfo) UnmarshalJSON(data []byte) error {
	var raw shieldInfoJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ShieldInfo{
		maxHP:     raw.MaxHP,
		currentHP: raw.CurrentHP,
		hardness:  raw.Hardness,
		raised:    raw.Raised,
	}
	return nil
}
