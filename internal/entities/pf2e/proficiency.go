package pf2e

import (
	"fmt"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// ProficiencyLevel is a proficiency rank, ordered Untrained < ... < Legendary
type ProficiencyLevel int

// Proficiency ranks
const (
	Untrained ProficiencyLevel = iota
	Trained
	Expert
	Master
	Legendary
)

var proficiencyLabels = [...]string{
	Untrained: "Untrained",
	Trained:   "Trained",
	Expert:    "Expert",
	Master:    "Master",
	Legendary: "Legendary",
}

// ProficiencyLevels returns every rank in ascending order
func ProficiencyLevels() []ProficiencyLevel {
	return []ProficiencyLevel{Untrained, Trained, Expert, Master, Legendary}
}

// Valid reports whether p is one of the five ranks
func (p ProficiencyLevel) Valid() bool {
	return p >= Untrained && p <= Legendary
}

// String returns the canonical label, which ParseProficiencyLevel accepts
func (p ProficiencyLevel) String() string {
	if !p.Valid() {
		return fmt.Sprintf("ProficiencyLevel(%d)", int(p))
	}
	return proficiencyLabels[p]
}

// Bonus returns the proficiency bonus at the given character level.
// Untrained never scales with level.
func (p ProficiencyLevel) Bonus(level int) int {
	if p == Untrained {
		return 0
	}
	return level + 2*int(p)
}

// ParseProficiencyLevel parses a canonical label. The vocabulary is closed.
func ParseProficiencyLevel(label string) (ProficiencyLevel, error) {
	for i, l := range proficiencyLabels {
		if l == label {
			return ProficiencyLevel(i), nil
		}
	}
	return Untrained, errors.Misconfigured(&ParseError{Kind: "proficiency level", Value: label},
		"invalid proficiency level")
}

// MarshalText implements encoding.TextMarshaler
func (p ProficiencyLevel) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, &ParseError{Kind: "proficiency level", Value: p.String()}
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *ProficiencyLevel) UnmarshalText(text []byte) error {
	level, err := ParseProficiencyLevel(string(text))
	if err != nil {
		return err
	}
	*p = level
	return nil
}
