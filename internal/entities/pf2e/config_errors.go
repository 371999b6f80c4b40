package pf2e

import "fmt"

// UnknownNameError reports a Save or Skill name outside the closed vocabulary
type UnknownNameError struct {
	Type       ProficiencyType
	Name       string
	Suggestion string
}

func (e *UnknownNameError) Error() string {
	msg := fmt.Sprintf("%s %q does not exist", e.Type, e.Name)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// MissingAttributeError reports a required attribute the character lacks
type MissingAttributeError struct {
	ID  string
	For string
}

func (e *MissingAttributeError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s has no governing attribute", e.For)
	}
	return fmt.Sprintf("%s expects a %q attribute to be set", e.For, e.ID)
}

// MissingStatError reports a required calculated stat the character lacks
type MissingStatError struct {
	Name string
	For  string
}

func (e *MissingStatError) Error() string {
	return fmt.Sprintf("%s expects a %q proficiency", e.For, e.Name)
}

// ParseError reports a label outside a closed textual vocabulary
type ParseError struct {
	Kind  string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unrecognized %s %q", e.Kind, e.Value)
}

// AttributeListError reports a persisted attribute list of the wrong length
type AttributeListError struct {
	Got int
}

func (e *AttributeListError) Error() string {
	return fmt.Sprintf("expected %d attributes, got %d", AttributeCount, e.Got)
}
