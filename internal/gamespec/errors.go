package gamespec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("invalid game spec")
	ErrInvariant     = errors.New("world invariant violated")
	ErrWorldNotEmpty = errors.New("target world is not empty")
)

// ValidationError reports a structurally malformed spec: a missing required
// key or a value of the wrong JSON type. Nothing is written to the target
// World when one is returned.
type ValidationError struct {
	// EntityIndex is the position in "entities", or -1 outside of it.
	EntityIndex int
	EntityName  string
	Component   string
	Field       string
	Path        string
	Reason      string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid game spec at ")
	b.WriteString(e.Path)
	if e.EntityName != "" {
		fmt.Fprintf(&b, " (entity %q)", e.EntityName)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InvariantError is a serializer fault: the World holds state that has no
// GameSpec encoding, such as an asset id missing from the registry.
type InvariantError struct {
	Entity    string
	Component string
	Err       error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("serialize entity %q component %s: %v", e.Entity, e.Component, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

func (e *InvariantError) Is(target error) bool { return target == ErrInvariant }

// WarningKind classifies a recovered problem.
type WarningKind uint8

const (
	// WarnUnknownValue: a well-typed value was not recognized (enum string,
	// field key, malformed color) and a default was used.
	WarnUnknownValue WarningKind = iota
	// WarnUnknownComponent: a component key this version does not know.
	WarnUnknownComponent
	// WarnDuplicateEntityName: an earlier entity with the same name was dropped.
	WarnDuplicateEntityName
	WarnMissingName
	WarnNewerVersion
)

var warningKindNames = [...]string{
	WarnUnknownValue:        "unknown_value",
	WarnUnknownComponent:    "unknown_component",
	WarnDuplicateEntityName: "duplicate_entity_name",
	WarnMissingName:         "missing_name",
	WarnNewerVersion:        "newer_version",
}

func (k WarningKind) String() string {
	if int(k) < len(warningKindNames) {
		return warningKindNames[k]
	}
	return fmt.Sprintf("warning(%d)", k)
}

type Warning struct {
	Kind   WarningKind
	Path   string
	Detail string
}

func (w Warning) String() string { return fmt.Sprintf("%s: %s: %s", w.Path, w.Kind, w.Detail) }

// Report summarizes a successful decode.
type Report struct {
	Entities int
	Warnings []Warning
}
