package templating

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateDefinition is matched by every
	// DuplicateDefinitionError.
	ErrDuplicateDefinition = errors.New("duplicate definition")

	// ErrUnresolvedPlaceholder is matched by every
	// UnresolvedPlaceholderError.
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

	// ErrInvalidName is returned when a definition name is
	// not made of letters, digits, hyphens and underscores.
	ErrInvalidName = errors.New("invalid definition name")

	// ErrDrift is returned by check runs when a generated
	// file differs from a fresh rendering.
	ErrDrift = errors.New("generated file is out of date")
)

// DuplicateDefinitionError reports a name defined more
// than once. Template is the template identifier or the
// catalogue file where the second definition was found; it
// may be empty for direct table insertions.
type DuplicateDefinitionError struct {
	Template string
	Name     string
}

func (e *DuplicateDefinitionError) Error() string {
	if e.Template == "" {
		return fmt.Sprintf("%s: %q", ErrDuplicateDefinition, e.Name)
	}

	return fmt.Sprintf(
		"%s: %q in %s",
		ErrDuplicateDefinition, e.Name, e.Template,
	)
}

func (e *DuplicateDefinitionError) Unwrap() error {
	return ErrDuplicateDefinition
}

// UnresolvedPlaceholderError reports a placeholder left in
// the expanded text. Cycle holds the reference chain when
// the placeholder is part of a definition cycle.
type UnresolvedPlaceholderError struct {
	Template string
	Token    string
	Cycle    []string
}

func (e *UnresolvedPlaceholderError) Error() string {
	msg := fmt.Sprintf(
		"%s %s in %s",
		ErrUnresolvedPlaceholder, e.Token, e.Template,
	)

	if len(e.Cycle) > 0 {
		msg += fmt.Sprintf(
			" (cycle: %s)", strings.Join(e.Cycle, " -> "),
		)
	}

	return msg
}

func (e *UnresolvedPlaceholderError) Unwrap() error {
	return ErrUnresolvedPlaceholder
}
