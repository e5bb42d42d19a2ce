package grid

import (
	"errors"
	"fmt"
)

var (
	ErrMalformed   = errors.New("malformed clue")
	ErrDuplicate   = errors.New("duplicate clue id")
	ErrOutOfBounds = errors.New("clue exceeds grid bounds")
	ErrConflict    = errors.New("conflicting letters at crossing")
)

// LayoutError describes why a clue could not be placed.
type LayoutError struct {
	Kind   error
	ClueID string
	Msg    string
}

func (e *LayoutError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: clue %q", e.Kind.Error(), e.ClueID)
	}
	return fmt.Sprintf("%s: clue %q: %s", e.Kind.Error(), e.ClueID, e.Msg)
}

func (e *LayoutError) Unwrap() error { return e.Kind }

func layoutErr(kind error, id, format string, args ...any) *LayoutError {
	return &LayoutError{Kind: kind, ClueID: id, Msg: fmt.Sprintf(format, args...)}
}

// Issues unpacks the individual layout errors from a Build error.
func Issues(err error) []*LayoutError {
	if err == nil {
		return nil
	}
	var out []*LayoutError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, Issues(e)...)
		}
		return out
	}
	var le *LayoutError
	if errors.As(err, &le) {
		out = append(out, le)
	}
	return out
}
