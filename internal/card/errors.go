package card

import "fmt"

// InputShapeError reports a deck whose card list is missing or malformed.
type InputShapeError struct {
	Source string // deck file or identifier, may be empty
	Index  int    // zero-based card index, -1 when the whole list is at fault
	Reason string
}

func (e *InputShapeError) Error() string {
	where := "deck"
	if e.Source != "" {
		where = e.Source
	}
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", where, e.Reason)
	}
	return fmt.Sprintf("%s: card %d: %s", where, e.Index, e.Reason)
}

// SubstitutionError reports a description that could not be resolved
// against the variable context.
type SubstitutionError struct {
	Index       int
	Type        string
	Placeholder string // set when a named variable is missing
	Err         error  // set when the description does not parse
}

func (e *SubstitutionError) Error() string {
	if e.Placeholder != "" {
		return fmt.Sprintf("card %d (%s): description references unknown variable %q", e.Index, e.Type, e.Placeholder)
	}
	return fmt.Sprintf("card %d (%s): invalid description template: %v", e.Index, e.Type, e.Err)
}

func (e *SubstitutionError) Unwrap() error { return e.Err }
