package types

import "fmt"

// ValidationError reports a selection that cannot be settled as submitted,
// such as a pick outside its market's vocabulary or a missing line.
type ValidationError struct {
	Market Market // Market the value was checked against
	Field  string // "pick", "line" or "team"
	Value  string // Offending input, empty when the field was missing
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: invalid %s %q: %s", e.Market, e.Field, e.Value, e.Reason)
	}

	return fmt.Sprintf("%s: %s %s", e.Market, e.Field, e.Reason)
}
