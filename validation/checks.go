package validation

import "fmt"

// Checks collects failures of checks that struct tags cannot express,
// such as conditions spanning several fields.
type Checks struct {
	fields []FieldError
}

// New starts an empty set of checks.
func New() *Checks { return &Checks{} }

// Custom records message for field unless ok holds.
func (c *Checks) Custom(ok bool, field, message string) *Checks {
	if !ok {
		c.fields = append(c.fields, FieldError{Field: field, Message: message})
	}
	return c
}

// Min records a failure when value is below least.
func (c *Checks) Min(field string, value, least int) *Checks {
	return c.Custom(value >= least, field, fmt.Sprintf("must be at least %d", least))
}

// Failed returns the failures recorded so far.
func (c *Checks) Failed() []FieldError { return c.fields }

// Err returns nil, or one INVALID_INPUT error listing every failure.
func (c *Checks) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return invalid(c.fields)
}
