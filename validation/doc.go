// Package validation checks parsed operation options and configuration.
//
// Options declared as plain structs are checked through their `validate`
// tags; conditions spanning several fields go through Checks. Both report
// one INVALID_INPUT error listing every failed field.
//
//	type sortOptions struct {
//	    Keys    sorts.Chain `validate:"min=1"`
//	    Partial int         `validate:"gte=0"`
//	}
//	err := validation.Validate(o)
//
//	err = validation.New().
//	    Custom(!enabled || endpoint != "", "endpoint", "is required when enabled").
//	    Err()
package validation
