package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/recskit/errors"
)

// FieldError is one failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalid folds field errors into one INVALID_INPUT error listing them all.
func invalid(fields []FieldError) *errors.AppError {
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return errors.Validation(strings.Join(msgs, "; ")).WithDetail("fields", fields)
}

var structs = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	return v
})

// fieldName reports a field by its json or mapstructure name, falling back
// to the snake_case Go name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "mapstructure"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			break
		}
		if name != "" {
			return name
		}
	}
	return snakeCase(f.Name)
}

// Validate checks s against its `validate` struct tags.
func Validate(s any) error {
	err := structs().Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !stderrors.As(err, &ves) {
		return errors.Validation(err.Error())
	}
	fields := make([]FieldError, len(ves))
	for i, fe := range ves {
		fields[i] = FieldError{Field: fe.Field(), Message: message(fe)}
	}
	return invalid(fields)
}

var messages = map[string]func(validator.FieldError) string{
	"required": func(validator.FieldError) string { return "is required" },
	"min": func(fe validator.FieldError) string {
		if fe.Kind() == reflect.Slice {
			return "needs at least " + fe.Param() + " value(s)"
		}
		return "must be at least " + fe.Param()
	},
	"gte":   func(fe validator.FieldError) string { return "must be at least " + fe.Param() },
	"gt":    func(fe validator.FieldError) string { return "must be greater than " + fe.Param() },
	"lte":   func(fe validator.FieldError) string { return "must be at most " + fe.Param() },
	"oneof": func(fe validator.FieldError) string { return "must be one of: " + fe.Param() },
}

func message(fe validator.FieldError) string {
	if m, ok := messages[fe.Tag()]; ok {
		return m(fe)
	}
	return "is invalid"
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
