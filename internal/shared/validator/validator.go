package validator

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"restaurant-catalog/internal/shared/apperror"
)

const ValidationFailed = "Validation failed"

// Field binds a JSON field name to a value and its rules.
type Field struct {
	name  string
	value interface{}
	rules []validation.Rule
}

func F(name string, value interface{}, rules ...validation.Rule) Field {
	return Field{name: name, value: value, rules: rules}
}

// Check runs every rule of every field, unlike validation.ValidateStruct which stops at the first
// failing rule per field. Messages of one field are joined with a space in rule order.
// Returns nil or an *apperror.Error of KindValidation.
func Check(fields ...Field) error {
	errs := map[string]string{}

	for _, f := range fields {
		var msgs []string
		for _, rule := range f.rules {
			if err := validation.Validate(f.value, rule); err != nil {
				msgs = append(msgs, err.Error())
			}
		}
		if len(msgs) > 0 {
			errs[f.name] = strings.Join(msgs, " ")
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return apperror.Validation(ValidationFailed, errs)
}

// NotBlank rejects empty and whitespace-only strings.
func NotBlank(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		v, _ := validation.Indirect(value)
		s, _ := v.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_not_blank", message)
		}
		return nil
	})
}

// MaxRunes limits the length in characters, not bytes.
func MaxRunes(max int, message string) validation.Rule {
	return validation.RuneLength(0, max).Error(message)
}
