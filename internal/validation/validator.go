package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"shopdesk/internal/models"
)

// FieldErrors maps a JSON field name to a user-facing message. It is shown
// inline next to the offending form field.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsFieldErrors reports whether err carries field errors.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return strings.TrimSpace(value) != ""
	})

	v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := time.Parse("2006-01-02", value)
		return err == nil
	})

	v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return len(PasswordProblems(value)) == 0
	})

	v.RegisterValidation("producttype", func(fl validator.FieldLevel) bool {
		switch value := fl.Field().Interface().(type) {
		case models.ProductType:
			return value.Valid()
		case string:
			return models.ProductType(value).Valid()
		}
		return false
	})

	return &Validator{v: v}
}

func validationErrors(err error) validator.ValidationErrors {
	if err == nil {
		return nil
	}
	if ve, ok := err.(validator.ValidationErrors); ok {
		return ve
	}
	return nil
}

// Check validates s and converts failures into FieldErrors. The first
// failing rule of each field wins.
func (v *Validator) Check(s interface{}) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	ve := validationErrors(err)
	if ve == nil {
		return err
	}
	out := make(FieldErrors, len(ve))
	for _, fe := range ve {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email"
	case "date":
		return "must be a date (YYYY-MM-DD)"
	case "strongpassword":
		return "must be at least 6 characters long with an uppercase letter and a number"
	case "producttype":
		return "must be one of glass, frame, completeunit"
	case "numeric":
		return "must be a number"
	case "alphanum":
		return "must contain only letters and digits"
	case "eqfield":
		return "does not match"
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "is invalid"
}

// PasswordProblems lists every rule a new password breaks.
func PasswordProblems(password string) []string {
	var problems []string
	if len([]rune(password)) < 6 {
		problems = append(problems, "Password must be at least 6 characters long.")
	}
	var upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r) && r <= unicode.MaxASCII:
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper {
		problems = append(problems, "Password must have at least one uppercase letter.")
	}
	if !digit {
		problems = append(problems, "Password must have at least one number.")
	}
	return problems
}
