package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/taskloop/todo-system/internal/core/domain"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Failures are returned as *domain.ValidationError so the central error
// handler can render field-level detail in the envelope's errors array.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()

	// Report fields by their JSON name, not the Go struct field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// username: letters, digits and underscores only.
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})

	// password: at least one lowercase letter, one uppercase letter, one digit.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var lower, upper, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLower(r):
				lower = true
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return lower && upper && digit
	})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]domain.FieldError, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, domain.FieldError{
					Field:   fe.Field(),
					Message: fieldError(fe),
				})
			}
			return domain.NewValidationError(fields...)
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "please provide a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
	case "username":
		return "username can only contain letters, numbers, and underscores"
	case "password":
		return "password must contain at least one lowercase letter, one uppercase letter, and one number"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
