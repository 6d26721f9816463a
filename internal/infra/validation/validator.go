// Package validation builds the shared validator and turns its errors into the
// service's field-error payload.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	authErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	"github.com/go-playground/validator/v10"
)

// New returns a validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(JSONTagName)
	_ = v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	return v
}

// JSONTagName reports fields by their json name so errors match the request body.
func JSONTagName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// StrongPassword requires at least 8 characters with a lowercase letter,
// an uppercase letter, a digit and a symbol.
func StrongPassword(pwd string) bool {
	if utf8.RuneCountInString(pwd) < 8 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range pwd {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

// Struct validates s and converts failures into an ErrInvalidArgument-compatible error.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return authErrors.NewInvalidArgument(err.Error())
	}
	fields := make([]authErrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, authErrors.FieldError{
			Param:    fe.Field(),
			Msg:      message(fe),
			Location: "body",
		})
	}
	return authErrors.NewValidation(fields)
}

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "name":
		return "name must be between 2 and 40 characters"
	case "email":
		return "invalid email"
	case "password":
		if fe.Tag() == "strongpwd" {
			return "weak password"
		}
		return "password is required"
	case "value":
		return "value is out of the allowed range"
	case "description":
		return "description is too long"
	}
	return fe.Field() + " failed on " + fe.Tag()
}
