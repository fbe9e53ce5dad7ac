// Package validate checks user-entered form data before it reaches the
// backend, mirroring the server-side rules so obviously bad input fails
// fast with a field-level message.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hygieia-health/hygieia-cli/internal/common"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// SignupForm is the account-creation input.
type SignupForm struct {
	Name            string `validate:"required,min=2"`
	Email           string `validate:"required,email"`
	Phone           string `validate:"required,min=10"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// LoginForm is the sign-in input.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// PasswordChangeForm is the change-password input.
type PasswordChangeForm struct {
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required,min=6,nefield=CurrentPassword"`
}

// BookingForm is the appointment-booking input.
type BookingForm struct {
	DoctorID string `validate:"required"`
	Date     string `validate:"required,datetime=2006-01-02"`
	Slot     string `validate:"required"`
	Type     string `validate:"required,oneof=video audio chat in-person"`
}

// Struct validates s and converts any violation into a single
// user-readable error wrapping common.ErrValidation.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %s", common.ErrValidation, err.Error())
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must look like %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
