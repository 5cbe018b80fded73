package services

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/go-playground/validator/v10"
)

// ValidationError reports the first form field that failed validation.
// It matches common.ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return common.ErrValidation }

var validate = validator.New(validator.WithRequiredStructEnabled())

type registrationForm struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=3"`
	Password string `validate:"required,min=6"`
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type profileForm struct {
	Username string `validate:"omitempty,min=3"`
	Password string `validate:"omitempty,min=6"`
}

var fieldMessages = map[string]string{
	"Email":    "Please enter a valid email address.",
	"Username": "Username must be at least 3 characters.",
	"Password": "Password must be at least 6 characters.",
}

func validateRegistration(email, username, password string) error {
	return check(registrationForm{
		Email:    strings.TrimSpace(email),
		Username: strings.TrimSpace(username),
		Password: password,
	})
}

func validateLogin(email, password string) error {
	return check(loginForm{Email: strings.TrimSpace(email), Password: password})
}

func validateProfile(username, password string) error {
	return check(profileForm{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
	})
}

func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	field := fieldErrs[0].Field()
	msg, ok := fieldMessages[field]
	if !ok {
		msg = field + " is invalid."
	}
	return &ValidationError{Field: field, Message: msg}
}
