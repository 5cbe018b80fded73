package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/services"
)

func userMessage(err error) string {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, common.ErrDuplicateEmail):
		return "This email is already registered."
	case errors.Is(err, common.ErrNoUsers):
		return "No users found. Please create an account first."
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Email or password is incorrect."
	case errors.Is(err, common.ErrNoSession):
		return "Please log in first."
	case errors.Is(err, common.ErrNotFound):
		return "Note not found."
	case errors.Is(err, common.ErrStorage):
		return "Something went wrong while saving your data."
	case errors.Is(err, context.DeadlineExceeded):
		return "The operation took too long. Please try again."
	default:
		return "Error: " + err.Error()
	}
}
