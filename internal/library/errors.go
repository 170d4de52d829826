package library

import (
	"fmt"
	"net/http"

	"LIBRARY_BACK-END/internal/dto"
)

// Error is a failure the HTTP layer can show to the client as is
type Error struct {
	Status  int
	Message string
	Details *dto.ErrorDetails
}

func (e *Error) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%d %s: %s: %s", e.Status, e.Message, e.Details.Field, e.Details.Error)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func newError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func (e *Error) with(field, reason string) *Error {
	e.Details = &dto.ErrorDetails{Field: field, Error: reason}
	return e
}

func errUnauthorized() *Error {
	return newError(http.StatusUnauthorized, "Unauthorized")
}

func errInvalidBookID(status int) *Error {
	return newError(status, "Book not found").with("id", "Invalid Book ID")
}

func errUserNotFound() *Error {
	return newError(http.StatusNotFound, "User not found")
}
