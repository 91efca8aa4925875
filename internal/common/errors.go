package common

import (
	"errors"
	"fmt"
)

var (
	// boundary errors mapped by the remote store client
	ErrTransport = errors.New("remote store unreachable")
	ErrProtocol  = errors.New("unexpected remote store response")
	ErrNotFound  = errors.New("not found")

	// synchronizer errors
	ErrValidation     = errors.New("validation error")
	ErrNotOwner       = errors.New("tribute belongs to a different visitor")
	ErrSubmitInFlight = errors.New("a submission is already in progress")
)

// RejectedError is returned when the remote store explicitly refused a
// submission. Message carries the store's own text and is shown to the
// submitter verbatim.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("tribute rejected: %s", e.Message)
}
