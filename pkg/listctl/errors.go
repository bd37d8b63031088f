package listctl

import "errors"

var (
	// ErrBusy is returned for operations rejected while a refresh is in flight.
	ErrBusy = errors.New("listctl: collection is loading")
	// ErrInvalidState is returned when the collection has never been loaded.
	ErrInvalidState = errors.New("listctl: collection not loaded")
	ErrNotEditing   = errors.New("listctl: no draft is open")
	ErrNotFound     = errors.New("listctl: entity not found")
	ErrReadOnly     = errors.New("listctl: entity type cannot be edited")
	// ErrDraftMismatch is returned when the open draft belongs to another entity.
	ErrDraftMismatch = errors.New("listctl: another entity is being edited")
)

// ValidationError reports a draft rejected before any network call.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func asValidationError(err error) *ValidationError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return &ValidationError{Message: userMessage(err, err.Error()), Err: err}
}

// userMessager is implemented by remote errors that carry text supplied by
// the service for display.
type userMessager interface {
	UserMessage() string
}

// userMessage returns the service-supplied text of err, or fallback.
func userMessage(err error, fallback string) string {
	var um userMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
