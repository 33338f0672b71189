package domain

import (
	"fmt"
)

// AppError is a domain error carrying the numeric code that mirrors the
// HTTP status returned to the client.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by code and message, so errors.Is finds the
// sentinel even after WithError attached a cause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Pre-defined errors
var (
	ErrNoFaceDetected = &AppError{
		Code:    400,
		Message: "No faces found in image.",
	}

	ErrMultipleFaces = &AppError{
		Code:    400,
		Message: "Multiple faces found in image.",
	}

	ErrNoMatch = &AppError{
		Code:    400,
		Message: "No matching face found.",
	}

	ErrMissingLabel = &AppError{
		Code:    400,
		Message: "Label is required.",
	}

	ErrInvalidImage = &AppError{
		Code:    400,
		Message: "Invalid or missing image file.",
	}

	ErrFaceNotFound = &AppError{
		Code:    404,
		Message: "No faces enrolled under this label.",
	}

	ErrStoreWrite = &AppError{
		Code:    500,
		Message: "Failed to persist face encoding.",
	}

	ErrStoreLoad = &AppError{
		Code:    500,
		Message: "Failed to load stored face encodings.",
	}

	ErrRemoteFetch = &AppError{
		Code:    500,
		Message: "Failed to fetch known encodings.",
	}

	ErrConfiguration = &AppError{
		Code:    500,
		Message: "Embedding configuration mismatch.",
	}
)
