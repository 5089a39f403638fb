package service

import (
	"errors"
	"fmt"
)

// ValidationError marks a user-correctable failure: empty input, an unknown
// status/category name, a duplicate username, wrong credentials, or an
// ownership miss. Front ends print the message and keep the loop going;
// every other error is a system error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is user-correctable.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
