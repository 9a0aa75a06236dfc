package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected by a service
	ErrValidation = errors.New("validation failed")

	// ErrTrainingFailed is returned when an explicit training run fails
	ErrTrainingFailed = errors.New("risk model training failed")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
