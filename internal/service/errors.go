package service

import "errors"

var (
	// ErrValidation indicates rejected input (blank title, empty credentials, unknown priority).
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateEmail is returned when registering an email that already has a record.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTaskNotFound is returned when an operation targets a missing task id.
	ErrTaskNotFound = errors.New("task not found")
)
