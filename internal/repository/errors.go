package repository

import "errors"

var (
	ErrNotFound = errors.New("document not found")

	// ErrGoalExceeded is returned when an investment would push a project
	// past its funding goal.
	ErrGoalExceeded = errors.New("funding goal exceeded")

	// ErrAlreadyApplied is returned on a duplicate challenge application.
	ErrAlreadyApplied = errors.New("already applied")
)
