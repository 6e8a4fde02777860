package service

import "errors"

var (
	// ErrNotFound means the named group or event does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the supplied group password did not match.
	ErrUnauthorized = errors.New("wrong password")

	// ErrAlreadyExists means a group with that name already exists.
	ErrAlreadyExists = errors.New("group already exists")
)
