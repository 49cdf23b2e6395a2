package repository

import "errors"

var (
	// ErrRunNotFound indicates no run record exists for the given id.
	ErrRunNotFound = errors.New("run record not found")

	// ErrRepositoryUnavailable indicates the repository is unavailable.
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)
