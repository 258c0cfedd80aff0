package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a resource or a configuration is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrEmptyPool is returned when drawing from a resampling pool without entries.
	ErrEmptyPool = errors.New("empty pool")
)
