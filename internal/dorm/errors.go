package dorm

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyPaid  = errors.New("invoice already paid")
	ErrDuplicate    = errors.New("already exists")
	ErrInvalidInput = errors.New("invalid input")
)
