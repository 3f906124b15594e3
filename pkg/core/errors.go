package core

import "errors"

// Common errors.
var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidLocation = errors.New("invalid location")
	ErrNotFound        = errors.New("not found")
	ErrNoPin           = errors.New("no pin recorded")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrCategoryExists  = errors.New("category already exists")
)
