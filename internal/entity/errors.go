package entity

import (
	"errors"
	"fmt"
)

var (
	// Image errors
	ErrImageNotFound = errors.New("image not found")
	ErrEmptyUpdate   = errors.New("no fields to update")

	// Category errors
	ErrCategoryNotFound = errors.New("category not found")

	// Client-side validation errors
	ErrNoValidFiles   = errors.New("no valid image files selected")
	ErrEmptySelection = errors.New("no rows selected")
	ErrNothingStaged  = errors.New("no files staged for upload")

	// Edit state machine errors
	ErrRowNotEditing   = errors.New("row is not in edit mode")
	ErrRowBusy         = errors.New("row edit already in progress")
	ErrRowNotRendered  = errors.New("row is not rendered on the current page")
	ErrInvalidPageSize = errors.New("page size is not one of the allowed values")
)

// CategoryInUseError rejects a category deletion while images still
// reference it.
type CategoryInUseError struct {
	Count int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("category is referenced by %d image(s)", e.Count)
}

// APIError is a structured failure reported by the remote collaborator.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}
