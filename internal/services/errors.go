package services

import "errors"

var (
	// ErrUnknownAction means a caller passed an action type that has no
	// configured point value. Caller bug, never user input.
	ErrUnknownAction = errors.New("unknown point action type")

	// ErrUnknownBadge means a caller passed a badge ID with no definition.
	ErrUnknownBadge = errors.New("unknown badge")

	ErrCourseNotFound = errors.New("course not found")
	ErrInvalidModule  = errors.New("invalid module index for course")
)
