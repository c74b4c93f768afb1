package models

import "errors"

// Sentinel errors returned by the path resolver and service. Callers match
// them with errors.Is to pick user-facing messages and exit codes.
var (
	ErrCourseExists   = errors.New("course folder already exists")
	ErrCourseNotFound = errors.New("could not find notes folder for course")
	ErrNoteExists     = errors.New("note already exists")
	ErrInvalidCode    = errors.New("invalid course code")
)
