package apperrors

import (
	"errors"
	"fmt"
)

// Authentication and authorization errors
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInsufficientRole is returned when a caller's role does not permit the
	// requested field set (e.g. a course leader editing master fields).
	ErrInsufficientRole = errors.New("insufficient role for this operation")

	// ErrNotParticipant is returned when a course leader targets a student that
	// neither lists nor desires the leader's course. The message is deliberately
	// generic so the caller learns nothing about the student's actual courses.
	ErrNotParticipant = errors.New("not permitted")
)

// Roster errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrValidationFailed   = errors.New("validation failed")
	ErrStorageUnavailable = errors.New("roster storage unavailable")

	// ErrCourseLimitExceeded is the sentinel behind CourseLimitError.
	ErrCourseLimitExceeded = errors.New("course limit exceeded")
)

// ValidationError reports the first offending field of a malformed payload.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap makes errors.Is(err, ErrValidationFailed) hold for ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a ValidationError for a single field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// CourseLimitError reports a rejected write that would push the distinct course
// catalog past the allowed maximum. Attempted is the prospective catalog size.
type CourseLimitError struct {
	Attempted int
	Limit     int
}

// Error implements error interface
func (e *CourseLimitError) Error() string {
	return fmt.Sprintf("course limit exceeded: %d distinct courses, at most %d allowed", e.Attempted, e.Limit)
}

// Unwrap makes errors.Is(err, ErrCourseLimitExceeded) hold for CourseLimitError.
func (e *CourseLimitError) Unwrap() error {
	return ErrCourseLimitExceeded
}

// NewCourseLimitError creates a CourseLimitError with the attempted and allowed counts
func NewCourseLimitError(attempted, limit int) *CourseLimitError {
	return &CourseLimitError{Attempted: attempted, Limit: limit}
}
