package util

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateSubmission = errors.New("already submitted for this day")
	ErrInvalidTaskNumber   = errors.New("invalid or already used task number")
	ErrTaskPoolExhausted   = errors.New("all tasks have been completed")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrPreviewMode         = errors.New("cannot submit in preview mode")
)

// WordCountError reports an answer outside the configured word-count bounds.
type WordCountError struct {
	Count int
	Min   int
	Max   int
}

func (e *WordCountError) Error() string {
	return fmt.Sprintf("review must be between %d and %d words, got %d", e.Min, e.Max, e.Count)
}
