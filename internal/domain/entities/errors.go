package entities

import "errors"

// Domain errors
var (
	// Meeting errors
	ErrMeetingNotFound = errors.New("meeting not found")

	// Action item errors
	ErrActionItemNotFound = errors.New("action item not found")

	// Transcript validation errors
	ErrEmptyTranscript   = errors.New("transcript cannot be empty")
	ErrTranscriptTooLong = errors.New("transcript too long")

	// Persisted-record errors
	ErrCorruptRecord = errors.New("stored record failed to decode")
)
