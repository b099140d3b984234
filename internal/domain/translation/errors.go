package translation

import "errors"

// Domain errors for translation jobs

var (
	ErrInvalidContentType    = errors.New("content type must be recipe or newsletter")
	ErrMissingContentID      = errors.New("content id is required")
	ErrMissingTargetLanguage = errors.New("target language is required")

	// State transition errors
	ErrNotPending    = errors.New("job is not pending")
	ErrNotProcessing = errors.New("job is not processing")
	ErrJobNotFound   = errors.New("translation job not found")
)
