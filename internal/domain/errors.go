package domain

import "errors"

// Domain errors
var (
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrTempFile          = errors.New("temporary file error")
	ErrTextExtraction    = errors.New("text extraction failed")
	ErrResumeNotFound    = errors.New("resume not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrFileTooLarge      = errors.New("file too large")
)

// AI extraction errors. These never reach HTTP callers; the orchestrator
// falls back to pattern extraction when any of them occurs.
var (
	ErrNoModelAvailable     = errors.New("no generative model available")
	ErrModelCall            = errors.New("generative model call failed")
	ErrResponseParse        = errors.New("model response is not valid JSON")
	ErrInvalidResponseShape = errors.New("model response has an invalid shape")
)
