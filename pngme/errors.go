package pngme

import (
	"errors"
	"fmt"
)

// Error types for pngme operations
var (
	// ErrTruncated is returned when a buffer is too short to hold a chunk
	ErrTruncated = &PngError{Code: "TRUNCATED", Message: "chunk data truncated"}

	// ErrLengthMismatch is returned when a chunk's length field disagrees with its byte count
	ErrLengthMismatch = &PngError{Code: "LENGTH_MISMATCH", Message: "chunk length does not match data size"}

	// ErrInvalidChunkType is returned when a chunk carries a malformed type
	ErrInvalidChunkType = &PngError{Code: "INVALID_CHUNK_TYPE", Message: "invalid chunk type"}

	// ErrInvalidByte is returned when a chunk type byte is not an ASCII letter
	ErrInvalidByte = &PngError{Code: "INVALID_BYTE", Message: "chunk type byte is not an ASCII letter"}

	// ErrInvalidLength is returned when chunk type text is not exactly 4 characters
	ErrInvalidLength = &PngError{Code: "INVALID_LENGTH", Message: "chunk type must be exactly 4 characters"}

	// ErrChecksumMismatch is returned when the stored CRC differs from the computed one
	ErrChecksumMismatch = &PngError{Code: "CHECKSUM_MISMATCH", Message: "chunk crc mismatch"}

	// ErrSignatureMismatch is returned when data does not start with the PNG signature
	ErrSignatureMismatch = &PngError{Code: "SIGNATURE_MISMATCH", Message: "png signature mismatch"}

	// ErrUTF8Decode is returned when chunk data is not valid UTF-8
	ErrUTF8Decode = &PngError{Code: "UTF8_DECODE_FAILED", Message: "chunk data is not valid utf-8"}

	// ErrChunkNotFound is returned when no chunk of the requested type exists
	ErrChunkNotFound = &PngError{Code: "CHUNK_NOT_FOUND", Message: "chunk not found"}
)

// PngError represents a structured error in pngme operations
type PngError struct {
	Code    string                 // Error code for programmatic handling
	Message string                 // Human-readable error message
	Cause   error                  // Underlying error, if any
	Details map[string]interface{} // Additional context
}

// Error implements the error interface
func (e *PngError) Error() string {
	if e.Cause != nil {
		if len(e.Details) > 0 {
			return fmt.Sprintf("[%s] %s (details: %v): %v", e.Code, e.Message, e.Details, e.Cause)
		}
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	if len(e.Details) > 0 {
		return fmt.Sprintf("[%s] %s (details: %v)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *PngError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a PngError with the same code, so that
// errors derived with WithDetail or WithCause still match their sentinel.
func (e *PngError) Is(target error) bool {
	t, ok := target.(*PngError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause adds a cause to the error
func (e *PngError) WithCause(cause error) *PngError {
	return &PngError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   cause,
		Details: e.Details,
	}
}

// WithDetail adds a detail key-value pair to the error
func (e *PngError) WithDetail(key string, value interface{}) *PngError {
	details := make(map[string]interface{})
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &PngError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Details: details,
	}
}

// NewChunkNotFoundError creates a chunk not found error
func NewChunkNotFoundError(chunkType string) error {
	return ErrChunkNotFound.WithDetail("chunkType", chunkType)
}

// NewChecksumMismatchError creates a checksum mismatch error
func NewChecksumMismatchError(chunkType ChunkType, want, got uint32) error {
	return ErrChecksumMismatch.
		WithDetail("chunkType", chunkType.String()).
		WithDetail("stored", fmt.Sprintf("0x%08x", want)).
		WithDetail("computed", fmt.Sprintf("0x%08x", got))
}

// NewLengthMismatchError creates a length mismatch error
func NewLengthMismatchError(declared uint32, actual int) error {
	return ErrLengthMismatch.
		WithDetail("declared", declared).
		WithDetail("actual", actual)
}

// NewInvalidChunkTypeError creates an invalid chunk type error
func NewInvalidChunkTypeError(cause error) error {
	return ErrInvalidChunkType.WithCause(cause)
}

// IsPngError checks if an error is or wraps a PngError
func IsPngError(err error) bool {
	var pngErr *PngError
	return errors.As(err, &pngErr)
}

// GetErrorCode extracts the error code of the first PngError in err's chain
func GetErrorCode(err error) string {
	var pngErr *PngError
	if errors.As(err, &pngErr) {
		return pngErr.Code
	}
	return ""
}
