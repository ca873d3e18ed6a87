package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxRawLen bounds the undecodable upstream body echoed back in a ShapeError.
const MaxRawLen = 512

var (
	ErrMissingFeeling    = errors.New(`Missing "feeling"`)
	ErrMethodNotAllowed  = errors.New("Method not allowed")
	ErrEmptyModelOutput  = errors.New("Empty response from model")
	ErrUnreadableOutput  = errors.New("Unreadable response from model")
	ErrUpstreamTimeout   = errors.New("upstream request timed out")
	ErrUpstreamTransport = errors.New("upstream request failed")
)

// ConfigError reports a server setting that is required to serve requests
// but was not provided.
type ConfigError struct {
	Setting string
}

func (e *ConfigError) Error() string {
	return "Server missing " + e.Setting
}

// UpstreamError is a failure reported by the generation API itself.
// Status is the HTTP status to relay to the caller.
type UpstreamError struct {
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ShapeError means the upstream call succeeded but nothing usable came back.
// Raw carries what the model returned, if anything.
type ShapeError struct {
	Message string
	Raw     string
	Err     error
}

func (e *ShapeError) Error() string { return e.Message }

func (e *ShapeError) Unwrap() error { return e.Err }

// UnreadableOutput reports an upstream body that could not be decoded,
// keeping at most MaxRawLen bytes of it.
func UnreadableOutput(body []byte, err error) *ShapeError {
	return &ShapeError{
		Message: ErrUnreadableOutput.Error(),
		Raw:     truncateRaw(string(body)),
		Err:     errors.Join(ErrUnreadableOutput, err),
	}
}

// truncateRaw cuts s to MaxRawLen bytes without splitting a rune.
func truncateRaw(s string) string {
	if len(s) <= MaxRawLen {
		return s
	}
	n := MaxRawLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
