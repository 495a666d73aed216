package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	failurePrefix = "Analysis failed"

	// GenericMessage is shown when the service could not be reached at all
	GenericMessage = "An unexpected error occurred. Please try again."
	// MalformedMessage is shown when a success response could not be decoded
	MalformedMessage = failurePrefix + ": could not read the analysis response"

	maxBodyPreview = 200
)

// Error is the single failure shape surfaced to callers. Message is meant
// for display as-is; Err keeps the underlying cause for logs.
type Error struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// Message returns the display text for any error returned by the client.
// Errors that did not come from the client collapse to GenericMessage.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericMessage
}

// parseAPIError extracts a human-readable message from a non-2xx response.
// It prefers a JSON "detail" field, then the raw body text, then a message
// naming the status code.
func parseAPIError(statusCode int, body []byte) *Error {
	if detail := parseDetail(body); detail != "" {
		return &Error{
			Message:    fmt.Sprintf("%s: %s", failurePrefix, detail),
			StatusCode: statusCode,
		}
	}

	text := strings.TrimSpace(string(body))
	if text != "" {
		text = runewidth.Truncate(text, maxBodyPreview, "...")
		return &Error{
			Message:    fmt.Sprintf("%s: %s", failurePrefix, text),
			StatusCode: statusCode,
		}
	}

	return &Error{
		Message:    fmt.Sprintf("%s: server returned status %d", failurePrefix, statusCode),
		StatusCode: statusCode,
	}
}

// parseDetail reads the "detail" field of an error body. The service sends
// either a string or a list of validation errors with "msg" fields.
func parseDetail(body []byte) string {
	var parsed struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) != nil || len(parsed.Detail) == 0 {
		return ""
	}

	var detail string
	if json.Unmarshal(parsed.Detail, &detail) == nil {
		return strings.TrimSpace(detail)
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(parsed.Detail, &items) == nil {
		var msgs []string
		for _, item := range items {
			if m := strings.TrimSpace(item.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
