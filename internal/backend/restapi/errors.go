package restapi

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// TransportError wraps a network-level failure: the request never produced
// an HTTP response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError carries a server-side field validation failure as a
// mapping of field name to messages.
type ValidationError struct {
	Fields map[string][]string
}

// Error flattens the field map into one human-readable string, one entry
// per field, fields sorted for stable output.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], ", ")))
	}
	return strings.Join(parts, "; ")
}

// MessageError carries a server failure with a single message body.
type MessageError struct {
	Status  int
	Message string
}

func (e *MessageError) Error() string { return e.Message }

// messageKeys are body keys the server uses for single-message errors.
var messageKeys = []string{"error", "detail", "message"}

// decodeAPIError converts a non-2xx response body into a tagged error.
// A body shaped like {"field": ["msg", ...]} becomes a ValidationError;
// a body with an error/detail/message string becomes a MessageError;
// anything else falls back to a MessageError with a generic message.
func decodeAPIError(status int, body []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err == nil && len(raw) > 0 {
		for _, key := range messageKeys {
			var msg string
			if v, ok := raw[key]; ok && json.Unmarshal(v, &msg) == nil && msg != "" {
				return &MessageError{Status: status, Message: msg}
			}
		}

		fields := make(map[string][]string, len(raw))
		for name, v := range raw {
			var msgs []string
			if json.Unmarshal(v, &msgs) == nil {
				fields[name] = msgs
				continue
			}
			var msg string
			if json.Unmarshal(v, &msg) == nil {
				fields[name] = []string{msg}
			}
		}
		if len(fields) > 0 {
			return &ValidationError{Fields: fields}
		}
	}

	return &MessageError{Status: status, Message: fmt.Sprintf("request failed with status %d", status)}
}
