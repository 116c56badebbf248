package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Error is a non-2xx response from the API, with its body already mapped to
// a single human-readable message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// ExtractMessage maps a loosely typed error body onto one line. The server
// reports errors in several shapes depending on which layer rejected the
// request, so the checks run in order: plain string body, "error",
// "details", "message", "non_field_errors", then the first field of the
// object paired with its value.
func ExtractMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "request failed"
	}

	if trimmed[0] != '{' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil && s != "" {
			return s
		}
		return string(trimmed)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return string(trimmed)
	}

	for _, key := range []string{"error", "details", "message", "non_field_errors"} {
		if raw, ok := fields[key]; ok {
			if s := flatten(raw); s != "" {
				return s
			}
		}
	}

	if key, raw := firstField(trimmed); key != "" {
		if s := flatten(raw); s != "" {
			return key + ": " + s
		}
	}
	return "request failed"
}

// flatten renders a JSON value as one line, joining lists with commas.
func flatten(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if s := flatten(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	value := strings.TrimSpace(string(raw))
	if value == "null" {
		return ""
	}
	return value
}

// firstField returns the first key of a JSON object in document order, which
// encoding/json maps cannot preserve.
func firstField(data []byte) (string, json.RawMessage) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return "", nil
	}
	tok, err := dec.Token()
	if err != nil {
		return "", nil
	}
	key, ok := tok.(string)
	if !ok {
		return "", nil
	}
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return "", nil
	}
	return key, raw
}
