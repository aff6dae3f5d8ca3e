// Package jsonutil provides shared utilities for JSON parsing patterns:
// error handling, type conversion, and validation helpers.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message. Numbers decode as json.Number so
// large token ids survive intact.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// ToString converts an interface{} value to a string representation.
// Handles string, json.Number, float64 (formatted as integer), bool, and
// other types.
func ToString(v interface{}) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		// Format as integer for whole numbers, otherwise as float
		if val == float64(int64(val)) {
			return fmt.Sprintf("%.0f", val)
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// BigInt parses a decimal or 0x-prefixed hex value given as a JSON string
// or number. Leading zeros stay decimal ("010" is 10). Nil and "" yield nil.
func BigInt(v interface{}) (*big.Int, error) {
	s := strings.TrimSpace(ToString(v))
	if s == "" {
		return nil, nil
	}
	digits, base := s, 10
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		digits, base = s[2:], 16
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("not an integer: %q", s)
	}
	return n, nil
}

// IsArray reports whether data holds a top-level JSON array.
func IsArray(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// UnmarshalArray unmarshals JSON data into a slice and validates that
// the result is non-empty. Returns an error if unmarshaling fails or
// the array is empty.
func UnmarshalArray[T any](data []byte, context string) ([]T, error) {
	var entries []T
	if err := UnmarshalWithContext(data, &entries, context); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: empty result", context)
	}
	return entries, nil
}

// UnmarshalOneOrMany accepts either a single object or a non-empty array
// of them.
func UnmarshalOneOrMany[T any](data []byte, context string) ([]T, error) {
	if IsArray(data) {
		return UnmarshalArray[T](data, context)
	}
	var one T
	if err := UnmarshalWithContext(data, &one, context); err != nil {
		return nil, err
	}
	return []T{one}, nil
}
