package docs

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotArray reports that the operations payload was valid JSON but not
// an array.
var ErrNotArray = errors.New("operations must be a JSON array")

// ParseRequests splits a JSON array of batchUpdate operation descriptors
// into its elements, byte for byte. The payload shape is whatever the
// Docs API accepts (insertText, deleteContentRange, replaceAllText, ...);
// this layer only enforces "is a JSON array" and forwards each element
// verbatim, so operation kinds unknown to this binding still reach the
// remote service intact.
//
// Malformed JSON is reported with the decoder's error wrapped; valid JSON
// that is not an array is reported as ErrNotArray.
func ParseRequests(operations string) ([]json.RawMessage, error) {
	data := []byte(operations)

	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, ok := probe.([]any); !ok {
		return nil, ErrNotArray
	}

	var requests []json.RawMessage
	if err := json.Unmarshal(data, &requests); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return requests, nil
}
