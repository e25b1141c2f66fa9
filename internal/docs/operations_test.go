package docs

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseRequests_Valid(t *testing.T) {
	operations := `[
		{"deleteContentRange": {"range": {"startIndex": 1, "endIndex": 10}}},
		{"insertText": {"location": {"index": 1}, "text": "Hello World"}}
	]`

	requests, err := ParseRequests(operations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}

	var first struct {
		DeleteContentRange struct {
			Range struct {
				EndIndex int64 `json:"endIndex"`
			} `json:"range"`
		} `json:"deleteContentRange"`
	}
	if err := json.Unmarshal(requests[0], &first); err != nil {
		t.Fatalf("first request did not decode: %v", err)
	}
	if first.DeleteContentRange.Range.EndIndex != 10 {
		t.Errorf("expected endIndex 10, got %d", first.DeleteContentRange.Range.EndIndex)
	}
	if !strings.Contains(string(requests[1]), "Hello World") {
		t.Errorf("expected second request to carry the insert text, got %s", requests[1])
	}
}

func TestParseRequests_UnknownOperationsSurviveVerbatim(t *testing.T) {
	// Operation kinds added to the Docs API after this binding was
	// written must pass through with their content intact.
	operations := `[{"someFutureOperation": {"x": 1, "nested": {"deep": true}}}]`

	requests, err := ParseRequests(operations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(requests))
	}

	var got, want any
	if err := json.Unmarshal(requests[0], &got); err != nil {
		t.Fatalf("forwarded request is not valid JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"someFutureOperation": {"x": 1, "nested": {"deep": true}}}`), &want); err != nil {
		t.Fatal(err)
	}
	gotJSON, _ := json.Marshal(got)
	wantJSON, _ := json.Marshal(want)
	if string(gotJSON) != string(wantJSON) {
		t.Errorf("operation content changed in transit:\n got %s\nwant %s", gotJSON, wantJSON)
	}
}

func TestParseRequests_NonObjectElementsAccepted(t *testing.T) {
	// A valid array is forwarded whatever its elements hold; rejecting
	// element shapes is the remote API's job.
	requests, err := ParseRequests(`[1, 2, 3]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requests) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(requests))
	}
	if string(requests[0]) != "1" {
		t.Errorf("expected element forwarded verbatim, got %s", requests[0])
	}
}

func TestParseRequests_EmptyArray(t *testing.T) {
	requests, err := ParseRequests("[]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requests) != 0 {
		t.Errorf("expected no requests, got %d", len(requests))
	}
}

func TestParseRequests_MalformedJSON(t *testing.T) {
	_, err := ParseRequests("not json")
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseRequests_NotArray(t *testing.T) {
	for _, payload := range []string{`{"insertText": {}}`, `"text"`, `42`, `null`, `true`} {
		_, err := ParseRequests(payload)
		if !errors.Is(err, ErrNotArray) {
			t.Errorf("payload %q: expected ErrNotArray, got %v", payload, err)
		}
	}
}
