package instrumentation

import "testing"

func TestTruncateDocumentID(t *testing.T) {
	tests := []struct {
		id       string
		expected string
	}{
		{"1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", "1BxiMVs0XRA5"},
		{"1aBcDeFgHiJk", "1aBcDeFgHiJk"},
		{"short", "short"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			result := TruncateDocumentID(tt.id)
			if result != tt.expected {
				t.Errorf("TruncateDocumentID(%q) = %q, want %q", tt.id, result, tt.expected)
			}
		})
	}
}

func TestStatusConstants(t *testing.T) {
	statuses := map[string]string{
		StatusSuccess:  "success",
		StatusError:    "error",
		StatusCanceled: "canceled",
	}

	for constant, expected := range statuses {
		if constant != expected {
			t.Errorf("Status constant = %q, want %q", constant, expected)
		}
	}
}

func TestOperationConstants(t *testing.T) {
	operations := map[string]string{
		OperationGet:    "get",
		OperationUpdate: "update",
	}

	for constant, expected := range operations {
		if constant != expected {
			t.Errorf("Operation constant = %q, want %q", constant, expected)
		}
	}
}
