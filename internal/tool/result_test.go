package tool

import (
	"testing"
)

func TestResultOutputs(t *testing.T) {
	success := Succeed(`{"ok": true}`)
	outputs := success.Outputs()
	if outputs[OutputSuccess] != true {
		t.Error("expected success=true")
	}
	if _, ok := outputs[OutputError]; ok {
		t.Error("success result must not carry _ERROR")
	}

	failure := Fail("GoogleDocsRead error: quota exceeded", "quota exceeded")
	outputs = failure.Outputs()
	if outputs[OutputSuccess] != false {
		t.Error("expected success=false")
	}
	if outputs[OutputError] != "quota exceeded" {
		t.Errorf("expected verbatim error message, got %v", outputs[OutputError])
	}

	canceled := Canceled()
	if canceled.Outputs() != nil {
		t.Error("canceled result must emit no outputs")
	}
	if canceled.Text != "" {
		t.Error("canceled result must carry no text")
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeSuccess, "success"},
		{OutcomeError, "error"},
		{OutcomeCanceled, "canceled"},
		{Outcome(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
