package tool

import (
	"testing"
	"time"
)

func TestExecTimeout(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset uses default", "", DefaultExecTimeout},
		{"valid seconds", "120", 120 * time.Second},
		{"one second", "1", time.Second},
		{"garbage uses default", "soon", DefaultExecTimeout},
		{"zero uses default", "0", DefaultExecTimeout},
		{"negative uses default", "-5", DefaultExecTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value == "" {
				t.Setenv(execTimeoutEnv, "")
			} else {
				t.Setenv(execTimeoutEnv, tt.value)
			}
			if got := ExecTimeout(); got != tt.want {
				t.Errorf("ExecTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}
