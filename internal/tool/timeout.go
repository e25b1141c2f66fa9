package tool

import (
	"os"
	"strconv"
	"time"
)

// DefaultExecTimeout bounds one whole tool invocation, covering every
// retry attempt and delay, unless TOOL_EXEC_TIMEOUT overrides it.
const DefaultExecTimeout = 60 * time.Second

// execTimeoutEnv is interpreted as a whole number of seconds.
const execTimeoutEnv = "TOOL_EXEC_TIMEOUT"

// ExecTimeout returns the wall-clock budget for a single invocation.
// Invalid or non-positive values fall back to the default.
func ExecTimeout() time.Duration {
	v := os.Getenv(execTimeoutEnv)
	if v == "" {
		return DefaultExecTimeout
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return DefaultExecTimeout
	}
	return time.Duration(secs) * time.Second
}
