package tool

// Outcome is the terminal state of one invocation. Cancellation is
// deliberately distinct from both success and failure so the orchestrator
// never has to infer "canceled" from a missing result.
type Outcome int

const (
	// OutcomeSuccess means the remote call completed and Text carries the
	// serialized response body.
	OutcomeSuccess Outcome = iota
	// OutcomeError means the invocation failed locally or exhausted its
	// retries; Text carries a formatted error string and ErrMsg the short
	// message.
	OutcomeError
	// OutcomeCanceled means cooperative cancellation was observed before
	// a result was produced. Canceled results carry no outputs.
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeError:
		return "error"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// OutputError is the structured output key carrying the failure message.
const OutputError = "_ERROR"

// OutputSuccess is the structured output key carrying the success flag.
const OutputSuccess = "success"

// Result is what an invocation reports back to the orchestrator: a
// textual result plus structured output fields. Exactly one outcome
// holds at completion.
type Result struct {
	Outcome Outcome

	// Text is the tool's textual output: the serialized remote response
	// on success, a formatted error string on failure, empty on
	// cancellation.
	Text string

	// ErrMsg is the short error message, set only for OutcomeError.
	ErrMsg string
}

// Succeed builds a success result carrying the serialized response body.
func Succeed(text string) Result {
	return Result{Outcome: OutcomeSuccess, Text: text}
}

// Fail builds an error result with the formatted text and short message.
func Fail(text, errMsg string) Result {
	return Result{Outcome: OutcomeError, Text: text, ErrMsg: errMsg}
}

// Canceled builds a canceled result. It carries neither text nor outputs.
func Canceled() Result {
	return Result{Outcome: OutcomeCanceled}
}

// Outputs returns the structured output fields reported to the
// orchestrator alongside Text. Canceled invocations report nothing.
func (r Result) Outputs() map[string]any {
	switch r.Outcome {
	case OutcomeSuccess:
		return map[string]any{OutputSuccess: true}
	case OutcomeError:
		return map[string]any{OutputSuccess: false, OutputError: r.ErrMsg}
	default:
		return nil
	}
}
