package confirm

import "fmt"

// Error types the SDK reports for problems the donor can fix.
const (
	ErrorTypeCard       = "card_error"
	ErrorTypeValidation = "validation_error"
)

// Intent statuses the flow reacts to.
const (
	StatusSucceeded  = "succeeded"
	StatusProcessing = "processing"
)

const UnexpectedErrorMessage = "unexpected error"

type SDKError struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *SDKError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Result is what a confirmation call resolved with.
type Result struct {
	Error       *SDKError
	Status      string
	IntentID    string
	RedirectURL string
}

type Kind string

const (
	KindSucceeded        Kind = "succeeded"
	KindProcessing       Kind = "processing"
	KindRecoverableError Kind = "recoverable_error"
	KindFatalError       Kind = "fatal_error"
	KindPending          Kind = "pending"
)

type Outcome struct {
	Kind        Kind   `json:"kind"`
	Reason      string `json:"reason,omitempty"`
	Status      string `json:"status,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	// NeedsReconciliation marks outcomes shown as success before the
	// processor has settled the payment.
	NeedsReconciliation bool `json:"needsReconciliation,omitempty"`
}

// Terminal reports whether the outcome ends an attempt.
func (o Outcome) Terminal() bool {
	return o.Kind != KindPending && o.Kind != ""
}

// Final reports whether no further attempt is possible on this intent.
func (o Outcome) Final() bool {
	return o.Kind == KindSucceeded || o.Kind == KindProcessing || o.Kind == KindFatalError
}

// Successful covers both settled and still-settling payments.
func (o Outcome) Successful() bool {
	return o.Kind == KindSucceeded || o.Kind == KindProcessing
}

// Classify maps a confirmation result to an outcome. A call error wins over
// everything, then SDK errors, then the intent status.
func Classify(res Result, err error) Outcome {
	if err != nil {
		return Outcome{Kind: KindFatalError, Reason: err.Error()}
	}
	if res.Error != nil {
		switch res.Error.Type {
		case ErrorTypeCard, ErrorTypeValidation:
			return Outcome{Kind: KindRecoverableError, Reason: res.Error.Message}
		default:
			return Outcome{Kind: KindRecoverableError, Reason: UnexpectedErrorMessage}
		}
	}
	switch res.Status {
	case StatusSucceeded:
		return Outcome{Kind: KindSucceeded, Status: res.Status}
	case StatusProcessing:
		return Outcome{Kind: KindProcessing, Status: res.Status, NeedsReconciliation: true}
	default:
		return Outcome{Kind: KindPending, Status: res.Status, RedirectURL: res.RedirectURL}
	}
}
