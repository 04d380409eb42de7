package fulfillment

// OutcomeKind classifies how one queued request ended. Every kind except a
// context cancellation still acknowledges the message.
type OutcomeKind string

const (
	// OutcomeDelivered means the recommendation email was dispatched.
	OutcomeDelivered OutcomeKind = "delivered"
	// OutcomeDuplicate means the request id was already processed; no email.
	OutcomeDuplicate OutcomeKind = "duplicate_skipped"
	// OutcomeUnsupportedIntent means the intent is not handled; informational.
	OutcomeUnsupportedIntent OutcomeKind = "unsupported_intent"
	// OutcomeNoMatch means the index or catalog had nothing for the cuisine.
	OutcomeNoMatch OutcomeKind = "no_match"
	// OutcomeInvalidRequest means the body was undecodable or missing slots.
	OutcomeInvalidRequest OutcomeKind = "invalid_request"
	// OutcomeDispatchFailed means the email send errored; not retried.
	OutcomeDispatchFailed OutcomeKind = "dispatch_failed"
)

// Outcome is the per-message entry in a BatchReport.
type Outcome struct {
	Kind      OutcomeKind
	RequestID string
	Cuisine   string
	Err       error
}

// BatchReport summarizes one ProcessBatch pass.
type BatchReport struct {
	Received int
	Outcomes []Outcome
}

// Count returns how many outcomes in the report have the given kind.
func (r *BatchReport) Count(kind OutcomeKind) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Kind == kind {
			n++
		}
	}
	return n
}
