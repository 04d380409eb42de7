package model

// IntentDiningSuggestions is the only intent currently fulfilled by the worker.
const IntentDiningSuggestions = "DiningSuggestionsIntent"

// Slot names captured by the conversational front-end.
const (
	SlotCuisine = "cuisine"
	SlotEmail   = "email"
)

// FulfillmentRequest is the message body carried on the dining.requests topic.
// The front-end intent handler produces it once all slots are captured; the
// fulfillment worker is its only consumer.
type FulfillmentRequest struct {
	// RequestID is stamped by the intent API and used for duplicate-delivery
	// detection. Messages from older producers may arrive without one.
	RequestID  string            `json:"requestId,omitempty"`
	IntentName string            `json:"intentName" validate:"required"`
	Slots      map[string]string `json:"slots" validate:"required"`
}

// Slot returns the captured value for name, or "" if the slot is absent.
func (r *FulfillmentRequest) Slot(name string) string {
	return r.Slots[name]
}

// Notification is the rendered recommendation handed to the email sender.
// It is ephemeral and never persisted.
type Notification struct {
	Recipient string
	Subject   string
	Body      string
}
