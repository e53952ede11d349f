package client

import (
	"time"

	"github.com/reagentkit/reagent"
)

// EventType identifies the kind of event occurring during client operations.
type EventType string

const (
	// EventRequestStart fires before a chat request begins.
	EventRequestStart EventType = "request_start"

	// EventRequestComplete fires after a chat request completes successfully.
	EventRequestComplete EventType = "request_complete"

	// EventRequestError fires when a chat request fails after all retries.
	EventRequestError EventType = "request_error"

	// EventRetry fires before each retry of a transient failure.
	EventRetry EventType = "retry"
)

// Event represents an observable occurrence during client operations.
type Event struct {
	// Type identifies the kind of event.
	Type EventType

	// Provider identifies which backend is being used.
	Provider ProviderName

	// Model is the model name being used (if known).
	Model string

	// Attempt is the 1-indexed failed attempt for EventRetry.
	Attempt int

	// Duration is the elapsed time for completed requests, or the
	// upcoming backoff delay for EventRetry.
	Duration time.Duration

	// Usage contains token usage for EventRequestComplete.
	Usage *reagent.Usage

	// Error contains the error for EventRequestError and EventRetry.
	Error error

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// emit sends an event with timestamp to the channel without blocking.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
		// Channel full - don't block
	}
}
