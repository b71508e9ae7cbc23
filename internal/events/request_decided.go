package events

import "time"

const (
	TopicRequestDecided     = "shinsei.request.decided"
	EventTypeRequestDecided = "request.decided"
	AggregateTypeRequest    = "request"
)

// RequestDecided is published after a request reaches a terminal state, for
// downstream consumers (payroll, calendars). It is written to the outbox in
// the same transaction as the decision.
type RequestDecided struct {
	RequestID   string    `json:"request_id"`
	Category    string    `json:"category"`
	RequesterID string    `json:"requester_id"`
	ApproverID  string    `json:"approver_id"`
	Status      string    `json:"status"`
	Comment     string    `json:"comment,omitempty"`
	DecidedAt   time.Time `json:"decided_at"`
}
