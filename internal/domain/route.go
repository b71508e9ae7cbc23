package domain

// Request categories. Each category owns its own request collection.
const (
	CategoryLeave      = "leave"
	CategoryCorrection = "correction"
)

// Step types an approval route may contain.
const (
	StepManager = "manager" // satisfied by the requester's manager
	StepAdmin   = "admin"   // satisfied by any admin
	StepUser    = "user"    // satisfied by one named approver
)

// RouteStep is one approver slot in an approval route. UserID is only set
// for StepUser steps.
type RouteStep struct {
	Type   string `json:"type"`
	UserID string `json:"user_id,omitempty"`
}

// RouteSteps is the ordered approver chain. It is frozen onto a request at
// submission time, so later registry changes never affect in-flight requests.
type RouteSteps []RouteStep

func ValidCategory(category string) bool {
	return category == CategoryLeave || category == CategoryCorrection
}
