package request

import "time"

// Submit payloads deliberately carry no binding tags: the service validates
// them as a whole so the caller gets every offending field in one response.

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

type CreateCorrectionRequest struct {
	Date          string  `json:"date"`
	ClockIn       string  `json:"clock_in"`
	ClockOut      string  `json:"clock_out"`
	BreakMinutes  int     `json:"break_minutes"`
	OvertimeHours float64 `json:"overtime_hours"`
	Reason        string  `json:"reason"`
}

type DecideRequest struct {
	Category string `json:"category" binding:"required,oneof=leave correction"`
	ID       string `json:"id" binding:"required"`
	Action   string `json:"action" binding:"required,oneof=approved rejected"`
	Comment  string `json:"comment"`
}

// RequestResponse covers both categories; leave-only and correction-only
// fields are omitted when empty.
type RequestResponse struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	RequesterID   string `json:"requester_id"`
	RequesterName string `json:"requester_name,omitempty"`
	Department    string `json:"department"`

	LeaveType string `json:"leave_type,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	TotalDays int    `json:"total_days,omitempty"`

	Date          string  `json:"date,omitempty"`
	ClockIn       string  `json:"clock_in,omitempty"`
	ClockOut      string  `json:"clock_out,omitempty"`
	BreakMinutes  int     `json:"break_minutes,omitempty"`
	OvertimeHours float64 `json:"overtime_hours,omitempty"`

	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ApproverID      *string `json:"approver_id,omitempty"`
	DecisionComment *string `json:"decision_comment,omitempty"`
	CreatedAt       string  `json:"created_at"`
	DecidedAt       *string `json:"decided_at,omitempty"`
}

func mapLeaveToResponse(l LeaveRequest) RequestResponse {
	resp := RequestResponse{
		ID:          l.ID.String(),
		Category:    "leave",
		RequesterID: l.RequesterID.String(),
		Department:  l.Department,
		LeaveType:   l.LeaveTypeCode,
		StartDate:   l.StartDate.Format("2006-01-02"),
		EndDate:     l.EndDate.Format("2006-01-02"),
		TotalDays:   l.TotalDays,
		Reason:      l.Reason,
		Status:      l.Status,
		CreatedAt:   l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.Requester != nil {
		resp.RequesterName = l.Requester.FullName
	}
	if l.ApproverID != nil {
		v := l.ApproverID.String()
		resp.ApproverID = &v
	}
	resp.DecisionComment = l.DecisionComment
	if l.DecidedAt != nil {
		v := l.DecidedAt.UTC().Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapCorrectionToResponse(c AttendanceCorrection) RequestResponse {
	resp := RequestResponse{
		ID:            c.ID.String(),
		Category:      "correction",
		RequesterID:   c.RequesterID.String(),
		Department:    c.Department,
		Date:          c.TargetDate.Format("2006-01-02"),
		ClockIn:       c.ClockIn,
		ClockOut:      c.ClockOut,
		BreakMinutes:  c.BreakMinutes,
		OvertimeHours: c.OvertimeHours,
		Reason:        c.Reason,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c.Requester != nil {
		resp.RequesterName = c.Requester.FullName
	}
	if c.ApproverID != nil {
		v := c.ApproverID.String()
		resp.ApproverID = &v
	}
	resp.DecisionComment = c.DecisionComment
	if c.DecidedAt != nil {
		v := c.DecidedAt.UTC().Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapLeaveListToResponse(items []LeaveRequest) []RequestResponse {
	resp := make([]RequestResponse, len(items))
	for i, l := range items {
		resp[i] = mapLeaveToResponse(l)
	}
	return resp
}

func mapCorrectionListToResponse(items []AttendanceCorrection) []RequestResponse {
	resp := make([]RequestResponse, len(items))
	for i, c := range items {
		resp[i] = mapCorrectionToResponse(c)
	}
	return resp
}
