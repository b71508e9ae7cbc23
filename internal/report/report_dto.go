package report

import "time"

// Filter narrows a report to a decided-timestamp window, a department and
// an employee. All conditions are conjunctive; zero values mean "any".
type Filter struct {
	From       *time.Time
	To         *time.Time
	Department string
	EmployeeID string
}

// AggregateRow is one (employee, type) group over approved requests.
type AggregateRow struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
	Category     string `json:"category"`
	Type         string `json:"type,omitempty"`
	Count        int    `json:"count"`
	TotalDays    int    `json:"total_days,omitempty"`
}

// LeaveTotal is the per-employee balance line the report screen shows.
type LeaveTotal struct {
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	Department     string `json:"department"`
	LeaveDaysTaken int    `json:"leave_days_taken"`
	LeaveDaysLeft  int    `json:"leave_days_remaining"`
}

type AggregateReport struct {
	Rows            []AggregateRow `json:"rows"`
	LeaveTotals     []LeaveTotal   `json:"leave_totals"`
	CorrectionCount int            `json:"correction_count"`
}

// ExportColumns is the fixed export column order. Downstream spreadsheet
// tooling addresses columns by position, so this order must never change.
var ExportColumns = []string{
	"category",
	"employee_id",
	"employee_name",
	"department",
	"type",
	"start_date",
	"end_date",
	"days",
	"decided_at",
	"approved_by",
	"reason",
	"comment",
}

type ExportResult struct {
	Header []string
	Rows   [][]string
}
