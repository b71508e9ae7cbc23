package request

import (
	"time"

	"go-shinsei/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	ActionApprove = "approved"
	ActionReject  = "rejected"
)

// LeaveRequest is a leave application. Route holds the approver chain frozen
// at submission time; ApproverID and DecidedAt stay unset while pending.
type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_requester"`
	Department  string    `gorm:"type:varchar(60);not null;index"`

	LeaveTypeCode string    `gorm:"type:varchar(30);not null"`
	StartDate     time.Time `gorm:"type:date;not null"`
	EndDate       time.Time `gorm:"type:date;not null"`
	TotalDays     int       `gorm:"type:int;not null;default:1"`
	Reason        string    `gorm:"type:text"`

	Status          string            `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	Route           domain.RouteSteps `gorm:"type:jsonb;not null;serializer:json"`
	ApproverID      *uuid.UUID        `gorm:"type:uuid"`
	DecisionComment *string           `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DecidedAt *time.Time     `gorm:"index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Requester *UserRef `gorm:"foreignKey:RequesterID;references:ID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// AttendanceCorrection proposes corrected clock times for one working day.
// Clock times are wall-clock strings (HH:MM), same as the submitting UI.
type AttendanceCorrection struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index:idx_corrections_requester"`
	Department  string    `gorm:"type:varchar(60);not null;index"`

	TargetDate    time.Time `gorm:"type:date;not null"`
	ClockIn       string    `gorm:"type:varchar(5);not null"`
	ClockOut      string    `gorm:"type:varchar(5);not null"`
	BreakMinutes  int       `gorm:"type:int;not null;default:0"`
	OvertimeHours float64   `gorm:"type:numeric(4,2);not null;default:0"`
	Reason        string    `gorm:"type:text;not null"`

	Status          string            `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_corrections_status"`
	Route           domain.RouteSteps `gorm:"type:jsonb;not null;serializer:json"`
	ApproverID      *uuid.UUID        `gorm:"type:uuid"`
	DecisionComment *string           `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DecidedAt *time.Time     `gorm:"index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Requester *UserRef `gorm:"foreignKey:RequesterID;references:ID"`
}

func (AttendanceCorrection) TableName() string {
	return "attendance_corrections"
}

type UserRef struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName  string     `gorm:"column:full_name"`
	ManagerID *uuid.UUID `gorm:"column:manager_id"`
}

func (UserRef) TableName() string {
	return "users"
}
