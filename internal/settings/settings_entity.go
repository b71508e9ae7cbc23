package settings

import (
	"time"

	"go-shinsei/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveType struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code               string    `gorm:"type:varchar(30);not null;uniqueIndex"`
	Label              string    `gorm:"type:varchar(60);not null"`
	RequiresReason     bool      `gorm:"not null;default:false"`
	CountsAgainstQuota bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}

type Holiday struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Day   time.Time `gorm:"type:date;not null;uniqueIndex"`
	Label string    `gorm:"type:varchar(60)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Holiday) TableName() string {
	return "holidays"
}

// ApprovalRoute maps a request category, and optionally a department, to an
// ordered approver chain. A route without a department is the category
// default.
type ApprovalRoute struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category   string            `gorm:"type:varchar(20);not null;index:idx_routes_category_department"`
	Department *string           `gorm:"type:varchar(60);index:idx_routes_category_department"`
	Steps      domain.RouteSteps `gorm:"type:jsonb;not null;serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ApprovalRoute) TableName() string {
	return "approval_routes"
}
