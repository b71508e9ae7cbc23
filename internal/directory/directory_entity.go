package directory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code       string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	FullName   string    `gorm:"type:varchar(120);not null"`
	Role       string    `gorm:"type:varchar(20);not null;default:'employee'"`
	Department string    `gorm:"type:varchar(60);not null"`

	// Back-reference to the user's manager, not ownership.
	ManagerID *uuid.UUID `gorm:"type:uuid;index"`

	AnnualLeaveAllowance int `gorm:"type:int;not null;default:20"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
