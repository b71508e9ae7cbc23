package report

import (
	"context"

	"go-shinsei/internal/request"

	"gorm.io/gorm"
)

type Repository interface {
	FindApprovedLeave(ctx context.Context, f Filter) ([]request.LeaveRequest, error)
	FindApprovedCorrections(ctx context.Context, f Filter) ([]request.AttendanceCorrection, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindApprovedLeave(ctx context.Context, f Filter) ([]request.LeaveRequest, error) {
	var items []request.LeaveRequest
	q := r.db.WithContext(ctx).
		Preload("Requester").
		Where("status = ?", request.StatusApproved)
	q = applyFilter(q, f)
	err := q.Order("decided_at ASC, id ASC").Find(&items).Error
	return items, err
}

func (r *repository) FindApprovedCorrections(ctx context.Context, f Filter) ([]request.AttendanceCorrection, error) {
	var items []request.AttendanceCorrection
	q := r.db.WithContext(ctx).
		Preload("Requester").
		Where("status = ?", request.StatusApproved)
	q = applyFilter(q, f)
	err := q.Order("decided_at ASC, id ASC").Find(&items).Error
	return items, err
}

func applyFilter(q *gorm.DB, f Filter) *gorm.DB {
	if f.From != nil {
		q = q.Where("decided_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("decided_at <= ?", *f.To)
	}
	if f.Department != "" {
		q = q.Where("department = ?", f.Department)
	}
	if f.EmployeeID != "" {
		q = q.Where("requester_id = ?", f.EmployeeID)
	}
	return q
}
