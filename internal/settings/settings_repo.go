package settings

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindLeaveTypes(ctx context.Context) ([]LeaveType, error)
	FindHolidays(ctx context.Context) ([]Holiday, error)
	FindRoutes(ctx context.Context) ([]ApprovalRoute, error)
	ReplaceLeaveTypes(ctx context.Context, types []LeaveType) error
	ReplaceHolidays(ctx context.Context, holidays []Holiday) error
	ReplaceRoutes(ctx context.Context, routes []ApprovalRoute) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindLeaveTypes(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).Order("code ASC").Find(&types).Error
	return types, err
}

func (r *repository) FindHolidays(ctx context.Context) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).Order("day ASC").Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindRoutes(ctx context.Context) ([]ApprovalRoute, error) {
	var routes []ApprovalRoute
	err := r.db.WithContext(ctx).Order("category ASC, department ASC NULLS LAST").Find(&routes).Error
	return routes, err
}

func (r *repository) ReplaceLeaveTypes(ctx context.Context, types []LeaveType) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&LeaveType{}).Error; err != nil {
			return err
		}
		if len(types) == 0 {
			return nil
		}
		return tx.Create(&types).Error
	})
}

func (r *repository) ReplaceHolidays(ctx context.Context, holidays []Holiday) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Holiday{}).Error; err != nil {
			return err
		}
		if len(holidays) == 0 {
			return nil
		}
		return tx.Create(&holidays).Error
	})
}

func (r *repository) ReplaceRoutes(ctx context.Context, routes []ApprovalRoute) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&ApprovalRoute{}).Error; err != nil {
			return err
		}
		if len(routes) == 0 {
			return nil
		}
		return tx.Create(&routes).Error
	})
}
