package request

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateLeave(ctx context.Context, l *LeaveRequest) error
	CreateCorrection(ctx context.Context, c *AttendanceCorrection) error

	FindLeaveByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindCorrectionByID(ctx context.Context, id string) (*AttendanceCorrection, error)

	FindLeaveByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error)
	FindLeaveByTeam(ctx context.Context, managerID string) ([]LeaveRequest, error)
	FindAllLeave(ctx context.Context) ([]LeaveRequest, error)

	FindCorrectionsByRequester(ctx context.Context, requesterID string) ([]AttendanceCorrection, error)
	FindCorrectionsByTeam(ctx context.Context, managerID string) ([]AttendanceCorrection, error)
	FindAllCorrections(ctx context.Context) ([]AttendanceCorrection, error)

	// DecideLeave and DecideCorrection apply the pending→terminal transition
	// as a conditional update guarded on the current status. The returned
	// row count is zero when the request was no longer pending, so two
	// concurrent decisions can never both succeed.
	DecideLeave(ctx context.Context, id string, approverID uuid.UUID, status, comment string, decidedAt time.Time) (int64, error)
	DecideCorrection(ctx context.Context, id string, approverID uuid.UUID, status, comment string, decidedAt time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds writes to the given transaction. Write methods on the
// returned repository execute on tx so a status transition and its outbox
// event commit or roll back together; reads keep the pooled handle.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) CreateLeave(ctx context.Context, l *LeaveRequest) error {
	if r.tx != nil {
		route, err := json.Marshal(l.Route)
		if err != nil {
			return err
		}
		query := `
        INSERT INTO leave_requests (
            id, requester_id, department, leave_type_code, start_date, end_date,
            total_days, reason, status, route, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
    `
		_, err = r.tx.ExecContext(
			ctx, query,
			l.ID, l.RequesterID, l.Department, l.LeaveTypeCode, l.StartDate, l.EndDate,
			l.TotalDays, l.Reason, l.Status, route,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) CreateCorrection(ctx context.Context, c *AttendanceCorrection) error {
	if r.tx != nil {
		route, err := json.Marshal(c.Route)
		if err != nil {
			return err
		}
		query := `
        INSERT INTO attendance_corrections (
            id, requester_id, department, target_date, clock_in, clock_out,
            break_minutes, overtime_hours, reason, status, route, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
    `
		_, err = r.tx.ExecContext(
			ctx, query,
			c.ID, c.RequesterID, c.Department, c.TargetDate, c.ClockIn, c.ClockOut,
			c.BreakMinutes, c.OvertimeHours, c.Reason, c.Status, route,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindLeaveByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindCorrectionByID(ctx context.Context, id string) (*AttendanceCorrection, error) {
	var c AttendanceCorrection
	err := r.db.WithContext(ctx).
		Preload("Requester").
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindLeaveByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error) {
	var items []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindLeaveByTeam(ctx context.Context, managerID string) ([]LeaveRequest, error) {
	var items []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Joins("JOIN users ON users.id = leave_requests.requester_id").
		Where("users.manager_id = ? OR leave_requests.requester_id = ?", managerID, managerID).
		Order("leave_requests.created_at DESC, leave_requests.id ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindAllLeave(ctx context.Context) ([]LeaveRequest, error) {
	var items []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Order("created_at DESC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindCorrectionsByRequester(ctx context.Context, requesterID string) ([]AttendanceCorrection, error) {
	var items []AttendanceCorrection
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindCorrectionsByTeam(ctx context.Context, managerID string) ([]AttendanceCorrection, error) {
	var items []AttendanceCorrection
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Joins("JOIN users ON users.id = attendance_corrections.requester_id").
		Where("users.manager_id = ? OR attendance_corrections.requester_id = ?", managerID, managerID).
		Order("attendance_corrections.created_at DESC, attendance_corrections.id ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindAllCorrections(ctx context.Context) ([]AttendanceCorrection, error) {
	var items []AttendanceCorrection
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Order("created_at DESC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) DecideLeave(ctx context.Context, id string, approverID uuid.UUID, status, comment string, decidedAt time.Time) (int64, error) {
	if r.tx != nil {
		query := `
        UPDATE leave_requests
        SET status = $1, approver_id = $2, decision_comment = $3, decided_at = $4, updated_at = NOW()
        WHERE id = $5 AND status = $6
    `
		res, err := r.tx.ExecContext(ctx, query, status, approverID, comment, decidedAt, id, StatusPending)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":           status,
			"approver_id":      approverID,
			"decision_comment": comment,
			"decided_at":       decidedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) DecideCorrection(ctx context.Context, id string, approverID uuid.UUID, status, comment string, decidedAt time.Time) (int64, error) {
	if r.tx != nil {
		query := `
        UPDATE attendance_corrections
        SET status = $1, approver_id = $2, decision_comment = $3, decided_at = $4, updated_at = NOW()
        WHERE id = $5 AND status = $6
    `
		res, err := r.tx.ExecContext(ctx, query, status, approverID, comment, decidedAt, id, StatusPending)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}
	res := r.db.WithContext(ctx).
		Model(&AttendanceCorrection{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":           status,
			"approver_id":      approverID,
			"decision_comment": comment,
			"decided_at":       decidedAt,
		})
	return res.RowsAffected, res.Error
}
