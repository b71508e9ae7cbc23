package request_test

import (
	"context"
	"testing"
	"time"

	"go-shinsei/internal/domain"
	"go-shinsei/internal/request"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Each repository below is built without a pooled handle, so the statements
// it issues can only execute on the supplied transaction. This pins the
// decision update and the outbox insert to the same commit.
func TestRepository_WithTxWritesOnTransaction(t *testing.T) {
	ctx := context.Background()
	approverID := uuid.New()
	decidedAt := time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)

	t.Run("leave decision updates inside the transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE leave_requests").
			WithArgs(request.StatusApproved, approverID, "ok", decidedAt, "req-1", request.StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := request.NewRepository(nil).WithTx(tx)
		rows, err := repo.DecideLeave(ctx, "req-1", approverID, request.StatusApproved, "ok", decidedAt)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("correction decision updates inside the transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE attendance_corrections").
			WithArgs(request.StatusRejected, approverID, "no", decidedAt, "req-2", request.StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := request.NewRepository(nil).WithTx(tx)
		rows, err := repo.DecideCorrection(ctx, "req-2", approverID, request.StatusRejected, "no", decidedAt)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		assert.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("decision reports a lost race from the transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE leave_requests").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := request.NewRepository(nil).WithTx(tx)
		rows, err := repo.DecideLeave(ctx, "req-3", approverID, request.StatusApproved, "", decidedAt)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), rows)

		assert.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("leave insert runs inside the transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO leave_requests").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := request.NewRepository(nil).WithTx(tx)
		err = repo.CreateLeave(ctx, &request.LeaveRequest{
			ID:            uuid.New(),
			RequesterID:   uuid.New(),
			Department:    "Sales",
			LeaveTypeCode: "paid",
			StartDate:     decidedAt,
			EndDate:       decidedAt,
			TotalDays:     1,
			Status:        request.StatusPending,
			Route:         domain.RouteSteps{{Type: domain.StepManager}},
		})
		assert.NoError(t, err)

		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("correction insert runs inside the transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO attendance_corrections").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := request.NewRepository(nil).WithTx(tx)
		err = repo.CreateCorrection(ctx, &request.AttendanceCorrection{
			ID:          uuid.New(),
			RequesterID: uuid.New(),
			Department:  "Engineering",
			TargetDate:  decidedAt,
			ClockIn:     "09:00",
			ClockOut:    "18:00",
			Reason:      "forgot to clock in",
			Status:      request.StatusPending,
			Route:       domain.RouteSteps{{Type: domain.StepManager}},
		})
		assert.NoError(t, err)

		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
