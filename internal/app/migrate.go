package app

import (
	"go-shinsei/internal/directory"
	"go-shinsei/internal/request"
	"go-shinsei/internal/settings"

	"gorm.io/gorm"
)

const outboxTableDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id TEXT,
	aggregate_type TEXT NOT NULL,
	aggregate_id TEXT NOT NULL,
	event_type TEXT NOT NULL,
	topic TEXT NOT NULL,
	payload JSONB NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	last_error TEXT,
	next_retry_at TIMESTAMPTZ,
	sent_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&directory.User{},
		&settings.LeaveType{},
		&settings.Holiday{},
		&settings.ApprovalRoute{},
		&request.LeaveRequest{},
		&request.AttendanceCorrection{},
	); err != nil {
		return err
	}

	// The outbox is queried through database/sql, not gorm.
	return db.Exec(outboxTableDDL).Error
}
