package request

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-shinsei/internal/directory"
	"go-shinsei/internal/domain"
	"go-shinsei/internal/events"
	"go-shinsei/internal/messaging/kafka"
	requesterrors "go-shinsei/internal/request/errors"
	"go-shinsei/internal/routing"
	routingerrors "go-shinsei/internal/routing/errors"
	"go-shinsei/internal/settings"
	"go-shinsei/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	SubmitLeave(ctx context.Context, callerID string, req CreateLeaveRequest) (RequestResponse, error)
	SubmitCorrection(ctx context.Context, callerID string, req CreateCorrectionRequest) (RequestResponse, error)
	List(ctx context.Context, callerID, scope, category string) ([]RequestResponse, error)
	Decide(ctx context.Context, callerID string, req DecideRequest) (RequestResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	outbox    kafka.OutboxRepository
	directory directory.Service
	resolver  routing.Resolver
	settings  settings.Service
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	dir directory.Service,
	resolver routing.Resolver,
	settingsSvc settings.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		outbox:    outbox,
		directory: dir,
		resolver:  resolver,
		settings:  settingsSvc,
		logger:    l,
	}
}

func (s *service) SubmitLeave(ctx context.Context, callerID string, req CreateLeaveRequest) (RequestResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("caller_id", callerID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if !validCallerID(callerID) {
		return RequestResponse{}, requesterrors.ErrInvalidCallerID
	}

	caller, err := s.directory.Resolve(ctx, callerID)
	if err != nil {
		return RequestResponse{}, err
	}

	var fields []string

	startDate, ok := parseDate(req.StartDate)
	if !ok {
		fields = append(fields, "start_date")
	}
	endDate, ok := parseDate(req.EndDate)
	if !ok {
		fields = append(fields, "end_date")
	} else if ok && !startDate.IsZero() && endDate.Before(startDate) {
		fields = append(fields, "end_date")
	}

	var leaveType *settings.LeaveTypeResponse
	if req.LeaveType == "" {
		fields = append(fields, "leave_type")
	} else {
		leaveType, err = s.settings.LeaveTypeByCode(ctx, req.LeaveType)
		if err != nil {
			return RequestResponse{}, err
		}
		if leaveType == nil {
			fields = append(fields, "leave_type")
		}
	}
	if leaveType != nil && leaveType.RequiresReason && req.Reason == "" {
		fields = append(fields, "reason")
	}

	if len(fields) > 0 {
		s.logger.Warn("submit leave validation failed", zap.Strings("fields", fields))
		return RequestResponse{}, apperror.NewValidation(fields)
	}

	route, err := s.resolver.Resolve(ctx, domain.CategoryLeave, caller)
	if err != nil {
		return RequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	l := &LeaveRequest{
		ID:            uuid.New(),
		RequesterID:   uuid.MustParse(caller.ID),
		Department:    caller.Department,
		LeaveTypeCode: req.LeaveType,
		StartDate:     startDate,
		EndDate:       endDate,
		TotalDays:     totalDays,
		Reason:        req.Reason,
		Status:        StatusPending,
		Route:         route,
	}

	if err := qtx.CreateLeave(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return RequestResponse{}, err
	}
	s.logger.Info("submit leave success",
		zap.String("request_id", l.ID.String()),
		zap.String("requester_id", caller.ID),
		zap.Int("total_days", totalDays),
	)

	l.Requester = &UserRef{ID: l.RequesterID, FullName: caller.FullName}
	return mapLeaveToResponse(*l), nil
}

func (s *service) SubmitCorrection(ctx context.Context, callerID string, req CreateCorrectionRequest) (RequestResponse, error) {
	s.logger.Debug("submit correction requested",
		zap.String("caller_id", callerID),
		zap.String("date", req.Date),
	)

	if !validCallerID(callerID) {
		return RequestResponse{}, requesterrors.ErrInvalidCallerID
	}

	caller, err := s.directory.Resolve(ctx, callerID)
	if err != nil {
		return RequestResponse{}, err
	}

	var fields []string

	targetDate, ok := parseDate(req.Date)
	if !ok {
		fields = append(fields, "date")
	}
	clockIn, inOK := parseClock(req.ClockIn)
	if !inOK {
		fields = append(fields, "clock_in")
	}
	clockOut, outOK := parseClock(req.ClockOut)
	if !outOK {
		fields = append(fields, "clock_out")
	} else if inOK && !clockOut.After(clockIn) {
		fields = append(fields, "clock_out")
	}
	if req.Reason == "" {
		fields = append(fields, "reason")
	}
	if req.BreakMinutes < 0 {
		fields = append(fields, "break_minutes")
	}
	if req.OvertimeHours < 0 {
		fields = append(fields, "overtime_hours")
	}

	if len(fields) > 0 {
		s.logger.Warn("submit correction validation failed", zap.Strings("fields", fields))
		return RequestResponse{}, apperror.NewValidation(fields)
	}

	route, err := s.resolver.Resolve(ctx, domain.CategoryCorrection, caller)
	if err != nil {
		return RequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit correction begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c := &AttendanceCorrection{
		ID:            uuid.New(),
		RequesterID:   uuid.MustParse(caller.ID),
		Department:    caller.Department,
		TargetDate:    targetDate,
		ClockIn:       req.ClockIn,
		ClockOut:      req.ClockOut,
		BreakMinutes:  req.BreakMinutes,
		OvertimeHours: req.OvertimeHours,
		Reason:        req.Reason,
		Status:        StatusPending,
		Route:         route,
	}

	if err := qtx.CreateCorrection(ctx, c); err != nil {
		s.logger.Error("submit correction persist failed", zap.Error(err))
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit correction commit failed", zap.Error(err))
		return RequestResponse{}, err
	}
	s.logger.Info("submit correction success",
		zap.String("request_id", c.ID.String()),
		zap.String("requester_id", caller.ID),
	)

	c.Requester = &UserRef{ID: c.RequesterID, FullName: caller.FullName}
	return mapCorrectionToResponse(*c), nil
}

func (s *service) List(ctx context.Context, callerID, scope, category string) ([]RequestResponse, error) {
	if !domain.ValidCategory(category) {
		return nil, requesterrors.ErrInvalidCategory
	}
	if !validCallerID(callerID) {
		return nil, requesterrors.ErrInvalidCallerID
	}

	caller, err := s.directory.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}

	policy, err := policyFor(caller, scope)
	if err != nil {
		return nil, err
	}

	switch category {
	case domain.CategoryLeave:
		items, err := policy.leaves(ctx, s.repo)
		if err != nil {
			return nil, err
		}
		return mapLeaveListToResponse(items), nil
	default:
		items, err := policy.corrections(ctx, s.repo)
		if err != nil {
			return nil, err
		}
		return mapCorrectionListToResponse(items), nil
	}
}

func (s *service) Decide(ctx context.Context, callerID string, req DecideRequest) (RequestResponse, error) {
	s.logger.Debug("decide requested",
		zap.String("caller_id", callerID),
		zap.String("category", req.Category),
		zap.String("request_id", req.ID),
		zap.String("action", req.Action),
	)

	if !domain.ValidCategory(req.Category) {
		return RequestResponse{}, requesterrors.ErrInvalidCategory
	}
	var status string
	switch req.Action {
	case ActionApprove:
		status = StatusApproved
	case ActionReject:
		status = StatusRejected
	default:
		return RequestResponse{}, requesterrors.ErrInvalidAction
	}
	if !validCallerID(callerID) {
		return RequestResponse{}, requesterrors.ErrInvalidCallerID
	}

	caller, err := s.directory.Resolve(ctx, callerID)
	if err != nil {
		return RequestResponse{}, err
	}

	if req.Category == domain.CategoryLeave {
		return s.decideLeave(ctx, caller, req, status)
	}
	return s.decideCorrection(ctx, caller, req, status)
}

func (s *service) decideLeave(ctx context.Context, caller directory.UserResponse, req DecideRequest, status string) (RequestResponse, error) {
	l, err := s.repo.FindLeaveByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	if l.Status != StatusPending {
		return RequestResponse{}, requesterrors.ErrNotPending
	}

	if err := s.authorizeDecision(ctx, caller, l.RequesterID.String(), l.Route); err != nil {
		return RequestResponse{}, err
	}

	now := time.Now().UTC()
	approverID := uuid.MustParse(caller.ID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rows, err := qtx.DecideLeave(ctx, req.ID, approverID, status, req.Comment, now)
	if err != nil {
		s.logger.Error("decide leave persist failed", zap.String("request_id", req.ID), zap.Error(err))
		return RequestResponse{}, err
	}
	if rows == 0 {
		// A concurrent decision won the conditional update.
		s.logger.Warn("decide leave lost transition race", zap.String("request_id", req.ID))
		return RequestResponse{}, requesterrors.ErrNotPending
	}

	if err := s.enqueueDecidedEvent(ctx, tx, domain.CategoryLeave, l.ID.String(), l.RequesterID.String(), caller.ID, status, req.Comment, now); err != nil {
		s.logger.Error("decide leave enqueue event failed", zap.String("request_id", req.ID), zap.Error(err))
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("request_id", req.ID), zap.Error(err))
		return RequestResponse{}, err
	}
	s.logger.Info("decide leave success",
		zap.String("request_id", req.ID),
		zap.String("status", status),
		zap.String("approver_id", caller.ID),
	)

	l.Status = status
	l.ApproverID = &approverID
	l.DecisionComment = &req.Comment
	l.DecidedAt = &now
	return mapLeaveToResponse(*l), nil
}

func (s *service) decideCorrection(ctx context.Context, caller directory.UserResponse, req DecideRequest, status string) (RequestResponse, error) {
	c, err := s.repo.FindCorrectionByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	if c.Status != StatusPending {
		return RequestResponse{}, requesterrors.ErrNotPending
	}

	if err := s.authorizeDecision(ctx, caller, c.RequesterID.String(), c.Route); err != nil {
		return RequestResponse{}, err
	}

	now := time.Now().UTC()
	approverID := uuid.MustParse(caller.ID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide correction begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rows, err := qtx.DecideCorrection(ctx, req.ID, approverID, status, req.Comment, now)
	if err != nil {
		s.logger.Error("decide correction persist failed", zap.String("request_id", req.ID), zap.Error(err))
		return RequestResponse{}, err
	}
	if rows == 0 {
		s.logger.Warn("decide correction lost transition race", zap.String("request_id", req.ID))
		return RequestResponse{}, requesterrors.ErrNotPending
	}

	if err := s.enqueueDecidedEvent(ctx, tx, domain.CategoryCorrection, c.ID.String(), c.RequesterID.String(), caller.ID, status, req.Comment, now); err != nil {
		s.logger.Error("decide correction enqueue event failed", zap.String("request_id", req.ID), zap.Error(err))
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide correction commit failed", zap.String("request_id", req.ID), zap.Error(err))
		return RequestResponse{}, err
	}
	s.logger.Info("decide correction success",
		zap.String("request_id", req.ID),
		zap.String("status", status),
		zap.String("approver_id", caller.ID),
	)

	c.Status = status
	c.ApproverID = &approverID
	c.DecisionComment = &req.Comment
	c.DecidedAt = &now
	return mapCorrectionToResponse(*c), nil
}

// authorizeDecision checks the caller against the route frozen on the
// request. Self-approval is rejected first, for every role.
func (s *service) authorizeDecision(ctx context.Context, caller directory.UserResponse, requesterID string, route domain.RouteSteps) error {
	if caller.ID == requesterID {
		return requesterrors.ErrSelfApproval
	}
	if len(route) == 0 {
		return routingerrors.ErrNoRouteConfigured
	}
	if caller.Role == directory.RoleAdmin {
		return nil
	}

	requester, err := s.directory.Resolve(ctx, requesterID)
	if err != nil {
		return err
	}

	// Single-step approval: the first step is the one that must be satisfied.
	step := route[0]
	switch step.Type {
	case domain.StepManager:
		if requester.ManagerID != nil && *requester.ManagerID == caller.ID {
			return nil
		}
	case domain.StepAdmin:
		// Only admins satisfy this step; handled by the role check above.
	case domain.StepUser:
		if step.UserID == caller.ID {
			return nil
		}
	}
	return requesterrors.ErrNotApprover
}

func (s *service) enqueueDecidedEvent(ctx context.Context, tx *sql.Tx, category, requestID, requesterID, approverID, status, comment string, decidedAt time.Time) error {
	payload, err := json.Marshal(events.RequestDecided{
		RequestID:   requestID,
		Category:    category,
		RequesterID: requesterID,
		ApproverID:  approverID,
		Status:      status,
		Comment:     comment,
		DecidedAt:   decidedAt,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     requestID,
		AggregateType: events.AggregateTypeRequest,
		AggregateID:   requestID,
		EventType:     events.EventTypeRequestDecided,
		Topic:         events.TopicRequestDecided,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// validCallerID rejects malformed user_id claims before they reach a
// uuid-typed query.
func validCallerID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func parseDate(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseClock(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("15:04", v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
