package settings

import (
	"context"
	"time"

	"go-shinsei/internal/domain"
	settingserrors "go-shinsei/internal/settings/errors"

	"go.uber.org/zap"
)

// Service exposes read-only lookup snapshots to the workflow engine and the
// admin-only update path that refreshes them.
type Service interface {
	LeaveTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	LeaveTypeByCode(ctx context.Context, code string) (*LeaveTypeResponse, error)
	Holidays(ctx context.Context) ([]time.Time, error)
	Routes(ctx context.Context) ([]ApprovalRouteResponse, error)
	Get(ctx context.Context) (SettingsResponse, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("settings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) LeaveTypes(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindLeaveTypes(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapLeaveType(lt)
	}
	return resp, nil
}

func (s *service) LeaveTypeByCode(ctx context.Context, code string) (*LeaveTypeResponse, error) {
	types, err := s.repo.FindLeaveTypes(ctx)
	if err != nil {
		return nil, err
	}
	for _, lt := range types {
		if lt.Code == code {
			resp := mapLeaveType(lt)
			return &resp, nil
		}
	}
	return nil, nil
}

func (s *service) Holidays(ctx context.Context) ([]time.Time, error) {
	holidays, err := s.repo.FindHolidays(ctx)
	if err != nil {
		return nil, err
	}
	days := make([]time.Time, len(holidays))
	for i, h := range holidays {
		days[i] = h.Day
	}
	return days, nil
}

func (s *service) Routes(ctx context.Context) ([]ApprovalRouteResponse, error) {
	routes, err := s.repo.FindRoutes(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]ApprovalRouteResponse, len(routes))
	for i, r := range routes {
		resp[i] = mapRoute(r)
	}
	return resp, nil
}

func (s *service) Get(ctx context.Context) (SettingsResponse, error) {
	types, err := s.repo.FindLeaveTypes(ctx)
	if err != nil {
		return SettingsResponse{}, err
	}
	holidays, err := s.repo.FindHolidays(ctx)
	if err != nil {
		return SettingsResponse{}, err
	}
	routes, err := s.repo.FindRoutes(ctx)
	if err != nil {
		return SettingsResponse{}, err
	}
	return mapSettings(types, holidays, routes), nil
}

func (s *service) Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error) {
	s.logger.Debug("update settings requested",
		zap.Int("leave_types", len(req.LeaveTypes)),
		zap.Int("holidays", len(req.Holidays)),
		zap.Int("routes", len(req.Routes)),
	)

	if req.LeaveTypes != nil {
		types, err := buildLeaveTypes(req.LeaveTypes)
		if err != nil {
			return SettingsResponse{}, err
		}
		if err := s.repo.ReplaceLeaveTypes(ctx, types); err != nil {
			s.logger.Error("replace leave types failed", zap.Error(err))
			return SettingsResponse{}, err
		}
	}

	if req.Holidays != nil {
		holidays := make([]Holiday, 0, len(req.Holidays))
		for _, v := range req.Holidays {
			day, ok := parseDay(v)
			if !ok {
				return SettingsResponse{}, settingserrors.ErrInvalidHolidayDate
			}
			holidays = append(holidays, Holiday{Day: day})
		}
		if err := s.repo.ReplaceHolidays(ctx, holidays); err != nil {
			s.logger.Error("replace holidays failed", zap.Error(err))
			return SettingsResponse{}, err
		}
	}

	if req.Routes != nil {
		routes, err := buildRoutes(req.Routes)
		if err != nil {
			return SettingsResponse{}, err
		}
		if err := s.repo.ReplaceRoutes(ctx, routes); err != nil {
			s.logger.Error("replace routes failed", zap.Error(err))
			return SettingsResponse{}, err
		}
	}

	s.logger.Info("settings updated")
	return s.Get(ctx)
}

func buildLeaveTypes(inputs []LeaveTypeInput) ([]LeaveType, error) {
	seen := make(map[string]bool, len(inputs))
	types := make([]LeaveType, 0, len(inputs))
	for _, in := range inputs {
		if seen[in.Code] {
			return nil, settingserrors.ErrDuplicateLeaveType
		}
		seen[in.Code] = true
		types = append(types, LeaveType{
			Code:               in.Code,
			Label:              in.Label,
			RequiresReason:     in.RequiresReason,
			CountsAgainstQuota: in.CountsAgainstQuota,
		})
	}
	return types, nil
}

func buildRoutes(inputs []ApprovalRouteInput) ([]ApprovalRoute, error) {
	routes := make([]ApprovalRoute, 0, len(inputs))
	for _, in := range inputs {
		if len(in.Steps) == 0 {
			return nil, settingserrors.ErrEmptyRouteSteps
		}
		for _, step := range in.Steps {
			switch step.Type {
			case domain.StepManager, domain.StepAdmin:
			case domain.StepUser:
				if step.UserID == "" {
					return nil, settingserrors.ErrInvalidRouteStep
				}
			default:
				return nil, settingserrors.ErrInvalidRouteStep
			}
		}
		routes = append(routes, ApprovalRoute{
			Category:   in.Category,
			Department: in.Department,
			Steps:      in.Steps,
		})
	}
	return routes, nil
}
