package request

import (
	"context"

	"go-shinsei/internal/directory"
	requesterrors "go-shinsei/internal/request/errors"
)

const (
	ScopeMine = "mine"
	ScopeTeam = "team"
	ScopeAll  = "all"
)

// scopePolicy is one visibility variant per role/scope combination. Every
// list read goes through exactly one policy, so role checks live in
// policyFor and nowhere else.
type scopePolicy interface {
	leaves(ctx context.Context, repo Repository) ([]LeaveRequest, error)
	corrections(ctx context.Context, repo Repository) ([]AttendanceCorrection, error)
}

// mineScope: requester-identity-exact, regardless of role.
type mineScope struct {
	callerID string
}

func (s mineScope) leaves(ctx context.Context, repo Repository) ([]LeaveRequest, error) {
	return repo.FindLeaveByRequester(ctx, s.callerID)
}

func (s mineScope) corrections(ctx context.Context, repo Repository) ([]AttendanceCorrection, error) {
	return repo.FindCorrectionsByRequester(ctx, s.callerID)
}

// teamScope: the caller's own requests plus their direct reports'.
type teamScope struct {
	callerID string
}

func (s teamScope) leaves(ctx context.Context, repo Repository) ([]LeaveRequest, error) {
	return repo.FindLeaveByTeam(ctx, s.callerID)
}

func (s teamScope) corrections(ctx context.Context, repo Repository) ([]AttendanceCorrection, error) {
	return repo.FindCorrectionsByTeam(ctx, s.callerID)
}

// allScope: every request in the category.
type allScope struct{}

func (allScope) leaves(ctx context.Context, repo Repository) ([]LeaveRequest, error) {
	return repo.FindAllLeave(ctx)
}

func (allScope) corrections(ctx context.Context, repo Repository) ([]AttendanceCorrection, error) {
	return repo.FindAllCorrections(ctx)
}

// policyFor maps (caller role, requested scope) to a visibility variant.
// Admins asking for team visibility get the whole collection.
func policyFor(caller directory.UserResponse, scope string) (scopePolicy, error) {
	switch scope {
	case "", ScopeMine:
		return mineScope{callerID: caller.ID}, nil
	case ScopeTeam:
		switch caller.Role {
		case directory.RoleManager:
			return teamScope{callerID: caller.ID}, nil
		case directory.RoleAdmin:
			return allScope{}, nil
		default:
			return nil, requesterrors.ErrScopeForbidden
		}
	case ScopeAll:
		if caller.Role != directory.RoleAdmin {
			return nil, requesterrors.ErrScopeForbidden
		}
		return allScope{}, nil
	default:
		return nil, requesterrors.ErrInvalidScope
	}
}
