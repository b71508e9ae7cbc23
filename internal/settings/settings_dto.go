package settings

import (
	"time"

	"go-shinsei/internal/domain"
)

type LeaveTypeResponse struct {
	Code               string `json:"code"`
	Label              string `json:"label"`
	RequiresReason     bool   `json:"requires_reason"`
	CountsAgainstQuota bool   `json:"counts_against_quota"`
}

type ApprovalRouteResponse struct {
	Category   string            `json:"category"`
	Department *string           `json:"department,omitempty"`
	Steps      domain.RouteSteps `json:"steps"`
}

type SettingsResponse struct {
	LeaveTypes []LeaveTypeResponse     `json:"leave_types"`
	Holidays   []string                `json:"holidays"`
	Routes     []ApprovalRouteResponse `json:"approval_routes"`
}

type LeaveTypeInput struct {
	Code               string `json:"code" binding:"required"`
	Label              string `json:"label" binding:"required"`
	RequiresReason     bool   `json:"requires_reason"`
	CountsAgainstQuota bool   `json:"counts_against_quota"`
}

type ApprovalRouteInput struct {
	Category   string            `json:"category" binding:"required,oneof=leave correction"`
	Department *string           `json:"department"`
	Steps      domain.RouteSteps `json:"steps" binding:"required"`
}

// UpdateSettingsRequest replaces whichever sections are present; nil
// sections are left untouched, matching the admin settings path.
type UpdateSettingsRequest struct {
	LeaveTypes []LeaveTypeInput     `json:"leave_types"`
	Holidays   []string             `json:"holidays"`
	Routes     []ApprovalRouteInput `json:"approval_routes"`
}

func mapLeaveType(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		Code:               lt.Code,
		Label:              lt.Label,
		RequiresReason:     lt.RequiresReason,
		CountsAgainstQuota: lt.CountsAgainstQuota,
	}
}

func mapHoliday(h Holiday) string {
	return h.Day.Format("2006-01-02")
}

func mapRoute(r ApprovalRoute) ApprovalRouteResponse {
	return ApprovalRouteResponse{
		Category:   r.Category,
		Department: r.Department,
		Steps:      r.Steps,
	}
}

func mapSettings(types []LeaveType, holidays []Holiday, routes []ApprovalRoute) SettingsResponse {
	resp := SettingsResponse{
		LeaveTypes: make([]LeaveTypeResponse, len(types)),
		Holidays:   make([]string, len(holidays)),
		Routes:     make([]ApprovalRouteResponse, len(routes)),
	}
	for i, lt := range types {
		resp.LeaveTypes[i] = mapLeaveType(lt)
	}
	for i, h := range holidays {
		resp.Holidays[i] = mapHoliday(h)
	}
	for i, r := range routes {
		resp.Routes[i] = mapRoute(r)
	}
	return resp
}

func parseDay(v string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
