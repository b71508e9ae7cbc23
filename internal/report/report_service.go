package report

import (
	"context"
	"sort"
	"strconv"
	"time"

	"go-shinsei/internal/directory"
	"go-shinsei/internal/domain"
	"go-shinsei/internal/settings"

	"go.uber.org/zap"
)

// Service summarizes approved requests. Pending and rejected records never
// appear in either the aggregate or the export.
type Service interface {
	Aggregate(ctx context.Context, f Filter) (AggregateReport, error)
	Export(ctx context.Context, f Filter) (ExportResult, error)
}

type service struct {
	repo      Repository
	directory directory.Service
	settings  settings.Service
	logger    *zap.Logger
}

func NewService(repo Repository, dir directory.Service, settingsSvc settings.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, directory: dir, settings: settingsSvc, logger: l}
}

func (s *service) Aggregate(ctx context.Context, f Filter) (AggregateReport, error) {
	leaves, err := s.repo.FindApprovedLeave(ctx, f)
	if err != nil {
		return AggregateReport{}, err
	}
	corrections, err := s.repo.FindApprovedCorrections(ctx, f)
	if err != nil {
		return AggregateReport{}, err
	}

	users, err := s.userIndex(ctx)
	if err != nil {
		return AggregateReport{}, err
	}
	types, err := s.typeIndex(ctx)
	if err != nil {
		return AggregateReport{}, err
	}
	holidays, err := s.settings.Holidays(ctx)
	if err != nil {
		return AggregateReport{}, err
	}

	type groupKey struct {
		employee string
		typeCode string
	}
	groups := make(map[groupKey]*AggregateRow)
	quotaTaken := make(map[string]int)

	for _, l := range leaves {
		key := groupKey{employee: l.RequesterID.String(), typeCode: l.LeaveTypeCode}
		row, ok := groups[key]
		if !ok {
			row = &AggregateRow{
				EmployeeID: key.employee,
				Department: l.Department,
				Category:   domain.CategoryLeave,
				Type:       l.LeaveTypeCode,
			}
			if u, ok := users[key.employee]; ok {
				row.EmployeeName = u.FullName
			}
			groups[key] = row
		}

		days := l.TotalDays
		if lt, ok := types[l.LeaveTypeCode]; ok && lt.CountsAgainstQuota {
			days -= holidaysInRange(l.StartDate, l.EndDate, holidays)
			if days < 0 {
				days = 0
			}
			quotaTaken[key.employee] += days
		}
		row.Count++
		row.TotalDays += days
	}

	for _, c := range corrections {
		key := groupKey{employee: c.RequesterID.String(), typeCode: domain.CategoryCorrection}
		row, ok := groups[key]
		if !ok {
			row = &AggregateRow{
				EmployeeID: key.employee,
				Department: c.Department,
				Category:   domain.CategoryCorrection,
			}
			if u, ok := users[key.employee]; ok {
				row.EmployeeName = u.FullName
			}
			groups[key] = row
		}
		row.Count++
	}

	rows := make([]AggregateRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].EmployeeID != rows[j].EmployeeID {
			return rows[i].EmployeeID < rows[j].EmployeeID
		}
		return rows[i].Type < rows[j].Type
	})

	totals := make([]LeaveTotal, 0, len(quotaTaken))
	for employeeID, taken := range quotaTaken {
		total := LeaveTotal{
			EmployeeID:     employeeID,
			LeaveDaysTaken: taken,
		}
		if u, ok := users[employeeID]; ok {
			total.EmployeeName = u.FullName
			total.Department = u.Department
			remaining := u.AnnualLeaveAllowance - taken
			if remaining < 0 {
				remaining = 0
			}
			total.LeaveDaysLeft = remaining
		}
		totals = append(totals, total)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].EmployeeID < totals[j].EmployeeID
	})

	return AggregateReport{
		Rows:            rows,
		LeaveTotals:     totals,
		CorrectionCount: len(corrections),
	}, nil
}

func (s *service) Export(ctx context.Context, f Filter) (ExportResult, error) {
	leaves, err := s.repo.FindApprovedLeave(ctx, f)
	if err != nil {
		return ExportResult{}, err
	}
	corrections, err := s.repo.FindApprovedCorrections(ctx, f)
	if err != nil {
		return ExportResult{}, err
	}

	users, err := s.userIndex(ctx)
	if err != nil {
		return ExportResult{}, err
	}

	type exportRow struct {
		decidedAt time.Time
		id        string
		cells     []string
	}
	rows := make([]exportRow, 0, len(leaves)+len(corrections))

	name := func(id string) string {
		if u, ok := users[id]; ok {
			return u.FullName
		}
		return ""
	}

	for _, l := range leaves {
		approver := ""
		if l.ApproverID != nil {
			approver = name(l.ApproverID.String())
		}
		comment := ""
		if l.DecisionComment != nil {
			comment = *l.DecisionComment
		}
		decided := time.Time{}
		decidedCell := ""
		if l.DecidedAt != nil {
			decided = *l.DecidedAt
			decidedCell = decided.Format("2006-01-02")
		}
		rows = append(rows, exportRow{
			decidedAt: decided,
			id:        l.ID.String(),
			cells: []string{
				domain.CategoryLeave,
				l.RequesterID.String(),
				name(l.RequesterID.String()),
				l.Department,
				l.LeaveTypeCode,
				l.StartDate.Format("2006-01-02"),
				l.EndDate.Format("2006-01-02"),
				strconv.Itoa(l.TotalDays),
				decidedCell,
				approver,
				l.Reason,
				comment,
			},
		})
	}

	for _, c := range corrections {
		approver := ""
		if c.ApproverID != nil {
			approver = name(c.ApproverID.String())
		}
		comment := ""
		if c.DecisionComment != nil {
			comment = *c.DecisionComment
		}
		decided := time.Time{}
		decidedCell := ""
		if c.DecidedAt != nil {
			decided = *c.DecidedAt
			decidedCell = decided.Format("2006-01-02")
		}
		day := c.TargetDate.Format("2006-01-02")
		rows = append(rows, exportRow{
			decidedAt: decided,
			id:        c.ID.String(),
			cells: []string{
				domain.CategoryCorrection,
				c.RequesterID.String(),
				name(c.RequesterID.String()),
				c.Department,
				"",
				day,
				day,
				"0",
				decidedCell,
				approver,
				c.Reason,
				comment,
			},
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].decidedAt.Equal(rows[j].decidedAt) {
			return rows[i].decidedAt.Before(rows[j].decidedAt)
		}
		return rows[i].id < rows[j].id
	})

	result := ExportResult{
		Header: ExportColumns,
		Rows:   make([][]string, len(rows)),
	}
	for i, row := range rows {
		result.Rows[i] = row.cells
	}
	return result, nil
}

func (s *service) userIndex(ctx context.Context) (map[string]directory.UserResponse, error) {
	users, err := s.directory.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]directory.UserResponse, len(users))
	for _, u := range users {
		index[u.ID] = u
	}
	return index, nil
}

func (s *service) typeIndex(ctx context.Context) (map[string]settings.LeaveTypeResponse, error) {
	types, err := s.settings.LeaveTypes(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]settings.LeaveTypeResponse, len(types))
	for _, lt := range types {
		index[lt.Code] = lt
	}
	return index, nil
}

func holidaysInRange(start, end time.Time, holidays []time.Time) int {
	count := 0
	for _, h := range holidays {
		if !h.Before(start) && !h.After(end) {
			count++
		}
	}
	return count
}
