package report_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-shinsei/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type fakeReportService struct {
	aggregateFn func(ctx context.Context, f report.Filter) (report.AggregateReport, error)
	exportFn    func(ctx context.Context, f report.Filter) (report.ExportResult, error)
}

func (f *fakeReportService) Aggregate(ctx context.Context, filter report.Filter) (report.AggregateReport, error) {
	return f.aggregateFn(ctx, filter)
}

func (f *fakeReportService) Export(ctx context.Context, filter report.Filter) (report.ExportResult, error) {
	return f.exportFn(ctx, filter)
}

func sampleReport() report.AggregateReport {
	return report.AggregateReport{
		Rows: []report.AggregateRow{{
			EmployeeID:   aliceID.String(),
			EmployeeName: "Alice Tanaka",
			Department:   "Sales",
			Category:     "leave",
			Type:         "paid",
			Count:        1,
			TotalDays:    3,
		}},
		LeaveTotals: []report.LeaveTotal{{
			EmployeeID:     aliceID.String(),
			EmployeeName:   "Alice Tanaka",
			Department:     "Sales",
			LeaveDaysTaken: 3,
			LeaveDaysLeft:  17,
		}},
		CorrectionCount: 0,
	}
}

func TestReportHandler_Aggregate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cacheKey := "report:aggregate::::"

	t.Run("cache hit skips the service", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		cached, err := json.Marshal(sampleReport())
		assert.NoError(t, err)
		redisMock.ExpectGet(cacheKey).SetVal(string(cached))

		called := false
		svc := &fakeReportService{
			aggregateFn: func(ctx context.Context, f report.Filter) (report.AggregateReport, error) {
				called = true
				return report.AggregateReport{}, nil
			},
		}
		h := report.NewHandlerWithRedis(svc, rdb)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/reports", nil)
		h.Aggregate(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, called)
		assert.Contains(t, w.Body.String(), "Alice Tanaka")
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss computes and stores", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		result := sampleReport()
		raw, err := json.Marshal(result)
		assert.NoError(t, err)

		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSet(cacheKey, raw, 60*time.Second).SetVal("OK")

		svc := &fakeReportService{
			aggregateFn: func(ctx context.Context, f report.Filter) (report.AggregateReport, error) {
				assert.Nil(t, f.From)
				assert.Nil(t, f.To)
				return result, nil
			},
		}
		h := report.NewHandlerWithRedis(svc, rdb)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/reports", nil)
		h.Aggregate(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "leave_days_remaining")
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("filter dates are parsed and forwarded", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet("report:aggregate:2025-07-01:2025-07-31:Sales:").RedisNil()

		svc := &fakeReportService{
			aggregateFn: func(ctx context.Context, f report.Filter) (report.AggregateReport, error) {
				assert.NotNil(t, f.From)
				assert.Equal(t, "2025-07-01", f.From.Format("2006-01-02"))
				assert.NotNil(t, f.To)
				assert.Equal(t, "2025-07-31", f.To.Format("2006-01-02"))
				assert.Equal(t, "Sales", f.Department)
				return report.AggregateReport{}, nil
			},
		}
		h := report.NewHandlerWithRedis(svc, rdb)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/reports?start=2025-07-01&end=2025-07-31&department=Sales", nil)
		h.Aggregate(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid start date is a 400", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		h := report.NewHandlerWithRedis(&fakeReportService{}, rdb)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/reports?start=July", nil)
		h.Aggregate(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})
}

func TestReportHandler_Export(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rdb, _ := redismock.NewClientMock()
	svc := &fakeReportService{
		exportFn: func(ctx context.Context, f report.Filter) (report.ExportResult, error) {
			return report.ExportResult{
				Header: report.ExportColumns,
				Rows: [][]string{{
					"leave", aliceID.String(), "Alice Tanaka", "Sales", "paid",
					"2025-07-07", "2025-07-09", "3", "2025-07-10", "Mika Yamada",
					"family trip", "enjoy",
				}},
			}, nil
		},
	}
	h := report.NewHandlerWithRedis(svc, rdb)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/reports/export", nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "reports.csv")

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "\uFEFF"))
	assert.Contains(t, body, strings.Join(report.ExportColumns, ","))
	assert.Contains(t, body, "Alice Tanaka")
}
