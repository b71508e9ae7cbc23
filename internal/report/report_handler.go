package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-shinsei/internal/shared/apperror"
	"go-shinsei/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	aggregateCacheTTL    = 60 * time.Second
	aggregateCachePrefix = "report:aggregate:"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("report request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseFilter(c *gin.Context) (Filter, error) {
	var f Filter
	if v := c.Query("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return Filter{}, apperror.InvalidField("start")
		}
		f.From = &t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return Filter{}, apperror.InvalidField("end")
		}
		// Inclusive upper bound on the decided day.
		t = t.Add(24*time.Hour - time.Nanosecond)
		f.To = &t
	}
	f.Department = c.Query("department")
	f.EmployeeID = c.Query("employee")
	return f, nil
}

func cacheKey(f Filter) string {
	from, to := "", ""
	if f.From != nil {
		from = f.From.Format("2006-01-02")
	}
	if f.To != nil {
		to = f.To.Format("2006-01-02")
	}
	return fmt.Sprintf("%s%s:%s:%s:%s", aggregateCachePrefix, from, to, f.Department, f.EmployeeID)
}

func (h *Handler) Aggregate(c *gin.Context) {
	ctx := c.Request.Context()

	f, err := parseFilter(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	key := cacheKey(f)
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, key).Result(); err == nil {
			var report AggregateReport
			if err := json.Unmarshal([]byte(cached), &report); err == nil {
				response.Success(c, http.StatusOK, report, nil)
				return
			}
		}
	}

	report, err := h.service.Aggregate(ctx, f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if raw, err := json.Marshal(report); err == nil {
			if err := h.rdb.Set(ctx, key, raw, aggregateCacheTTL).Err(); err != nil {
				h.logger.Warn("report cache set failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	response.Success(c, http.StatusOK, report, nil)
}

func (h *Handler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	f, err := parseFilter(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	result, err := h.service.Export(ctx, f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	// UTF-8 BOM so spreadsheet tools detect the encoding.
	buf.WriteString("\ufeff")
	w := csv.NewWriter(&buf)
	if err := w.Write(result.Header); err != nil {
		h.writeServiceError(c, err)
		return
	}
	if err := w.WriteAll(result.Rows); err != nil {
		h.writeServiceError(c, err)
		return
	}
	w.Flush()

	c.Header("Content-Disposition", `attachment; filename="reports.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
