package request_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-shinsei/internal/domain"
	"go-shinsei/internal/request"
	requesterrors "go-shinsei/internal/request/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRequestService struct {
	submitLeaveFn      func(ctx context.Context, callerID string, req request.CreateLeaveRequest) (request.RequestResponse, error)
	submitCorrectionFn func(ctx context.Context, callerID string, req request.CreateCorrectionRequest) (request.RequestResponse, error)
	listFn             func(ctx context.Context, callerID, scope, category string) ([]request.RequestResponse, error)
	decideFn           func(ctx context.Context, callerID string, req request.DecideRequest) (request.RequestResponse, error)
}

func (f *fakeRequestService) SubmitLeave(ctx context.Context, callerID string, req request.CreateLeaveRequest) (request.RequestResponse, error) {
	return f.submitLeaveFn(ctx, callerID, req)
}
func (f *fakeRequestService) SubmitCorrection(ctx context.Context, callerID string, req request.CreateCorrectionRequest) (request.RequestResponse, error) {
	return f.submitCorrectionFn(ctx, callerID, req)
}
func (f *fakeRequestService) List(ctx context.Context, callerID, scope, category string) ([]request.RequestResponse, error) {
	return f.listFn(ctx, callerID, scope, category)
}
func (f *fakeRequestService) Decide(ctx context.Context, callerID string, req request.DecideRequest) (request.RequestResponse, error) {
	return f.decideFn(ctx, callerID, req)
}

type fakeCacheInvalidator struct {
	invalidated bool
}

func (f *fakeCacheInvalidator) InvalidateAggregates(ctx context.Context) {
	f.invalidated = true
}

func TestHandler_SubmitLeave(t *testing.T) {
	gin.SetMode(gin.TestMode)
	callerID := uuid.New().String()

	svc := &fakeRequestService{
		submitLeaveFn: func(ctx context.Context, cid string, req request.CreateLeaveRequest) (request.RequestResponse, error) {
			assert.Equal(t, callerID, cid)
			assert.Equal(t, "paid", req.LeaveType)
			return request.RequestResponse{ID: uuid.New().String(), Status: request.StatusPending}, nil
		},
	}
	h := request.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", callerID)
	c.Request = httptest.NewRequest(http.MethodPost, "/leave_requests",
		strings.NewReader(`{"leave_type":"paid","start_date":"2025-07-07","end_date":"2025-07-09"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.SubmitLeave(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), request.StatusPending)
}

func TestHandler_SubmitLeave_InvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := request.NewHandler(&fakeRequestService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/leave_requests", strings.NewReader(`{`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.SubmitLeave(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	callerID := uuid.New().String()

	t.Run("passes scope through and paginates", func(t *testing.T) {
		svc := &fakeRequestService{
			listFn: func(ctx context.Context, cid, scope, category string) ([]request.RequestResponse, error) {
				assert.Equal(t, callerID, cid)
				assert.Equal(t, request.ScopeTeam, scope)
				assert.Equal(t, domain.CategoryLeave, category)
				return []request.RequestResponse{{ID: uuid.New().String()}, {ID: uuid.New().String()}}, nil
			},
		}
		h := request.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", callerID)
		c.Request = httptest.NewRequest(http.MethodGet, "/leave_requests?scope=team&page=1&page_size=1", nil)
		h.ListLeave(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "\"meta\"")
	})

	t.Run("forbidden scope maps to 403", func(t *testing.T) {
		svc := &fakeRequestService{
			listFn: func(ctx context.Context, cid, scope, category string) ([]request.RequestResponse, error) {
				return nil, requesterrors.ErrScopeForbidden
			},
		}
		h := request.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", callerID)
		c.Request = httptest.NewRequest(http.MethodGet, "/attendance_corrections?scope=all", nil)
		h.ListCorrections(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})
}

func TestHandler_Decide(t *testing.T) {
	gin.SetMode(gin.TestMode)
	callerID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeRequestService{
			decideFn: func(ctx context.Context, cid string, req request.DecideRequest) (request.RequestResponse, error) {
				assert.Equal(t, callerID, cid)
				assert.Equal(t, request.ActionApprove, req.Action)
				return request.RequestResponse{ID: req.ID, Status: request.StatusApproved}, nil
			},
		}
		h := request.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", callerID)
		c.Request = httptest.NewRequest(http.MethodPost, "/approvals",
			strings.NewReader(`{"category":"leave","id":"`+uuid.New().String()+`","action":"approved"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), request.StatusApproved)
	})

	t.Run("binding rejects unknown action with field detail", func(t *testing.T) {
		h := request.NewHandler(&fakeRequestService{})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", callerID)
		c.Request = httptest.NewRequest(http.MethodPost, "/approvals",
			strings.NewReader(`{"category":"leave","id":"x","action":"maybe"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("conflict on already decided", func(t *testing.T) {
		svc := &fakeRequestService{
			decideFn: func(ctx context.Context, cid string, req request.DecideRequest) (request.RequestResponse, error) {
				return request.RequestResponse{}, requesterrors.ErrNotPending
			},
		}
		h := request.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", callerID)
		c.Request = httptest.NewRequest(http.MethodPost, "/approvals",
			strings.NewReader(`{"category":"leave","id":"`+uuid.New().String()+`","action":"rejected"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Decide(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
	})

	t.Run("busts the aggregate cache after a decision", func(t *testing.T) {
		svc := &fakeRequestService{
			decideFn: func(ctx context.Context, cid string, req request.DecideRequest) (request.RequestResponse, error) {
				return request.RequestResponse{ID: req.ID, Status: request.StatusApproved}, nil
			},
		}
		cache := &fakeCacheInvalidator{}
		h := request.NewHandlerWithCache(svc, cache)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", callerID)
		c.Request = httptest.NewRequest(http.MethodPost, "/approvals",
			strings.NewReader(`{"category":"leave","id":"`+uuid.New().String()+`","action":"approved"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, cache.invalidated)
	})

	t.Run("keeps the cache when the decision fails", func(t *testing.T) {
		svc := &fakeRequestService{
			decideFn: func(ctx context.Context, cid string, req request.DecideRequest) (request.RequestResponse, error) {
				return request.RequestResponse{}, requesterrors.ErrNotPending
			},
		}
		cache := &fakeCacheInvalidator{}
		h := request.NewHandlerWithCache(svc, cache)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", callerID)
		c.Request = httptest.NewRequest(http.MethodPost, "/approvals",
			strings.NewReader(`{"category":"leave","id":"`+uuid.New().String()+`","action":"rejected"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Decide(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.False(t, cache.invalidated)
	})
}
