package rbac_test

import (
	"testing"

	"go-shinsei/internal/directory"
	"go-shinsei/internal/domain"
	"go-shinsei/internal/rbac"
	"go-shinsei/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	svc := rbac.NewService(enforcer)
	assert.NoError(t, svc.LoadPolicy())
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"employee can create requests", directory.RoleEmployee, "request", "create", true},
		{"employee can read requests", directory.RoleEmployee, "request", "read", true},
		{"employee cannot approve", directory.RoleEmployee, "request", "approve", false},
		{"employee cannot read reports", directory.RoleEmployee, "report", "read", false},
		{"manager can approve", directory.RoleManager, "request", "approve", true},
		{"manager inherits request create", directory.RoleManager, "request", "create", true},
		{"manager can read reports", directory.RoleManager, "report", "read", true},
		{"manager cannot update settings", directory.RoleManager, "settings", "update", false},
		{"admin can update settings", directory.RoleAdmin, "settings", "update", true},
		{"admin inherits approve", directory.RoleAdmin, "request", "approve", true},
		{"admin inherits request read", directory.RoleAdmin, "request", "read", true},
		{"unknown role gets nothing", "guest", "request", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				Role:     tc.role,
				Resource: tc.resource,
				Action:   tc.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestRBACService_LoadPolicyIdempotent(t *testing.T) {
	svc := newService(t)
	assert.NoError(t, svc.LoadPolicy())

	allowed, err := svc.Enforce(domain.EnforceRequest{
		Role:     directory.RoleAdmin,
		Resource: "settings",
		Action:   "update",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)
}
