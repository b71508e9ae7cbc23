package request

import (
	"go-shinsei/internal/middleware"
	"go-shinsei/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	leave := r.Group("/leave_requests")
	leave.Use(middleware.AuthMiddleware())
	{
		leave.GET("", middleware.RBACAuthorize(rbacService, "request", "read"), handler.ListLeave)
		leave.POST("", middleware.RBACAuthorize(rbacService, "request", "create"), handler.SubmitLeave)
	}

	corrections := r.Group("/attendance_corrections")
	corrections.Use(middleware.AuthMiddleware())
	{
		corrections.GET("", middleware.RBACAuthorize(rbacService, "request", "read"), handler.ListCorrections)
		corrections.POST("", middleware.RBACAuthorize(rbacService, "request", "create"), handler.SubmitCorrection)
	}

	approvals := r.Group("/approvals")
	approvals.Use(middleware.AuthMiddleware())
	{
		approvals.POST("", middleware.RBACAuthorize(rbacService, "request", "approve"), handler.Decide)
	}
}
