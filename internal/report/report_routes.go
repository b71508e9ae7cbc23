package report

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
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("", middleware.RBACAuthorize(rbacService, "report", "read"), handler.Aggregate)
		reports.GET("/export", middleware.RBACAuthorize(rbacService, "report", "read"), handler.Export)
	}
}
