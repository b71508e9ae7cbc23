package settings

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
	meta := r.Group("/meta")
	meta.Use(middleware.AuthMiddleware())
	{
		meta.GET("", handler.Meta)
	}

	settings := r.Group("/settings")
	settings.Use(middleware.AuthMiddleware())
	{
		settings.GET("", middleware.RBACAuthorize(rbacService, "settings", "read"), handler.Get)
		settings.PUT("", middleware.RBACAuthorize(rbacService, "settings", "update"), handler.Update)
	}
}
