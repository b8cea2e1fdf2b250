package leave

import (
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/employee"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", h.Create)
		leaves.GET("", h.GetAll)
		leaves.GET("/today", h.Today)
		leaves.GET("/:id", h.GetByID)
		leaves.PUT("/:id", h.Update)
		leaves.GET("/employee/:code", h.ByEmployee)
		leaves.GET("/employee/current-month/:code", h.CurrentMonth)

		admin := middleware.RoleMiddleware(employee.RoleSuperadmin)
		leaves.GET("/total", admin, h.CountAll)
		leaves.PATCH("/:id/status", admin, h.UpdateStatus)
		leaves.DELETE("/:id", admin, h.Delete)
	}
}
