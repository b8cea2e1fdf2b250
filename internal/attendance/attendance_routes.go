package attendance

import (
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/employee"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	attendances := r.Group("/attendance")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("", h.CheckIn)
		attendances.PUT("/logout/:id", h.CheckOut)
		attendances.GET("", h.GetAll)

		admin := middleware.RoleMiddleware(employee.RoleSuperadmin)
		attendances.GET("/total", admin, h.CountAll)
		attendances.GET("/present-today", admin, h.CountToday)
		attendances.GET("/employee/monthly/:code", h.MonthlyCount)
	}
}
