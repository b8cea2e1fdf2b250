package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the three credential paths. They keep their
// legacy top-level shapes for client compatibility; the registry
// passes a per-IP rate limiter to slow credential stuffing.
func RegisterRoutes(r *gin.Engine, h *Handler, rateLimit gin.HandlerFunc) {
	r.POST("/login", rateLimit, h.Login)
	r.POST("/adminlogin", rateLimit, h.AdminLogin)
	r.POST("/auth/federated-login", rateLimit, h.FederatedLogin)
}
