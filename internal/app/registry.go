package app

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/attachment"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/attendance"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/auth"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/employee"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/leave"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/messaging/kafka"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/middleware"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/shared/timeutil"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

type federationVerifier interface {
	VerifyEmail(ctx context.Context, rawToken string) (string, error)
}

// noFederation stands in when no OIDC provider is configured.
type noFederation struct{}

func (noFederation) VerifyEmail(context.Context, string) (string, error) {
	return "", errors.New("federated login is not configured")
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	verifier federationVerifier,
) error {
	logger := zap.L()

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: false,
	}))

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Supporting infra ---
	attachments := attachment.NewDiskStore(os.Getenv("UPLOAD_DIR"))
	loc := timeutil.ReportingZone()

	// --- Services ---
	authService := auth.NewService(authRepo, employeeRepo, verifier)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo, attachments, rdb, loc)
	leaveService := leave.NewService(db, leaveRepo, employeeRepo, attachments, outboxRepo, loc)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	leaveHandler := leave.NewHandler(leaveService)

	// --- Routes Registration ---
	loginLimiter := middleware.RateLimitByIP(rate.Limit(5), 10)
	auth.RegisterRoutes(router, authHandler, loginLimiter)

	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler)
		leave.RegisterRoutes(api, leaveHandler)
	}

	return nil
}
