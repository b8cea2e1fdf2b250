package app

import (
	"context"
	"os"

	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/auth/oidc"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	verifier, err := buildFederationVerifier(context.Background())
	if err != nil {
		return err
	}

	// Register Modules & Routes
	return registerModules(router, sqlDB, gormDB, redisClient, verifier)
}

// buildFederationVerifier wires the OIDC provider when configured.
// Without OIDC_ISSUER the federated login endpoint stays up but
// rejects every token.
func buildFederationVerifier(ctx context.Context) (federationVerifier, error) {
	issuer := os.Getenv("OIDC_ISSUER")
	if issuer == "" {
		zap.L().Warn("OIDC_ISSUER not set, federated login disabled")
		return noFederation{}, nil
	}

	provider, err := oidc.NewProvider(ctx, oidc.ProviderConfig{
		IssuerURL: issuer,
		ClientID:  os.Getenv("OIDC_CLIENT_ID"),
	})
	if err != nil {
		return nil, err
	}
	return provider, nil
}
