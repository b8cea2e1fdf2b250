package autherrors

import (
	"net/http"

	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/shared/apperror"
)

var (
	ErrAccountInactive = apperror.New(
		apperror.CodeForbidden,
		"Your account is inactive. Please contact admin.",
		http.StatusForbidden,
	)

	ErrInvalidPassword = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid password",
		http.StatusUnauthorized,
	)

	ErrInvalidAdminCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid username or password or not a superadmin",
		http.StatusUnauthorized,
	)

	ErrUpstreamVerification = apperror.New(
		apperror.CodeUpstreamFailed,
		"Federated login failed",
		http.StatusInternalServerError,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid or malformed token",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Session has expired",
		http.StatusUnauthorized,
	)

	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate session token",
		http.StatusInternalServerError,
	)
)
