package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/auth"
	autherrors "github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/auth/errors"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys populated from verified session claims. Handlers read
// identity and role from these, never from request parameters.
const (
	CtxEmployeeID   = "employee_id"
	CtxRole         = "role"
	CtxStatus       = "status"
	CtxEmpCode      = "emp_code"
	CtxEmployeeName = "employee_name"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		claims, err := auth.ParseSessionToken(tokenString)
		if err != nil {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		if claims.Subject == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Subject not found in token", nil)
			c.Abort()
			return
		}

		c.Set(CtxEmployeeID, claims.Subject)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxStatus, claims.Status)
		c.Set(CtxEmpCode, claims.EmpCode)
		c.Set(CtxEmployeeName, claims.Name)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(CtxRole)
		if !exists {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to access this resource", nil)
			c.Abort()
			return
		}

		isAllowed := false
		for _, role := range allowedRoles {
			if userRole == role {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to access this resource", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
