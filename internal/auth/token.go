package auth

import (
	"fmt"
	"os"
	"time"

	autherrors "github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL bounds every issued token. There is no revocation;
// expiry is the only limit on a stolen token.
const SessionTTL = time.Hour

// SessionClaims is everything a session token carries. Identity, role
// and status are snapshotted at issuance and are the sole source of
// truth for subsequent attendance/leave calls.
type SessionClaims struct {
	Role    string `json:"role"`
	Status  string `json:"status"`
	EmpCode string `json:"emp_code,omitempty"`
	Name    string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func signingSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// IssueSessionToken mints a signed HS256 token for a verified identity.
func IssueSessionToken(id, role, status, empCode, name string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Role:    role,
		Status:  status,
		EmpCode: empCode,
		Name:    name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingSecret())
}

// ParseSessionToken verifies signature and expiry and returns the
// embedded claims. The token is stateless: no server-side lookup.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return signingSecret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	if !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}
