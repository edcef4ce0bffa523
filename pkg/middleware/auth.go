package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"cinevers-client/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JWTAuth validates the Bearer token and puts user ID + role into the
// request context. The secret must match the one used when issuing.
func JWTAuth(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := ParseToken(secret, parts[1])
			if err != nil {
				logger.Warn("Invalid or expired token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				logger.Warn("Token subject is not a user ID", zap.String("sub", claims.Subject))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin checks the role claim set by JWTAuth. Both "gerente" and
// "admin" count as back-office roles.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if role != "gerente" && role != "admin" {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Claims carried by the stub backend's access tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken validates an HS256 token and returns its claims.
func ParseToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
