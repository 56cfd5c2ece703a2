package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const (
	StaffIDKey   contextKey = "staff_id"
	StaffRoleKey contextKey = "user_role"
)

// AuthMiddleware validates JWT tokens and extracts user claims
func AuthMiddleware(jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				respondWithError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			// Check for Bearer token format
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Invalid authorization header format")
				respondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			tokenString := parts[1]

			// Parse and validate token
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				// Validate signing method
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})

			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				if err == jwt.ErrTokenExpired {
					respondWithError(w, http.StatusUnauthorized, "token expired")
				} else {
					respondWithError(w, http.StatusUnauthorized, "invalid token")
				}
				return
			}

			if !token.Valid {
				logger.Debug("Invalid token")
				respondWithError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			// Extract claims
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				logger.Error("Failed to extract claims from token")
				respondWithError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			// Extract user ID
			staffID, ok := claims["staff_id"].(string)
			if !ok {
				logger.Error("Missing staff_id in token claims")
				respondWithError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			// Extract role
			role, ok := claims["role"].(string)
			if !ok {
				logger.Error("Missing role in token claims")
				respondWithError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			// Add staff identity to context
			ctx := context.WithValue(r.Context(), StaffIDKey, staffID)
			ctx = context.WithValue(ctx, StaffRoleKey, role)

			logger.Debug("Staff authenticated",
				zap.String("staff_id", staffID),
				zap.String("role", role),
			)

			// Call next handler with updated context
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetStaffID extracts user ID from request context
func GetStaffID(ctx context.Context) (string, bool) {
	staffID, ok := ctx.Value(StaffIDKey).(string)
	return staffID, ok
}

// GetStaffRole extracts user role from request context
func GetStaffRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(StaffRoleKey).(string)
	return role, ok
}
