package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/el-receso/cafeteria-service/internal/models"
	"github.com/el-receso/cafeteria-service/internal/service"
)

// contextKey is a type for context keys
type contextKey string

// Context keys
const (
	UserIDKey    contextKey = "userID"
	UserRoleKey  contextKey = "userRole"
	SessionIDKey contextKey = "sessionID"
)

// Auth middleware authenticates requests via JWT bearer tokens and
// injects the caller's identity and session into the request context.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
			ctx = context.WithValue(ctx, SessionIDKey, claims.SessionID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a handler on the admin capability. Role checks go
// through models.UserRole.CanManage rather than string comparisons.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := GetUserRole(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if !role.CanManage() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Helper functions for extracting values from context
func GetUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok
}

func GetUserRole(ctx context.Context) (models.UserRole, bool) {
	role, ok := ctx.Value(UserRoleKey).(string)
	return models.UserRole(role), ok
}

func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok
}
