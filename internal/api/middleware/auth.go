package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"

	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
	msgForbidden     = "недостаточно прав"
)

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	userRoleKey contextKey = "user_role"
)

// Auth читает X-User-ID (и X-User-Role, если есть) и кладёт их в контекст
// Аутентификация выполняется шлюзом, сервис доверяет заголовкам
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		if role := r.Header.Get(HeaderUserRole); role != "" {
			ctx = context.WithValue(ctx, userRoleKey, role)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole пропускает только пользователей с одной из ролей; применяется после Auth
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := GetUserRole(r.Context())
			if _, ok := allowed[role]; !ok {
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID достаёт ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetUserRole достаёт роль пользователя из контекста
func GetUserRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(userRoleKey).(string)
	return role, ok
}

// IsAdmin true для администратора площадки и суперадминистратора
func IsAdmin(ctx context.Context) bool {
	role, _ := GetUserRole(ctx)
	return role == RoleAdmin || role == RoleSuperAdmin
}

// WithUser кладёт пользователя в контекст (для тестов обработчиков)
func WithUser(ctx context.Context, userID int64, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	if role != "" {
		ctx = context.WithValue(ctx, userRoleKey, role)
	}
	return ctx
}

// CanActFor true, если пользователь действует от своего имени или является суперадминистратором
func CanActFor(ctx context.Context, adminID int64) bool {
	userID, ok := GetUserID(ctx)
	if !ok {
		return false
	}
	role, _ := GetUserRole(ctx)
	return userID == adminID || role == RoleSuperAdmin
}
