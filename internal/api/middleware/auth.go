package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// UserIDHeader заголовок с ID аутентифицированного пользователя
// Заполняется API-шлюзом после проверки токена
const UserIDHeader = "X-User-ID"

type contextKey string

const userIDKey contextKey = "userID"

// Auth извлекает ID пользователя из заголовка и кладет его в контекст запроса
// Запросы без корректного заголовка проходят дальше без ID: обязательность
// авторизации решает каждый handler сам
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(UserIDHeader)
		if header != "" {
			if userID, err := strconv.ParseInt(header, 10, 64); err == nil && userID > 0 {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
			}
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
