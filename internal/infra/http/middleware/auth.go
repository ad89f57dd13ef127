package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/auth"
)

type contextKey string

const userContextKey contextKey = "user"

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// AdminOnly admits requests carrying a valid bearer token of an existing
// admin account. The account is stored in the request context.
func AdminOnly(tokens TokenParser, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			user, err := users.FindByID(r.Context(), claims.Subject)
			if err != nil {
				if !errors.Is(err, entity.ErrUserNotFound) {
					zap.L().Error("auth: user lookup failed", zap.String("user_id", claims.Subject), zap.Error(err))
				}
				writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			if !user.IsAdmin() {
				writeMessage(w, http.StatusForbidden, "Not authorized as admin")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func WithUser(ctx context.Context, u *entity.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

func UserFromContext(ctx context.Context) (*entity.User, bool) {
	u, ok := ctx.Value(userContextKey).(*entity.User)
	return u, ok && u != nil
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
