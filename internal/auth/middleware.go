package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/emberfall-games/guildhall/internal/domain"
	"github.com/emberfall-games/guildhall/internal/logger"
	"github.com/emberfall-games/guildhall/internal/player"
)

type contextKey string

const playerContextKey contextKey = "player"

// PlayerFromContext returns the authenticated player set by Middleware.
func PlayerFromContext(ctx context.Context) (*domain.Player, bool) {
	p, ok := ctx.Value(playerContextKey).(*domain.Player)
	return p, ok
}

// WithPlayer returns a context carrying the player, for tests that bypass
// the middleware.
func WithPlayer(ctx context.Context, p *domain.Player) context.Context {
	return context.WithValue(ctx, playerContextKey, p)
}

// Middleware authenticates the bearer token and resolves the account's
// player row into the request context. The player row is created on first
// authenticated request.
func Middleware(svc Service, players player.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeUnauthorized(w, "missing bearer token")
				return
			}

			userID, err := svc.VerifyToken(token)
			if err != nil {
				writeUnauthorized(w, domain.ErrMsgInvalidToken)
				return
			}

			p, err := players.Resolve(r.Context(), userID)
			if err != nil {
				logger.FromContext(r.Context()).Error("Failed to resolve player", "error", err, "userID", userID)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPlayer(r.Context(), p)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
