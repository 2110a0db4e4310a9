package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/proteuswear/storefront-api/utils"
)

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	userIDKey    contextKey = "user_id"
)

// CORSMiddleware allows the storefront frontend to call the API from any
// origin and short-circuits preflight requests.
func CORSMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "X-Session-Token")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

// SessionMiddleware resolves the shopping session for cart and try-on
// routes. A valid bearer token identifies the existing session; anything
// else mints a guest session and hands the new token back in
// X-Session-Token so the client can carry it forward.
func SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sessionID, userID string

		if token := bearerToken(r); token != "" {
			if claims, err := utils.ValidateToken(token); err == nil {
				if id, ok := claims["session_id"].(string); ok {
					sessionID = id
				}
				if id, ok := claims["user_id"].(string); ok {
					userID = id
				}
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			if token, err := utils.GenerateSessionToken(sessionID); err == nil {
				w.Header().Set("X-Session-Token", token)
			}
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		if userID != "" {
			ctx = context.WithValue(ctx, userIDKey, userID)
		}
		next(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// GetSessionIDFromContext returns the shopping session resolved by
// SessionMiddleware.
func GetSessionIDFromContext(ctx context.Context) (string, error) {
	id, ok := ctx.Value(sessionIDKey).(string)
	if !ok || id == "" {
		return "", fmt.Errorf("no session in context")
	}
	return id, nil
}

// GetUserIDFromContext returns the logged-in user, when there is one.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok || id == "" {
		return "", fmt.Errorf("no user in context")
	}
	return id, nil
}
