package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/CategoryLeaders/productlobby-sub003/internal/api/auth"
	"github.com/redis/go-redis/v9"
)

type ContextKey string

const (
	// UserContextKey is where validated claims live on the request context.
	UserContextKey ContextKey = "session_user"

	denylistPrefix = "auth:denylist:"
)

// JWTAuthMiddleware validates the Bearer token and, when Redis is available,
// rejects tokens revoked by logout.
func JWTAuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondUnauthorized(w, "Missing authorization header")
				return
			}

			tokenString, err := auth.ExtractTokenFromBearer(authHeader)
			if err != nil {
				respondUnauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtManager.ValidateToken(tokenString)
			if err != nil {
				respondUnauthorized(w, "Invalid or expired token")
				return
			}

			if isRevoked(r.Context(), redisClient, claims.ID) {
				respondUnauthorized(w, "Token has been revoked")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RevokeToken puts a token ID on the denylist until the token would have
// expired anyway. A nil Redis client makes logout best-effort only.
func RevokeToken(ctx context.Context, redisClient *redis.Client, claims *auth.Claims) error {
	if redisClient == nil || claims.ID == "" {
		return nil
	}

	ttl := time.Hour
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
		if ttl <= 0 {
			return nil
		}
	}

	return redisClient.Set(ctx, denylistPrefix+claims.ID, 1, ttl).Err()
}

func isRevoked(ctx context.Context, redisClient *redis.Client, tokenID string) bool {
	if redisClient == nil || tokenID == "" {
		return false
	}

	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	n, err := redisClient.Exists(checkCtx, denylistPrefix+tokenID).Result()
	if err != nil {
		// Fail open: a Redis outage should not lock every user out.
		return false
	}

	return n > 0
}

// GetUserFromContext returns the validated claims, or nil outside the
// protected routes.
func GetUserFromContext(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(UserContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
