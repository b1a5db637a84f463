package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/CategoryLeaders/productlobby-sub003/internal/api/auth"
	"github.com/CategoryLeaders/productlobby-sub003/internal/api/middleware"
	"github.com/CategoryLeaders/productlobby-sub003/internal/models"
	"github.com/CategoryLeaders/productlobby-sub003/internal/repository"
	"github.com/redis/go-redis/v9"
)

type AuthHandler struct {
	userRepo   repository.UserRepository
	jwtManager *auth.JWTManager
	redis      *redis.Client
	tokenTTL   time.Duration
}

func NewAuthHandler(userRepo repository.UserRepository, jwtManager *auth.JWTManager, redisClient *redis.Client, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		redis:      redisClient,
		tokenTTL:   tokenTTL,
	}
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Handle      string `json:"handle"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"` // seconds
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Handle      string `json:"handle,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

func userResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Handle:      u.Handle,
		AvatarURL:   u.AvatarURL,
	}
}

// Register creates a new account and returns a session token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		respondError(w, http.StatusBadRequest, "A valid email is required")
		return
	}

	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	existing, err := h.userRepo.GetByEmail(req.Email)
	if err != nil {
		log.Printf("❌ Register lookup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "An account with this email already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("❌ Password hash failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Handle:       strings.TrimSpace(req.Handle),
		IsActive:     true,
	}

	if err := h.userRepo.Create(user); err != nil {
		log.Printf("❌ Failed to create user: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	h.respondWithToken(w, user)
}

// Login authenticates a user against their stored password hash.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || user == nil {
		log.Printf("⚠️ Login attempt for unknown email")
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.IsActive {
		log.Printf("⚠️ Login attempt for inactive user %d", user.ID)
		respondError(w, http.StatusUnauthorized, "Account is disabled")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		log.Printf("⚠️ Failed login attempt for user %d", user.ID)
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	user.LastActiveAt = &now
	if err := h.userRepo.Update(user); err != nil {
		log.Printf("⚠️ Failed to update last active: %v", err)
	}

	h.respondWithToken(w, user)
}

// RefreshToken exchanges a valid token for a fresh one.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		respondError(w, http.StatusBadRequest, "Token is required")
		return
	}

	token, err := h.jwtManager.RefreshToken(req.Token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":      token,
		"expires_in": int64(h.tokenTTL.Seconds()),
	})
}

// Logout revokes the current token via the Redis denylist.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if err := middleware.RevokeToken(r.Context(), h.redis, claims); err != nil {
		log.Printf("⚠️ Failed to revoke token: %v", err)
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.userRepo.GetByID(claims.UserID)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, userResponse(user))
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, user *models.User) {
	token, err := h.jwtManager.GenerateToken(user)
	if err != nil {
		log.Printf("❌ Failed to generate token: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresIn: int64(h.tokenTTL.Seconds()),
		User:      userResponse(user),
	})
}
