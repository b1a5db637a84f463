package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/CategoryLeaders/productlobby-sub003/internal/api/auth"
	"github.com/CategoryLeaders/productlobby-sub003/internal/api/handlers"
	"github.com/CategoryLeaders/productlobby-sub003/internal/api/middleware"
	"github.com/CategoryLeaders/productlobby-sub003/internal/api/websocket"
	"github.com/CategoryLeaders/productlobby-sub003/internal/config"
	"github.com/CategoryLeaders/productlobby-sub003/internal/digest"
	"github.com/CategoryLeaders/productlobby-sub003/internal/engagement"
	"github.com/CategoryLeaders/productlobby-sub003/internal/repository"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

// Server is the ProductLobby HTTP API server
type Server struct {
	config     *config.Config
	httpServer *http.Server
	router     *mux.Router

	// Repositories
	userRepo     repository.UserRepository
	campaignRepo repository.CampaignRepository
	activityRepo repository.ActivityRepository
	pricingRepo  repository.PricingRepository

	// Auth & Middleware
	jwtManager  *auth.JWTManager
	rateLimiter *middleware.RateLimiter
	redisClient *redis.Client

	// Live feed
	hub *websocket.Hub

	// Handlers
	healthHandler     *handlers.HealthHandler
	authHandler       *handlers.AuthHandler
	campaignHandler   *handlers.CampaignHandler
	activityHandler   *handlers.ActivityHandler
	engagementHandler *handlers.EngagementHandler
	pricingHandler    *handlers.PricingHandler
	digestHandler     *handlers.DigestHandler
}

// NewServer wires repositories, services and handlers into a ready router.
// redisClient may be nil; token revocation then degrades to TTL-only expiry.
func NewServer(
	cfg *config.Config,
	userRepo repository.UserRepository,
	campaignRepo repository.CampaignRepository,
	activityRepo repository.ActivityRepository,
	pricingRepo repository.PricingRepository,
	digestService *digest.Service,
	hub *websocket.Hub,
	redisClient *redis.Client,
) *Server {
	s := &Server{
		config:       cfg,
		userRepo:     userRepo,
		campaignRepo: campaignRepo,
		activityRepo: activityRepo,
		pricingRepo:  pricingRepo,
		redisClient:  redisClient,
		hub:          hub,
	}

	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour

	// Initialize JWT Manager
	s.jwtManager = auth.NewJWTManager(cfg.Auth.JWTSecret, tokenTTL)

	// Initialize Rate Limiter
	s.rateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit)

	// Initialize handlers
	engagementService := engagement.NewService(activityRepo)

	s.healthHandler = handlers.NewHealthHandler()
	s.authHandler = handlers.NewAuthHandler(userRepo, s.jwtManager, redisClient, tokenTTL)
	s.campaignHandler = handlers.NewCampaignHandler(campaignRepo)
	s.activityHandler = handlers.NewActivityHandler(activityRepo, campaignRepo, hub)
	s.engagementHandler = handlers.NewEngagementHandler(engagementService, campaignRepo)
	s.pricingHandler = handlers.NewPricingHandler(pricingRepo, campaignRepo)
	s.digestHandler = handlers.NewDigestHandler(digestService)

	// Setup router
	s.setupRouter()

	return s
}

func (s *Server) setupRouter() {
	r := mux.NewRouter()

	// Global middleware
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.CORSMiddleware(s.config.Server.AllowedOrigins))
	r.Use(s.rateLimiter.RateLimitMiddleware)

	// API v1 routes
	api := r.PathPrefix("/api/v1").Subrouter()

	// ========== Public routes (no auth required) ==========

	// Health check
	api.HandleFunc("/health", s.healthHandler.Health).Methods("GET")
	api.HandleFunc("/ping", s.healthHandler.Ping).Methods("GET")

	// Authentication
	api.HandleFunc("/auth/register", s.authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", s.authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/refresh", s.authHandler.RefreshToken).Methods("POST")

	// Campaign discovery
	api.HandleFunc("/campaigns", s.campaignHandler.List).Methods("GET")
	api.HandleFunc("/campaigns/{id}", s.campaignHandler.Get).Methods("GET")

	// ========== Protected routes (require JWT) ==========

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuthMiddleware(s.jwtManager, s.redisClient))

	// Auth endpoints (require auth)
	protected.HandleFunc("/auth/logout", s.authHandler.Logout).Methods("POST")
	protected.HandleFunc("/auth/me", s.authHandler.Me).Methods("GET")

	// Campaign management
	protected.HandleFunc("/campaigns", s.campaignHandler.Create).Methods("POST")
	protected.HandleFunc("/users/me/campaigns", s.campaignHandler.ListMine).Methods("GET")
	protected.HandleFunc("/campaigns/{id}/status", s.campaignHandler.UpdateStatus).Methods("PATCH")

	// Supporter activity
	protected.HandleFunc("/campaigns/{id}/lobby", s.activityHandler.Lobby).Methods("POST")
	protected.HandleFunc("/campaigns/{id}/pledge", s.activityHandler.Pledge).Methods("POST")
	protected.HandleFunc("/campaigns/{id}/poll-vote", s.activityHandler.PollVote).Methods("POST")
	protected.HandleFunc("/campaigns/{id}/comment", s.activityHandler.Comment).Methods("POST")
	protected.HandleFunc("/campaigns/{id}/share", s.activityHandler.Share).Methods("POST")
	protected.HandleFunc("/campaigns/{id}/bookmark", s.activityHandler.Bookmark).Methods("POST")
	protected.HandleFunc("/campaigns/{id}/reaction", s.activityHandler.Reaction).Methods("POST")
	protected.HandleFunc("/campaigns/{id}/follow", s.activityHandler.Follow).Methods("POST")
	protected.HandleFunc("/campaigns/{id}/live", s.activityHandler.Live).Methods("GET")

	// Creator analytics
	protected.HandleFunc("/campaigns/{id}/engagement", s.engagementHandler.Report).Methods("GET")
	protected.HandleFunc("/campaigns/{id}/pricing", s.pricingHandler.Submit).Methods("POST")
	protected.HandleFunc("/campaigns/{id}/pricing/analysis", s.pricingHandler.Analysis).Methods("GET")

	// Digest
	protected.HandleFunc("/digest/preview", s.digestHandler.Preview).Methods("GET")
	protected.HandleFunc("/digest/run", s.digestHandler.RunNow).Methods("POST")

	s.router = r
}

// Start runs the HTTP server until Stop is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("🚀 API server starting on %s", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop shuts the HTTP server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	log.Println("🛑 Shutting down API server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("✅ API server stopped")
	return nil
}

// Router exposes the router for tests.
func (s *Server) Router() *mux.Router {
	return s.router
}
