package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/CategoryLeaders/productlobby-sub003/internal/api/auth"
	"github.com/CategoryLeaders/productlobby-sub003/internal/api/middleware"
	"github.com/CategoryLeaders/productlobby-sub003/internal/api/websocket"
	"github.com/CategoryLeaders/productlobby-sub003/internal/models"
	"github.com/CategoryLeaders/productlobby-sub003/internal/repository"
)

// ActivityHandler records supporter interactions against campaigns and feeds
// them to the live dashboard hub.
type ActivityHandler struct {
	activityRepo repository.ActivityRepository
	campaignRepo repository.CampaignRepository
	hub          *websocket.Hub
}

func NewActivityHandler(activityRepo repository.ActivityRepository, campaignRepo repository.CampaignRepository, hub *websocket.Hub) *ActivityHandler {
	return &ActivityHandler{
		activityRepo: activityRepo,
		campaignRepo: campaignRepo,
		hub:          hub,
	}
}

type pledgeRequest struct {
	AmountPence int `json:"amount_pence"`
}

type pollVoteRequest struct {
	PollID uint   `json:"poll_id"`
	Option string `json:"option"`
}

type commentRequest struct {
	Body string `json:"body"`
}

type shareRequest struct {
	Channel string `json:"channel"`
}

type reactionRequest struct {
	Emoji string `json:"emoji"`
}

// Lobby handles POST /api/v1/campaigns/{id}/lobby
func (h *ActivityHandler) Lobby(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	campaign, ok := resolveCampaign(h.campaignRepo, w, r)
	if !ok {
		return
	}

	lobby := &models.Lobby{UserID: claims.UserID, CampaignID: campaign.ID}
	if err := h.activityRepo.CreateLobby(lobby); err != nil {
		h.respondCreateError(w, "lobby", err)
		return
	}

	h.publish(campaign.ID, "lobby", claims)
	respondJSON(w, http.StatusCreated, lobby)
}

// Pledge handles POST /api/v1/campaigns/{id}/pledge
func (h *ActivityHandler) Pledge(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req pledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.AmountPence <= 0 {
		respondError(w, http.StatusBadRequest, "amount_pence must be positive")
		return
	}

	campaign, ok := resolveCampaign(h.campaignRepo, w, r)
	if !ok {
		return
	}

	pledge := &models.Pledge{UserID: claims.UserID, CampaignID: campaign.ID, AmountPence: req.AmountPence}
	if err := h.activityRepo.CreatePledge(pledge); err != nil {
		h.respondCreateError(w, "pledge", err)
		return
	}

	h.publish(campaign.ID, "pledge", claims)
	respondJSON(w, http.StatusCreated, pledge)
}

// PollVote handles POST /api/v1/campaigns/{id}/poll-vote
func (h *ActivityHandler) PollVote(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req pollVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Option == "" {
		respondError(w, http.StatusBadRequest, "option is required")
		return
	}

	campaign, ok := resolveCampaign(h.campaignRepo, w, r)
	if !ok {
		return
	}

	vote := &models.PollVote{UserID: claims.UserID, CampaignID: campaign.ID, PollID: req.PollID, Option: req.Option}
	if err := h.activityRepo.CreatePollVote(vote); err != nil {
		h.respondCreateError(w, "poll vote", err)
		return
	}

	h.publish(campaign.ID, "poll_vote", claims)
	respondJSON(w, http.StatusCreated, vote)
}

// Comment handles POST /api/v1/campaigns/{id}/comment
func (h *ActivityHandler) Comment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Body == "" {
		respondError(w, http.StatusBadRequest, "body is required")
		return
	}

	campaign, ok := resolveCampaign(h.campaignRepo, w, r)
	if !ok {
		return
	}

	comment := &models.Comment{UserID: claims.UserID, CampaignID: campaign.ID, Body: req.Body}
	if err := h.activityRepo.CreateComment(comment); err != nil {
		h.respondCreateError(w, "comment", err)
		return
	}

	h.publish(campaign.ID, "comment", claims)
	respondJSON(w, http.StatusCreated, comment)
}

// Share handles POST /api/v1/campaigns/{id}/share
func (h *ActivityHandler) Share(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	campaign, ok := resolveCampaign(h.campaignRepo, w, r)
	if !ok {
		return
	}

	share := &models.Share{UserID: claims.UserID, CampaignID: campaign.ID, Channel: req.Channel}
	if err := h.activityRepo.CreateShare(share); err != nil {
		h.respondCreateError(w, "share", err)
		return
	}

	h.publish(campaign.ID, "share", claims)
	respondJSON(w, http.StatusCreated, share)
}

// Bookmark handles POST /api/v1/campaigns/{id}/bookmark
func (h *ActivityHandler) Bookmark(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	campaign, ok := resolveCampaign(h.campaignRepo, w, r)
	if !ok {
		return
	}

	bookmark := &models.Bookmark{UserID: claims.UserID, CampaignID: campaign.ID}
	if err := h.activityRepo.CreateBookmark(bookmark); err != nil {
		h.respondCreateError(w, "bookmark", err)
		return
	}

	h.publish(campaign.ID, "bookmark", claims)
	respondJSON(w, http.StatusCreated, bookmark)
}

// Reaction handles POST /api/v1/campaigns/{id}/reaction
func (h *ActivityHandler) Reaction(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req reactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Emoji == "" {
		respondError(w, http.StatusBadRequest, "emoji is required")
		return
	}

	campaign, ok := resolveCampaign(h.campaignRepo, w, r)
	if !ok {
		return
	}

	reaction := &models.Reaction{UserID: claims.UserID, CampaignID: campaign.ID, Emoji: req.Emoji}
	if err := h.activityRepo.CreateReaction(reaction); err != nil {
		h.respondCreateError(w, "reaction", err)
		return
	}

	h.publish(campaign.ID, "reaction", claims)
	respondJSON(w, http.StatusCreated, reaction)
}

// Follow handles POST /api/v1/campaigns/{id}/follow
func (h *ActivityHandler) Follow(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	campaign, ok := resolveCampaign(h.campaignRepo, w, r)
	if !ok {
		return
	}

	follow := &models.Follow{UserID: claims.UserID, CampaignID: campaign.ID}
	if err := h.activityRepo.CreateFollow(follow); err != nil {
		h.respondCreateError(w, "follow", err)
		return
	}

	h.publish(campaign.ID, "follow", claims)
	respondJSON(w, http.StatusCreated, follow)
}

// Live handles GET /api/v1/campaigns/{id}/live and upgrades the connection
// to a websocket subscribed to that campaign's activity stream.
func (h *ActivityHandler) Live(w http.ResponseWriter, r *http.Request) {
	campaign, ok := resolveCampaign(h.campaignRepo, w, r)
	if !ok {
		return
	}

	if err := websocket.ServeFeed(h.hub, campaign.ID, w, r); err != nil {
		log.Printf("⚠️ Websocket upgrade failed for campaign %d: %v", campaign.ID, err)
	}
}

func (h *ActivityHandler) respondCreateError(w http.ResponseWriter, kind string, err error) {
	if errors.Is(err, repository.ErrDuplicateActivity) {
		respondError(w, http.StatusConflict, "Activity already recorded")
		return
	}
	log.Printf("❌ Failed to record %s: %v", kind, err)
	respondError(w, http.StatusInternalServerError, "Failed to record activity")
}

func (h *ActivityHandler) publish(campaignID uint, activityType string, claims *auth.Claims) {
	if h.hub == nil {
		return
	}

	handle := claims.Handle
	if handle == "" {
		handle = "anonymous"
	}

	h.hub.Publish(&websocket.ActivityEvent{
		CampaignID:   campaignID,
		ActivityType: activityType,
		UserHandle:   handle,
		OccurredAt:   time.Now().UTC(),
	})
}
