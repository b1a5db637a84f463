package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/CategoryLeaders/productlobby-sub003/internal/api/middleware"
	"github.com/CategoryLeaders/productlobby-sub003/internal/models"
	"github.com/CategoryLeaders/productlobby-sub003/internal/repository"
)

type CampaignHandler struct {
	campaignRepo repository.CampaignRepository
}

func NewCampaignHandler(campaignRepo repository.CampaignRepository) *CampaignHandler {
	return &CampaignHandler{campaignRepo: campaignRepo}
}

type CreateCampaignRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"image_url"`
	Tags        []string `json:"tags"`
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugCleaner.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Create opens a new campaign owned by the caller, in draft status.
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Title is required")
		return
	}

	campaign := &models.Campaign{
		Title:       strings.TrimSpace(req.Title),
		Slug:        slugify(req.Title),
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
		Status:      models.CampaignStatusDraft,
		CreatorID:   claims.UserID,
	}

	if err := h.campaignRepo.Create(campaign); err != nil {
		log.Printf("❌ Failed to create campaign: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create campaign")
		return
	}

	respondJSON(w, http.StatusCreated, campaign)
}

// Get returns one campaign by UUID or slug.
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.resolve(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, campaign)
}

// List returns active campaigns with pagination.
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	offset := 0
	if offsetParam := r.URL.Query().Get("offset"); offsetParam != "" {
		if o, err := strconv.Atoi(offsetParam); err == nil && o >= 0 {
			offset = o
		}
	}

	campaigns, err := h.campaignRepo.List(offset, limit)
	if err != nil {
		log.Printf("❌ Failed to list campaigns: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch campaigns")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"campaigns": campaigns,
		"total":     len(campaigns),
	})
}

// ListMine returns the caller's campaigns in every status.
func (h *CampaignHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	campaigns, err := h.campaignRepo.ListByCreator(claims.UserID)
	if err != nil {
		log.Printf("❌ Failed to list creator campaigns: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch campaigns")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"campaigns": campaigns,
		"total":     len(campaigns),
	})
}

// UpdateStatus moves a campaign through its lifecycle. Owner only.
func (h *CampaignHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	campaign, ok := h.resolve(w, r)
	if !ok {
		return
	}

	if campaign.CreatorID != claims.UserID {
		respondError(w, http.StatusForbidden, "Only the campaign creator can change its status")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch req.Status {
	case models.CampaignStatusDraft, models.CampaignStatusActive,
		models.CampaignStatusFunded, models.CampaignStatusArchived:
	default:
		respondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	campaign.Status = req.Status
	if err := h.campaignRepo.Update(campaign); err != nil {
		log.Printf("❌ Failed to update campaign %d: %v", campaign.ID, err)
		respondError(w, http.StatusInternalServerError, "Failed to update campaign")
		return
	}

	respondJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) resolve(w http.ResponseWriter, r *http.Request) (*models.Campaign, bool) {
	return resolveCampaign(h.campaignRepo, w, r)
}
