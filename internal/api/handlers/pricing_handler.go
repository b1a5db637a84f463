package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/CategoryLeaders/productlobby-sub003/internal/api/middleware"
	"github.com/CategoryLeaders/productlobby-sub003/internal/models"
	"github.com/CategoryLeaders/productlobby-sub003/internal/pricing"
	"github.com/CategoryLeaders/productlobby-sub003/internal/repository"
)

// PricingHandler collects willingness-to-pay submissions and serves the
// aggregated price analysis to the campaign's creator.
type PricingHandler struct {
	pricingRepo  repository.PricingRepository
	campaignRepo repository.CampaignRepository
}

func NewPricingHandler(pricingRepo repository.PricingRepository, campaignRepo repository.CampaignRepository) *PricingHandler {
	return &PricingHandler{
		pricingRepo:  pricingRepo,
		campaignRepo: campaignRepo,
	}
}

type pricingRequest struct {
	PricePence int    `json:"price_pence"`
	Intensity  string `json:"intensity"`
}

// Submit handles POST /api/v1/campaigns/{id}/pricing
//
// One submission per supporter per campaign. A second attempt is a 409.
func (h *PricingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req pricingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.PricePence <= 0 {
		respondError(w, http.StatusBadRequest, "price_pence must be positive")
		return
	}

	if !models.ValidIntensity(req.Intensity) {
		respondError(w, http.StatusBadRequest, "intensity must be one of: neat_idea, probably_buy, take_my_money")
		return
	}

	campaign, ok := resolveCampaign(h.campaignRepo, w, r)
	if !ok {
		return
	}

	response := &models.PricingResponse{
		UserID:     claims.UserID,
		CampaignID: campaign.ID,
		PricePence: req.PricePence,
		Intensity:  req.Intensity,
	}

	if err := h.pricingRepo.Create(response); err != nil {
		if errors.Is(err, repository.ErrDuplicateResponse) {
			respondError(w, http.StatusConflict, "Pricing response already submitted")
			return
		}
		log.Printf("❌ Failed to save pricing response: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save pricing response")
		return
	}

	respondJSON(w, http.StatusCreated, response)
}

// Analysis handles GET /api/v1/campaigns/{id}/pricing/analysis
//
// Creator-only. A campaign with no responses yet gets a well-formed report
// with totalResponses zero.
func (h *PricingHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondFailure(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	campaign, ok := resolveCampaignEnvelope(h.campaignRepo, w, r)
	if !ok {
		return
	}

	if campaign.CreatorID != claims.UserID {
		respondFailure(w, http.StatusForbidden, "Only the campaign creator can view pricing analysis")
		return
	}

	responses, err := h.pricingRepo.ListByCampaign(campaign.ID)
	if err != nil {
		log.Printf("❌ Failed to load pricing responses for campaign %d: %v", campaign.ID, err)
		respondFailure(w, http.StatusInternalServerError, "Failed to build pricing analysis")
		return
	}

	respondData(w, pricing.Analyze(responses))
}
