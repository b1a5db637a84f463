package handlers

import (
	"log"
	"net/http"

	"github.com/CategoryLeaders/productlobby-sub003/internal/api/middleware"
	"github.com/CategoryLeaders/productlobby-sub003/internal/engagement"
	"github.com/CategoryLeaders/productlobby-sub003/internal/repository"
)

// EngagementHandler serves the campaign engagement report to its creator.
type EngagementHandler struct {
	service      *engagement.Service
	campaignRepo repository.CampaignRepository
}

func NewEngagementHandler(service *engagement.Service, campaignRepo repository.CampaignRepository) *EngagementHandler {
	return &EngagementHandler{
		service:      service,
		campaignRepo: campaignRepo,
	}
}

// Report handles GET /api/v1/campaigns/{id}/engagement
//
// Only the campaign's creator may see the breakdown. The payload carries the
// score distribution, the top five supporters, campaign and platform average
// scores, and the supporter count.
func (h *EngagementHandler) Report(w http.ResponseWriter, r *http.Request) {
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
		respondFailure(w, http.StatusForbidden, "Only the campaign creator can view engagement")
		return
	}

	report, err := h.service.BuildReport(campaign.ID)
	if err != nil {
		log.Printf("❌ Engagement report failed for campaign %d: %v", campaign.ID, err)
		respondFailure(w, http.StatusInternalServerError, "Failed to build engagement report")
		return
	}

	respondData(w, report)
}
