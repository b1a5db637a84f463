package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/CategoryLeaders/productlobby-sub003/internal/models"
	"github.com/CategoryLeaders/productlobby-sub003/internal/repository"
	"github.com/gorilla/mux"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondData wraps analytics payloads in the dashboard envelope.
func respondData(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// respondFailure is the envelope counterpart for error paths. Internal
// detail stays in the logs, never in the body.
func respondFailure(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// resolveCampaign fetches the campaign identified (by UUID or slug) in the
// {id} path variable, writing the 404/500 response itself on failure.
func resolveCampaign(repo repository.CampaignRepository, w http.ResponseWriter, r *http.Request) (*models.Campaign, bool) {
	identifier := mux.Vars(r)["id"]

	campaign, err := repo.GetByIdentifier(identifier)
	if err != nil {
		log.Printf("❌ Campaign lookup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch campaign")
		return nil, false
	}

	if campaign == nil {
		respondError(w, http.StatusNotFound, "Campaign not found")
		return nil, false
	}

	return campaign, true
}

// resolveCampaignEnvelope is resolveCampaign for the analytics endpoints,
// which report failures in the success/error envelope.
func resolveCampaignEnvelope(repo repository.CampaignRepository, w http.ResponseWriter, r *http.Request) (*models.Campaign, bool) {
	identifier := mux.Vars(r)["id"]

	campaign, err := repo.GetByIdentifier(identifier)
	if err != nil {
		log.Printf("❌ Campaign lookup failed: %v", err)
		respondFailure(w, http.StatusInternalServerError, "Failed to fetch campaign")
		return nil, false
	}

	if campaign == nil {
		respondFailure(w, http.StatusNotFound, "Campaign not found")
		return nil, false
	}

	return campaign, true
}
