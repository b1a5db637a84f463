package handlers

import (
	"log"
	"net/http"

	"github.com/CategoryLeaders/productlobby-sub003/internal/api/middleware"
	"github.com/CategoryLeaders/productlobby-sub003/internal/digest"
)

// DigestHandler lets a creator trigger their own digest outside the weekly
// schedule.
type DigestHandler struct {
	service *digest.Service
}

func NewDigestHandler(service *digest.Service) *DigestHandler {
	return &DigestHandler{service: service}
}

// Preview handles GET /api/v1/digest/preview and returns the email body the
// caller would receive, without sending it.
func (h *DigestHandler) Preview(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	body, err := h.service.Preview(claims.UserID)
	if err != nil {
		log.Printf("❌ Digest preview failed for creator %d: %v", claims.UserID, err)
		respondError(w, http.StatusInternalServerError, "Failed to build digest preview")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"body": body})
}

// RunNow handles POST /api/v1/digest/run
func (h *DigestHandler) RunNow(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	result, err := h.service.RunForCreator(claims.UserID)
	if err != nil {
		log.Printf("❌ On-demand digest failed for creator %d: %v", claims.UserID, err)
		respondError(w, http.StatusInternalServerError, "Failed to run digest")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
