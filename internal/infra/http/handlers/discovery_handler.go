package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/serenelion/earthcare-network/internal/infra/http/middleware"
	"github.com/serenelion/earthcare-network/internal/usecase"
)

type DiscoveryHandler struct {
	Discovery *usecase.LeadDiscoveryUseCase
}

func NewDiscoveryHandler(discovery *usecase.LeadDiscoveryUseCase) *DiscoveryHandler {
	return &DiscoveryHandler{Discovery: discovery}
}

// HandleDiscover runs lead discovery for one company. The body may carry
// optional DiscoveryParams overrides; an empty body uses company defaults.
func (h *DiscoveryHandler) HandleDiscover(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")

	var params usecase.DiscoveryParams
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON: " + err.Error()})
			return
		}
	}

	result := h.Discovery.DiscoverLeadsForCompany(r.Context(), companyID, params)

	middleware.RecordLeadsDiscovered(result.LeadsFound)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, result)
}

func (h *DiscoveryHandler) HandleGetLeads(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")

	leads, err := h.Discovery.GetLeadsForCompany(r.Context(), companyID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, leads)
}

type updateScoreRequest struct {
	Score int `json:"score"`
}

func (h *DiscoveryHandler) HandleUpdateScore(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadId")

	var req updateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON: " + err.Error()})
		return
	}

	if err := h.Discovery.UpdateLeadScore(r.Context(), leadID, req.Score); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
