package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/serenelion/earthcare-network/internal/entity"
	"github.com/serenelion/earthcare-network/internal/infra/http/middleware"
	"github.com/serenelion/earthcare-network/internal/usecase"
)

type CampaignHandler struct {
	Campaigns *usecase.EmailCampaignUseCase
}

func NewCampaignHandler(campaigns *usecase.EmailCampaignUseCase) *CampaignHandler {
	return &CampaignHandler{Campaigns: campaigns}
}

type createCampaignRequest struct {
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	EmailTemplate entity.EmailTemplate `json:"emailTemplate"`
	CompanyIDs    []string             `json:"companyIds"`
}

func (h *CampaignHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON: " + err.Error()})
		return
	}

	campaign, err := h.Campaigns.CreateCampaign(r.Context(), req.Name, req.Description, req.EmailTemplate, req.CompanyIDs)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, campaign)
}

func (h *CampaignHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	status := entity.CampaignStatus(r.URL.Query().Get("status"))

	campaigns, err := h.Campaigns.GetCampaigns(r.Context(), status)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, campaigns)
}

func (h *CampaignHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignId")

	result := h.Campaigns.ExecuteCampaign(r.Context(), campaignID)

	middleware.RecordCampaignExecution(result.EmailsSent, len(result.Errors))

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, result)
}

func (h *CampaignHandler) HandlePause(w http.ResponseWriter, r *http.Request) {
	if err := h.Campaigns.PauseCampaign(r.Context(), chi.URLParam(r, "campaignId")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "campaign paused"})
}

func (h *CampaignHandler) HandleResume(w http.ResponseWriter, r *http.Request) {
	if err := h.Campaigns.ResumeCampaign(r.Context(), chi.URLParam(r, "campaignId")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "campaign resumed"})
}

func (h *CampaignHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.Campaigns.GetCampaignMetrics(r.Context(), chi.URLParam(r, "campaignId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, metrics)
}

type updateMetricsRequest struct {
	Type string `json:"type"` // opened | clicked | replied | claimed | trial_signup
}

func (h *CampaignHandler) HandleUpdateMetrics(w http.ResponseWriter, r *http.Request) {
	var req updateMetricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON: " + err.Error()})
		return
	}

	if err := h.Campaigns.UpdateCampaignMetrics(r.Context(), chi.URLParam(r, "campaignId"), req.Type); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "campaign metrics updated"})
}

func (h *CampaignHandler) HandleGetDefaultTemplate(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, usecase.DefaultBusinessClaimTemplate())
}
