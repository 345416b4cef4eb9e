package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/serenelion/earthcare-network/internal/entity"
	"github.com/serenelion/earthcare-network/internal/usecase"
)

type AgentHandler struct {
	Agent *usecase.AgentUseCase
}

func NewAgentHandler(agent *usecase.AgentUseCase) *AgentHandler {
	return &AgentHandler{Agent: agent}
}

type processCompanyRequest struct {
	CompanyID string                    `json:"companyId"`
	Config    *usecase.AgentConfigPatch `json:"config,omitempty"`
}

func (h *AgentHandler) HandleProcessCompany(w http.ResponseWriter, r *http.Request) {
	var req processCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON: " + err.Error()})
		return
	}
	if req.CompanyID == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "companyId is required"})
		return
	}

	result := h.Agent.ProcessCompanyForLeadGeneration(r.Context(), req.CompanyID, req.Config)
	respondJSON(w, http.StatusOK, result)
}

type processBatchRequest struct {
	CompanyIDs []string                  `json:"companyIds"`
	Config     *usecase.AgentConfigPatch `json:"config,omitempty"`
}

func (h *AgentHandler) HandleProcessBatch(w http.ResponseWriter, r *http.Request) {
	var req processBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON: " + err.Error()})
		return
	}
	if len(req.CompanyIDs) == 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "companyIds is required"})
		return
	}

	results := h.Agent.ProcessBatchCompanies(r.Context(), req.CompanyIDs, req.Config)
	respondJSON(w, http.StatusOK, results)
}

type createCustomCampaignRequest struct {
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	EmailTemplate entity.EmailTemplate `json:"emailTemplate"`
	CompanyIDs    []string             `json:"companyIds"`
	AutoExecute   bool                 `json:"autoExecute"`
}

type createCustomCampaignResponse struct {
	CampaignID string                  `json:"campaignId"`
	Executed   bool                    `json:"executed"`
	Result     *usecase.CampaignResult `json:"result,omitempty"`
}

func (h *AgentHandler) HandleCreateCustomCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCustomCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON: " + err.Error()})
		return
	}

	campaignID, executed, result, err := h.Agent.CreateCustomEmailCampaign(
		r.Context(), req.Name, req.Description, req.EmailTemplate, req.CompanyIDs, req.AutoExecute)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, createCustomCampaignResponse{
		CampaignID: campaignID,
		Executed:   executed,
		Result:     result,
	})
}

func (h *AgentHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Agent.GetAgentSummary(r.Context(), r.URL.Query().Get("companyId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *AgentHandler) HandleRecommendedActions(w http.ResponseWriter, r *http.Request) {
	actions, err := h.Agent.GetRecommendedActions(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, actions)
}

type scheduleDiscoveryRequest struct {
	Config *usecase.AgentConfigPatch `json:"config,omitempty"`
}

func (h *AgentHandler) HandleScheduleDiscovery(w http.ResponseWriter, r *http.Request) {
	var req scheduleDiscoveryRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON: " + err.Error()})
			return
		}
	}

	result, err := h.Agent.ScheduleDiscoveryForAllCompanies(r.Context(), req.Config)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, result)
}
