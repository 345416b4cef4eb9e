package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/serenelion/earthcare-network/internal/entity"
	"github.com/serenelion/earthcare-network/internal/infra/queue"
)

type AgentStatus string

const (
	StatusDiscoveryStarted   AgentStatus = "discovery_started"
	StatusDiscoveryCompleted AgentStatus = "discovery_completed"
	StatusCampaignSent       AgentStatus = "campaign_sent"
	StatusFailed             AgentStatus = "failed"
)

// AgentConfig gates the automated workflow. Auto-emailing defaults to off so
// a discovery run never sends mail without explicit opt-in.
type AgentConfig struct {
	AutoDiscoveryEnabled bool `json:"autoDiscoveryEnabled"`
	AutoEmailingEnabled  bool `json:"autoEmailingEnabled"`
	MaxLeadsPerCompany   int  `json:"maxLeadsPerCompany"`
	EmailThrottleHours   int  `json:"emailThrottleHours"`
	MinimumScore         int  `json:"minimumScore"`
}

func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		AutoDiscoveryEnabled: true,
		AutoEmailingEnabled:  false,
		MaxLeadsPerCompany:   10,
		EmailThrottleHours:   24,
		MinimumScore:         60,
	}
}

// AgentConfigPatch is a partial config override; nil fields keep the default.
type AgentConfigPatch struct {
	AutoDiscoveryEnabled *bool `json:"autoDiscoveryEnabled,omitempty"`
	AutoEmailingEnabled  *bool `json:"autoEmailingEnabled,omitempty"`
	MaxLeadsPerCompany   *int  `json:"maxLeadsPerCompany,omitempty"`
	EmailThrottleHours   *int  `json:"emailThrottleHours,omitempty"`
	MinimumScore         *int  `json:"minimumScore,omitempty"`
}

func (c AgentConfig) Merge(patch *AgentConfigPatch) AgentConfig {
	if patch == nil {
		return c
	}
	if patch.AutoDiscoveryEnabled != nil {
		c.AutoDiscoveryEnabled = *patch.AutoDiscoveryEnabled
	}
	if patch.AutoEmailingEnabled != nil {
		c.AutoEmailingEnabled = *patch.AutoEmailingEnabled
	}
	if patch.MaxLeadsPerCompany != nil {
		c.MaxLeadsPerCompany = *patch.MaxLeadsPerCompany
	}
	if patch.EmailThrottleHours != nil {
		c.EmailThrottleHours = *patch.EmailThrottleHours
	}
	if patch.MinimumScore != nil {
		c.MinimumScore = *patch.MinimumScore
	}
	return c
}

// CompanyLeadGeneration is the composite outcome of the discovery → campaign
// workflow for one company.
type CompanyLeadGeneration struct {
	CompanyID       string           `json:"companyId"`
	CompanyName     string           `json:"companyName"`
	DiscoveryResult EnrichmentResult `json:"discoveryResult"`
	CampaignResult  *CampaignResult  `json:"campaignResult,omitempty"`
	Status          AgentStatus      `json:"status"`
	Errors          []string         `json:"errors"`
}

type AgentSummary struct {
	TotalLeadsFound int              `json:"totalLeadsFound"`
	TotalEmailsSent int              `json:"totalEmailsSent"`
	TotalCampaigns  int              `json:"totalCampaigns"`
	ActiveCampaigns int              `json:"activeCampaigns"`
	ConversionRate  float64          `json:"conversionRate"`
	RecentActivity  []RecentActivity `json:"recentActivity"`
}

type RecentActivity struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Status           entity.CampaignStatus `json:"status"`
	EmailsSent       int                   `json:"emailsSent"`
	CompaniesClaimed int                   `json:"companiesClaimed"`
	CreatedAt        time.Time             `json:"createdAt"`
	ExecutedAt       *time.Time            `json:"executedAt,omitempty"`
}

type RecommendedAction struct {
	Type     string                 `json:"type"`     // discover_leads | send_campaign | review_metrics
	Priority string                 `json:"priority"` // high | medium | low
	Message  string                 `json:"message"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

type ScheduleResult struct {
	Scheduled int    `json:"scheduled"`
	Message   string `json:"message"`
}

// batchDelay throttles back-to-back company processing when auto-emailing is
// on, so the mail path is never hammered.
const batchDelay = 2 * time.Second

type AgentUseCase struct {
	Discovery *LeadDiscoveryUseCase
	Campaigns *EmailCampaignUseCase
	Companies entity.CompanyRepositoryInterface
	Queue     QueueProducerInterface

	defaults AgentConfig
	delay    time.Duration
}

func NewAgentUseCase(
	discovery *LeadDiscoveryUseCase,
	campaigns *EmailCampaignUseCase,
	companies entity.CompanyRepositoryInterface,
	producer QueueProducerInterface,
) *AgentUseCase {
	return &AgentUseCase{
		Discovery: discovery,
		Campaigns: campaigns,
		Companies: companies,
		Queue:     producer,
		defaults:  DefaultAgentConfig(),
		delay:     batchDelay,
	}
}

// ProcessCompanyForLeadGeneration chains discovery into an optional claim
// campaign for one company. A failed discovery short-circuits; a failed
// campaign is recorded without retroactively failing the discovery step.
func (uc *AgentUseCase) ProcessCompanyForLeadGeneration(ctx context.Context, companyID string, patch *AgentConfigPatch) CompanyLeadGeneration {
	config := uc.defaults.Merge(patch)

	result := CompanyLeadGeneration{
		CompanyID: companyID,
		Status:    StatusDiscoveryStarted,
		Errors:    []string{},
	}

	if company, err := uc.Companies.FindByID(ctx, companyID); err == nil {
		result.CompanyName = company.Name
	}

	log.Printf("agent: processing company %s", companyID)

	if config.AutoDiscoveryEnabled {
		result.DiscoveryResult = uc.Discovery.DiscoverLeadsForCompany(ctx, companyID, DiscoveryParams{})
		result.Status = StatusDiscoveryCompleted

		if !result.DiscoveryResult.Success {
			result.Status = StatusFailed
			result.Errors = append(result.Errors, result.DiscoveryResult.Errors...)
			return result
		}

		log.Printf("agent: discovery done for %s, %d leads found", companyID, result.DiscoveryResult.LeadsFound)
	}

	if config.AutoEmailingEnabled && result.DiscoveryResult.LeadsFound > 0 {
		campaignResult := uc.runBusinessClaimCampaign(ctx, companyID)
		result.CampaignResult = &campaignResult

		if campaignResult.Success {
			result.Status = StatusCampaignSent
			log.Printf("agent: campaign done for %s, %d emails sent", companyID, campaignResult.EmailsSent)
		} else {
			result.Errors = append(result.Errors, campaignResult.Errors...)
		}
	}

	return result
}

// ProcessBatchCompanies runs the workflow sequentially over many companies.
// Per-company failures are isolated in the result list. With auto-emailing on,
// companies are spaced out by a fixed delay. Cancelling the context stops the
// batch between companies; results gathered so far are returned.
func (uc *AgentUseCase) ProcessBatchCompanies(ctx context.Context, companyIDs []string, patch *AgentConfigPatch) []CompanyLeadGeneration {
	log.Printf("agent: processing batch of %d companies", len(companyIDs))

	config := uc.defaults.Merge(patch)
	results := make([]CompanyLeadGeneration, 0, len(companyIDs))

	for i, companyID := range companyIDs {
		if ctx.Err() != nil {
			log.Printf("agent: batch cancelled after %d of %d companies", i, len(companyIDs))
			break
		}

		results = append(results, uc.ProcessCompanyForLeadGeneration(ctx, companyID, patch))

		if config.AutoEmailingEnabled && i < len(companyIDs)-1 {
			select {
			case <-time.After(uc.delay):
			case <-ctx.Done():
			}
		}
	}

	log.Printf("agent: batch done, %d companies processed", len(results))
	return results
}

// ProcessLeadGeneration adapts the workflow to queue-worker consumption.
func (uc *AgentUseCase) ProcessLeadGeneration(ctx context.Context, companyID string, autoEmailing bool) error {
	patch := &AgentConfigPatch{AutoEmailingEnabled: &autoEmailing}
	result := uc.ProcessCompanyForLeadGeneration(ctx, companyID, patch)
	if result.Status == StatusFailed {
		return fmt.Errorf("lead generation failed for %s: %v", companyID, result.Errors)
	}
	return nil
}

// CreateCustomEmailCampaign creates a campaign with a caller-supplied template
// and optionally executes it in the same call.
func (uc *AgentUseCase) CreateCustomEmailCampaign(ctx context.Context, name, description string, template entity.EmailTemplate, companyIDs []string, autoExecute bool) (string, bool, *CampaignResult, error) {
	campaign, err := uc.Campaigns.CreateCampaign(ctx, name, description, template, companyIDs)
	if err != nil {
		return "", false, nil, err
	}

	if !autoExecute {
		return campaign.ID, false, nil, nil
	}

	result := uc.Campaigns.ExecuteCampaign(ctx, campaign.ID)
	return campaign.ID, true, &result, nil
}

// GetAgentSummary aggregates totals across all campaigns; companyID narrows
// the lead count only.
func (uc *AgentUseCase) GetAgentSummary(ctx context.Context, companyID string) (AgentSummary, error) {
	campaigns, err := uc.Campaigns.GetCampaigns(ctx, "")
	if err != nil {
		return AgentSummary{}, err
	}

	summary := AgentSummary{
		TotalCampaigns: len(campaigns),
		RecentActivity: []RecentActivity{},
	}

	totalClaimed := 0
	for _, campaign := range campaigns {
		summary.TotalEmailsSent += campaign.EmailsSent
		totalClaimed += campaign.CompaniesClaimed
		if campaign.Status == entity.CampaignStatusActive {
			summary.ActiveCampaigns++
		}
	}

	if companyID != "" {
		leads, err := uc.Discovery.GetLeadsForCompany(ctx, companyID)
		if err != nil {
			return AgentSummary{}, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to count leads: " + err.Error()}
		}
		summary.TotalLeadsFound = len(leads)
	}

	summary.ConversionRate = conversionRate(totalClaimed, summary.TotalEmailsSent)

	for i, campaign := range campaigns {
		if i == 5 {
			break
		}
		summary.RecentActivity = append(summary.RecentActivity, RecentActivity{
			ID:               campaign.ID,
			Name:             campaign.Name,
			Status:           campaign.Status,
			EmailsSent:       campaign.EmailsSent,
			CompaniesClaimed: campaign.CompaniesClaimed,
			CreatedAt:        campaign.CreatedAt,
			ExecutedAt:       campaign.ExecutedAt,
		})
	}

	return summary, nil
}

// GetRecommendedActions surfaces the next steps an operator should look at:
// pending draft campaigns and active campaigns with open rate under 10% after
// more than 10 sends.
func (uc *AgentUseCase) GetRecommendedActions(ctx context.Context) ([]RecommendedAction, error) {
	actions := []RecommendedAction{
		{
			Type:     "discover_leads",
			Priority: "medium",
			Message:  "Run lead discovery for companies that haven't been processed recently",
		},
	}

	drafts, err := uc.Campaigns.GetCampaigns(ctx, entity.CampaignStatusDraft)
	if err != nil {
		return nil, err
	}
	if len(drafts) > 0 {
		actions = append(actions, RecommendedAction{
			Type:     "send_campaign",
			Priority: "high",
			Message:  fmt.Sprintf("You have %d draft email campaigns ready to send", len(drafts)),
			Data:     map[string]interface{}{"campaigns": len(drafts)},
		})
	}

	active, err := uc.Campaigns.GetCampaigns(ctx, entity.CampaignStatusActive)
	if err != nil {
		return nil, err
	}

	underperforming := 0
	for _, campaign := range active {
		if campaign.EmailsSent > 10 && float64(campaign.EmailsOpened)/float64(campaign.EmailsSent) < 0.1 {
			underperforming++
		}
	}
	if underperforming > 0 {
		actions = append(actions, RecommendedAction{
			Type:     "review_metrics",
			Priority: "medium",
			Message:  fmt.Sprintf("%d campaigns have low open rates and may need optimization", underperforming),
			Data:     map[string]interface{}{"campaigns": underperforming},
		})
	}

	return actions, nil
}

// ScheduleDiscoveryForAllCompanies publishes one lead-generation job per
// unclaimed company; the queue worker picks them up asynchronously.
func (uc *AgentUseCase) ScheduleDiscoveryForAllCompanies(ctx context.Context, patch *AgentConfigPatch) (ScheduleResult, error) {
	config := uc.defaults.Merge(patch)

	companies, err := uc.Companies.ListUnclaimed(ctx)
	if err != nil {
		return ScheduleResult{}, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to list companies: " + err.Error()}
	}

	scheduled := 0
	for _, company := range companies {
		payload := queue.LeadGenerationPayload{
			CompanyID:    company.ID,
			AutoEmailing: config.AutoEmailingEnabled,
			Origin:       "SCHEDULED_DISCOVERY",
		}
		if err := uc.Queue.PublishLeadGeneration(ctx, payload); err != nil {
			log.Printf("agent: failed to schedule company %s: %v", company.ID, err)
			continue
		}
		scheduled++
	}

	message := fmt.Sprintf("lead discovery scheduled for %d companies (auto-emailing=%t)", scheduled, config.AutoEmailingEnabled)
	log.Printf("agent: %s", message)

	return ScheduleResult{Scheduled: scheduled, Message: message}, nil
}

func (uc *AgentUseCase) runBusinessClaimCampaign(ctx context.Context, companyID string) CampaignResult {
	template := DefaultBusinessClaimTemplate()

	campaign, err := uc.Campaigns.CreateCampaign(
		ctx,
		fmt.Sprintf("Business Claim Campaign - Company %s", companyID),
		"Automated campaign to invite discovered leads to claim their business profile",
		template,
		[]string{companyID},
	)
	if err != nil {
		return CampaignResult{Errors: []string{err.Error()}}
	}

	return uc.Campaigns.ExecuteCampaign(ctx, campaign.ID)
}
