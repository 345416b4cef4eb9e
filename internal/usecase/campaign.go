package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/serenelion/earthcare-network/internal/entity"
)

// CampaignResult summarizes one execution attempt. Per-lead send failures land
// in Errors without aborting the batch; Success is false only for
// orchestration-level failures.
type CampaignResult struct {
	Success    bool     `json:"success"`
	CampaignID string   `json:"campaignId,omitempty"`
	EmailsSent int      `json:"emailsSent"`
	Errors     []string `json:"errors"`
}

type CampaignMetrics struct {
	EmailsSent       int     `json:"emailsSent"`
	EmailsOpened     int     `json:"emailsOpened"`
	EmailsClicked    int     `json:"emailsClicked"`
	EmailsReplied    int     `json:"emailsReplied"`
	CompaniesClaimed int     `json:"companiesClaimed"`
	TrialSignups     int     `json:"trialSignups"`
	ConversionRate   float64 `json:"conversionRate"`
}

type EmailCampaignUseCase struct {
	Campaigns entity.CampaignRepositoryInterface
	Leads     entity.LeadRepositoryInterface
	Companies entity.CompanyRepositoryInterface
	Mailer    MailSender
	Renderer  *TemplateRenderer
}

func NewEmailCampaignUseCase(
	campaigns entity.CampaignRepositoryInterface,
	leads entity.LeadRepositoryInterface,
	companies entity.CompanyRepositoryInterface,
	mailer MailSender,
	renderer *TemplateRenderer,
) *EmailCampaignUseCase {
	return &EmailCampaignUseCase{
		Campaigns: campaigns,
		Leads:     leads,
		Companies: companies,
		Mailer:    mailer,
		Renderer:  renderer,
	}
}

// CreateCampaign persists a new draft campaign with zero counters.
func (uc *EmailCampaignUseCase) CreateCampaign(ctx context.Context, name, description string, template entity.EmailTemplate, companyIDs []string) (*entity.EmailCampaign, error) {
	if validationErrors := ValidateCampaignInput(name, template); len(validationErrors) > 0 {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: joinValidationErrors(validationErrors)}
	}

	campaign, err := entity.NewEmailCampaign(name, description, template, companyIDs)
	if err != nil {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "invalid email template: " + err.Error()}
	}

	if err := uc.Campaigns.Create(ctx, campaign); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to persist campaign: " + err.Error()}
	}

	log.Printf("campaign: created %s (%s)", campaign.Name, campaign.ID)
	return campaign, nil
}

// ExecuteCampaign sends the campaign to its target leads, highest score first.
// Only draft campaigns may execute. One lead's failure never aborts the batch;
// an orchestration-level failure flips the campaign to failed.
func (uc *EmailCampaignUseCase) ExecuteCampaign(ctx context.Context, campaignID string) CampaignResult {
	log.Printf("campaign: executing %s", campaignID)

	campaign, err := uc.Campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return CampaignResult{Errors: []string{campaignNotFound(campaignID).Error()}}
	}

	if !campaign.CanExecute() {
		return CampaignResult{
			CampaignID: campaignID,
			Errors:     []string{fmt.Sprintf("campaign %s is not in draft status (status: %s)", campaignID, campaign.Status)},
		}
	}

	template, err := campaign.Template()
	if err != nil {
		return uc.failCampaign(ctx, campaign, "invalid stored template: "+err.Error())
	}

	targets, err := uc.Leads.ListTargets(ctx, campaign.TargetCompanies, campaign.ID)
	if err != nil {
		return uc.failCampaign(ctx, campaign, "failed to resolve target leads: "+err.Error())
	}

	sent := 0
	var sendErrors []string

	for _, lead := range targets {
		personalized := uc.Renderer.Personalize(template, lead, uc.companyName(ctx, lead.CompanyID))

		if err := uc.Mailer.Send(ctx, lead.Email, personalized.Subject, personalized.HTMLBody, personalized.TextBody); err != nil {
			sendErrors = append(sendErrors, fmt.Sprintf("failed to send email to %s: %v", lead.Email, err))
			continue
		}

		sent++
		log.Printf("campaign: email sent to %s", lead.Email)

		now := time.Now()
		lead.LastContactedAt = &now
		lead.LastContactedCampaignID = campaign.ID
		lead.ContactCount++
		lead.UpdatedAt = now

		if err := uc.Leads.Update(ctx, lead); err != nil {
			sendErrors = append(sendErrors, fmt.Sprintf("failed to record contact for %s: %v", lead.Email, err))
		}
	}

	now := time.Now()
	campaign.Status = entity.CampaignStatusActive
	campaign.EmailsSent = sent
	campaign.ExecutedAt = &now
	campaign.UpdatedAt = now

	if err := uc.Campaigns.Update(ctx, campaign); err != nil {
		return uc.failCampaign(ctx, campaign, "failed to persist campaign result: "+err.Error())
	}

	return CampaignResult{
		Success:    true,
		CampaignID: campaignID,
		EmailsSent: sent,
		Errors:     sendErrors,
	}
}

// PauseCampaign and ResumeCampaign are direct transitions with no guard
// beyond campaign existence.
func (uc *EmailCampaignUseCase) PauseCampaign(ctx context.Context, campaignID string) error {
	return uc.setStatus(ctx, campaignID, entity.CampaignStatusPaused)
}

func (uc *EmailCampaignUseCase) ResumeCampaign(ctx context.Context, campaignID string) error {
	return uc.setStatus(ctx, campaignID, entity.CampaignStatusActive)
}

// UpdateCampaignMetrics increments exactly one engagement counter. A missing
// campaign is a warning no-op: tracking callbacks fire long after a campaign
// may have been deleted.
func (uc *EmailCampaignUseCase) UpdateCampaignMetrics(ctx context.Context, campaignID, metricType string) error {
	campaign, err := uc.Campaigns.FindByID(ctx, campaignID)
	if err != nil {
		log.Printf("campaign: metrics update for unknown campaign %s", campaignID)
		return nil
	}

	switch metricType {
	case "opened":
		campaign.EmailsOpened++
	case "clicked":
		campaign.EmailsClicked++
	case "replied":
		campaign.EmailsReplied++
	case "claimed":
		campaign.CompaniesClaimed++
	case "trial_signup":
		campaign.TrialSignups++
	default:
		return &DomainError{Code: "VALIDATION_ERROR", Message: "unknown metric type: " + metricType}
	}

	campaign.UpdatedAt = time.Now()

	if err := uc.Campaigns.Update(ctx, campaign); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update metrics: " + err.Error()}
	}

	log.Printf("campaign: %s metrics updated (%s)", campaignID, metricType)
	return nil
}

func (uc *EmailCampaignUseCase) GetCampaignMetrics(ctx context.Context, campaignID string) (CampaignMetrics, error) {
	campaign, err := uc.Campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return CampaignMetrics{}, campaignNotFound(campaignID)
	}

	return CampaignMetrics{
		EmailsSent:       campaign.EmailsSent,
		EmailsOpened:     campaign.EmailsOpened,
		EmailsClicked:    campaign.EmailsClicked,
		EmailsReplied:    campaign.EmailsReplied,
		CompaniesClaimed: campaign.CompaniesClaimed,
		TrialSignups:     campaign.TrialSignups,
		ConversionRate:   conversionRate(campaign.CompaniesClaimed, campaign.EmailsSent),
	}, nil
}

func (uc *EmailCampaignUseCase) GetCampaigns(ctx context.Context, status entity.CampaignStatus) ([]*entity.EmailCampaign, error) {
	campaigns, err := uc.Campaigns.List(ctx, status)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to list campaigns: " + err.Error()}
	}
	return campaigns, nil
}

func (uc *EmailCampaignUseCase) setStatus(ctx context.Context, campaignID string, status entity.CampaignStatus) error {
	campaign, err := uc.Campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return campaignNotFound(campaignID)
	}

	campaign.Status = status
	campaign.UpdatedAt = time.Now()

	if err := uc.Campaigns.Update(ctx, campaign); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update campaign status: " + err.Error()}
	}

	log.Printf("campaign: %s -> %s", campaignID, status)
	return nil
}

func (uc *EmailCampaignUseCase) failCampaign(ctx context.Context, campaign *entity.EmailCampaign, message string) CampaignResult {
	log.Printf("campaign: %s failed: %s", campaign.ID, message)

	campaign.Status = entity.CampaignStatusFailed
	campaign.UpdatedAt = time.Now()
	if err := uc.Campaigns.Update(ctx, campaign); err != nil {
		log.Printf("campaign: could not mark %s failed: %v", campaign.ID, err)
	}

	return CampaignResult{CampaignID: campaign.ID, Errors: []string{message}}
}

func (uc *EmailCampaignUseCase) companyName(ctx context.Context, companyID string) string {
	company, err := uc.Companies.FindByID(ctx, companyID)
	if err != nil {
		return ""
	}
	return company.Name
}

// conversionRate is claims per sent email, as a percentage rounded to two
// decimals. Zero sends means zero rate.
func conversionRate(claimed, sent int) float64 {
	if sent == 0 {
		return 0
	}
	rate := float64(claimed) / float64(sent) * 100
	return math.Round(rate*100) / 100
}
