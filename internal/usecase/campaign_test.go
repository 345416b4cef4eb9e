package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/serenelion/earthcare-network/internal/entity"
	"github.com/serenelion/earthcare-network/internal/infra/mail"
	"github.com/serenelion/earthcare-network/internal/usecase"
)

func newCampaignUseCase(
	campaigns *MockCampaignRepository,
	leads *MockLeadRepository,
	companies *MockCompanyRepository,
	mailer usecase.MailSender,
) *usecase.EmailCampaignUseCase {
	return usecase.NewEmailCampaignUseCase(
		campaigns, leads, companies, mailer,
		usecase.NewTemplateRenderer("", ""),
	)
}

func draftCampaign(t *testing.T) *entity.EmailCampaign {
	t.Helper()
	campaign, err := entity.NewEmailCampaign(
		"Claim Campaign",
		"invite leads to claim their profile",
		usecase.DefaultBusinessClaimTemplate(),
		[]string{"company-1"},
	)
	assert.NoError(t, err)
	return campaign
}

func targetLead(email string) *entity.LeadProspect {
	return &entity.LeadProspect{
		ID:        "lead-" + email,
		FirstName: "Sarah",
		LastName:  "Johnson",
		Email:     email,
		JobTitle:  "CEO",
		CompanyID: "company-1",
	}
}

func TestCreateCampaign(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	campaigns.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := newCampaignUseCase(campaigns, new(MockLeadRepository), new(MockCompanyRepository), mail.NewSimulatedSender())

	campaign, err := uc.CreateCampaign(context.Background(), "Spring Outreach", "desc", usecase.DefaultBusinessClaimTemplate(), []string{"company-1"})

	assert.NoError(t, err)
	assert.Equal(t, entity.CampaignStatusDraft, campaign.Status)
	assert.Equal(t, 0, campaign.EmailsSent)
	assert.NotEmpty(t, campaign.ID)
}

func TestCreateCampaignValidation(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	uc := newCampaignUseCase(campaigns, new(MockLeadRepository), new(MockCompanyRepository), mail.NewSimulatedSender())

	_, err := uc.CreateCampaign(context.Background(), "", "desc", entity.EmailTemplate{}, nil)

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	campaigns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecuteCampaignOnlyFromDraft(t *testing.T) {
	for _, status := range []entity.CampaignStatus{
		entity.CampaignStatusActive,
		entity.CampaignStatusPaused,
		entity.CampaignStatusCompleted,
		entity.CampaignStatusCancelled,
		entity.CampaignStatusFailed,
	} {
		t.Run(string(status), func(t *testing.T) {
			campaign := draftCampaign(t)
			campaign.Status = status

			campaigns := new(MockCampaignRepository)
			campaigns.On("FindByID", mock.Anything, campaign.ID).Return(campaign, nil)

			uc := newCampaignUseCase(campaigns, new(MockLeadRepository), new(MockCompanyRepository), mail.NewSimulatedSender())
			result := uc.ExecuteCampaign(context.Background(), campaign.ID)

			assert.False(t, result.Success)
			assert.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], "not in draft")
			assert.Equal(t, status, campaign.Status)
			campaigns.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestExecuteCampaignUnknownCampaign(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	campaigns.On("FindByID", mock.Anything, "missing").Return(nil, errors.New("not found"))

	uc := newCampaignUseCase(campaigns, new(MockLeadRepository), new(MockCompanyRepository), mail.NewSimulatedSender())
	result := uc.ExecuteCampaign(context.Background(), "missing")

	assert.False(t, result.Success)
	assert.Len(t, result.Errors, 1)
}

func TestExecuteCampaignZeroLeads(t *testing.T) {
	campaign := draftCampaign(t)

	campaigns := new(MockCampaignRepository)
	campaigns.On("FindByID", mock.Anything, campaign.ID).Return(campaign, nil)
	campaigns.On("Update", mock.Anything, campaign).Return(nil)

	leads := new(MockLeadRepository)
	leads.On("ListTargets", mock.Anything, []string{"company-1"}, campaign.ID).Return([]*entity.LeadProspect{}, nil)

	uc := newCampaignUseCase(campaigns, leads, new(MockCompanyRepository), mail.NewSimulatedSender())
	result := uc.ExecuteCampaign(context.Background(), campaign.ID)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.EmailsSent)
	assert.Equal(t, entity.CampaignStatusActive, campaign.Status)
	assert.NotNil(t, campaign.ExecutedAt)
}

func TestExecuteCampaignPartialFailure(t *testing.T) {
	campaign := draftCampaign(t)

	campaigns := new(MockCampaignRepository)
	campaigns.On("FindByID", mock.Anything, campaign.ID).Return(campaign, nil)
	campaigns.On("Update", mock.Anything, campaign).Return(nil)

	targets := []*entity.LeadProspect{
		targetLead("first@greentech.eco"),
		targetLead("bounce@greentech.eco"),
		targetLead("third@greentech.eco"),
	}

	leads := new(MockLeadRepository)
	leads.On("ListTargets", mock.Anything, []string{"company-1"}, campaign.ID).Return(targets, nil)
	leads.On("Update", mock.Anything, mock.Anything).Return(nil)

	companies := new(MockCompanyRepository)
	companies.On("FindByID", mock.Anything, "company-1").Return(greenTechCompany(), nil)

	mailer := &mail.SimulatedSender{FailFunc: func(to string) bool {
		return to == "bounce@greentech.eco"
	}}

	uc := newCampaignUseCase(campaigns, leads, companies, mailer)
	result := uc.ExecuteCampaign(context.Background(), campaign.ID)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.EmailsSent)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "bounce@greentech.eco")

	assert.Equal(t, entity.CampaignStatusActive, campaign.Status)
	assert.Equal(t, 2, campaign.EmailsSent)

	// Contact tracking only for successful sends.
	leads.AssertNumberOfCalls(t, "Update", 2)
	assert.Equal(t, 1, targets[0].ContactCount)
	assert.Equal(t, campaign.ID, targets[0].LastContactedCampaignID)
	assert.NotNil(t, targets[0].LastContactedAt)
	assert.Equal(t, 0, targets[1].ContactCount)
}

func TestExecuteCampaignTargetLookupFailure(t *testing.T) {
	campaign := draftCampaign(t)

	campaigns := new(MockCampaignRepository)
	campaigns.On("FindByID", mock.Anything, campaign.ID).Return(campaign, nil)
	campaigns.On("Update", mock.Anything, campaign).Return(nil)

	leads := new(MockLeadRepository)
	leads.On("ListTargets", mock.Anything, []string{"company-1"}, campaign.ID).Return(nil, errors.New("db down"))

	uc := newCampaignUseCase(campaigns, leads, new(MockCompanyRepository), mail.NewSimulatedSender())
	result := uc.ExecuteCampaign(context.Background(), campaign.ID)

	assert.False(t, result.Success)
	assert.Equal(t, entity.CampaignStatusFailed, campaign.Status)
}

func TestPauseAndResumeCampaign(t *testing.T) {
	campaign := draftCampaign(t)
	campaign.Status = entity.CampaignStatusActive

	campaigns := new(MockCampaignRepository)
	campaigns.On("FindByID", mock.Anything, campaign.ID).Return(campaign, nil)
	campaigns.On("Update", mock.Anything, campaign).Return(nil)

	uc := newCampaignUseCase(campaigns, new(MockLeadRepository), new(MockCompanyRepository), mail.NewSimulatedSender())

	assert.NoError(t, uc.PauseCampaign(context.Background(), campaign.ID))
	assert.Equal(t, entity.CampaignStatusPaused, campaign.Status)

	assert.NoError(t, uc.ResumeCampaign(context.Background(), campaign.ID))
	assert.Equal(t, entity.CampaignStatusActive, campaign.Status)
}

func TestUpdateCampaignMetrics(t *testing.T) {
	campaign := draftCampaign(t)

	campaigns := new(MockCampaignRepository)
	campaigns.On("FindByID", mock.Anything, campaign.ID).Return(campaign, nil)
	campaigns.On("Update", mock.Anything, campaign).Return(nil)

	uc := newCampaignUseCase(campaigns, new(MockLeadRepository), new(MockCompanyRepository), mail.NewSimulatedSender())

	assert.NoError(t, uc.UpdateCampaignMetrics(context.Background(), campaign.ID, "opened"))
	assert.NoError(t, uc.UpdateCampaignMetrics(context.Background(), campaign.ID, "clicked"))
	assert.NoError(t, uc.UpdateCampaignMetrics(context.Background(), campaign.ID, "claimed"))
	assert.NoError(t, uc.UpdateCampaignMetrics(context.Background(), campaign.ID, "trial_signup"))

	assert.Equal(t, 1, campaign.EmailsOpened)
	assert.Equal(t, 1, campaign.EmailsClicked)
	assert.Equal(t, 1, campaign.CompaniesClaimed)
	assert.Equal(t, 1, campaign.TrialSignups)
}

func TestUpdateCampaignMetricsUnknownType(t *testing.T) {
	campaign := draftCampaign(t)

	campaigns := new(MockCampaignRepository)
	campaigns.On("FindByID", mock.Anything, campaign.ID).Return(campaign, nil)

	uc := newCampaignUseCase(campaigns, new(MockLeadRepository), new(MockCompanyRepository), mail.NewSimulatedSender())
	err := uc.UpdateCampaignMetrics(context.Background(), campaign.ID, "forwarded")

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	campaigns.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateCampaignMetricsUnknownCampaignIsNoOp(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	campaigns.On("FindByID", mock.Anything, "missing").Return(nil, errors.New("not found"))

	uc := newCampaignUseCase(campaigns, new(MockLeadRepository), new(MockCompanyRepository), mail.NewSimulatedSender())

	assert.NoError(t, uc.UpdateCampaignMetrics(context.Background(), "missing", "opened"))
	campaigns.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetCampaignMetricsConversionRate(t *testing.T) {
	campaign := draftCampaign(t)
	campaign.EmailsSent = 4
	campaign.CompaniesClaimed = 1

	campaigns := new(MockCampaignRepository)
	campaigns.On("FindByID", mock.Anything, campaign.ID).Return(campaign, nil)

	uc := newCampaignUseCase(campaigns, new(MockLeadRepository), new(MockCompanyRepository), mail.NewSimulatedSender())
	metrics, err := uc.GetCampaignMetrics(context.Background(), campaign.ID)

	assert.NoError(t, err)
	assert.Equal(t, 25.0, metrics.ConversionRate)
}

func TestGetCampaignMetricsZeroSent(t *testing.T) {
	campaign := draftCampaign(t)
	campaign.CompaniesClaimed = 3

	campaigns := new(MockCampaignRepository)
	campaigns.On("FindByID", mock.Anything, campaign.ID).Return(campaign, nil)

	uc := newCampaignUseCase(campaigns, new(MockLeadRepository), new(MockCompanyRepository), mail.NewSimulatedSender())
	metrics, err := uc.GetCampaignMetrics(context.Background(), campaign.ID)

	assert.NoError(t, err)
	assert.Equal(t, 0.0, metrics.ConversionRate)
}
