package entity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusCancelled CampaignStatus = "cancelled"
	CampaignStatusFailed    CampaignStatus = "failed"
)

// EmailTemplate is a value object carried inside a campaign. Subject and both
// bodies may contain {{name}} placeholders.
type EmailTemplate struct {
	Subject   string                 `json:"subject"`
	HTMLBody  string                 `json:"htmlBody"`
	TextBody  string                 `json:"textBody"`
	Variables map[string]interface{} `json:"variables"`
}

type EmailCampaign struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Status          CampaignStatus `json:"status"`
	EmailTemplate   string         `json:"email_template"` // serialized EmailTemplate
	TargetCompanies []string       `json:"target_companies"`

	EmailsSent       int `json:"emails_sent"`
	EmailsOpened     int `json:"emails_opened"`
	EmailsClicked    int `json:"emails_clicked"`
	EmailsReplied    int `json:"emails_replied"`
	CompaniesClaimed int `json:"companies_claimed"`
	TrialSignups     int `json:"trial_signups"`

	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	ExecutedAt *time.Time `json:"executed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewEmailCampaign creates a draft campaign with zero counters.
func NewEmailCampaign(name, description string, template EmailTemplate, companyIDs []string) (*EmailCampaign, error) {
	serialized, err := json.Marshal(template)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	return &EmailCampaign{
		ID:              uuid.New().String(),
		Name:            name,
		Description:     description,
		Status:          CampaignStatusDraft,
		EmailTemplate:   string(serialized),
		TargetCompanies: companyIDs,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// CanExecute reports whether the campaign may be sent. Execution is only
// permitted from draft.
func (c *EmailCampaign) CanExecute() bool {
	return c.Status == CampaignStatusDraft
}

func (c *EmailCampaign) IsTerminal() bool {
	switch c.Status {
	case CampaignStatusCompleted, CampaignStatusCancelled, CampaignStatusFailed:
		return true
	default:
		return false
	}
}

func (c *EmailCampaign) Template() (EmailTemplate, error) {
	var tpl EmailTemplate
	err := json.Unmarshal([]byte(c.EmailTemplate), &tpl)
	return tpl, err
}

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, campaign *EmailCampaign) error
	Update(ctx context.Context, campaign *EmailCampaign) error
	FindByID(ctx context.Context, id string) (*EmailCampaign, error)

	// List returns campaigns ordered by created_at desc, filtered by status
	// when status is non-empty.
	List(ctx context.Context, status CampaignStatus) ([]*EmailCampaign, error)
}
