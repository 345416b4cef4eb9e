package entity

import (
	"context"
	"errors"
	"time"
)

type DataSource string

const (
	DataSourceApollo   DataSource = "apollo"
	DataSourceLinkedIn DataSource = "linkedin"
	DataSourceZoomInfo DataSource = "zoominfo"
	DataSourceHunter   DataSource = "hunter"
	DataSourceClearbit DataSource = "clearbit"
	DataSourceManual   DataSource = "manual"
)

type EnrichmentStatus string

const (
	EnrichmentPending   EnrichmentStatus = "pending"
	EnrichmentEnriching EnrichmentStatus = "enriching"
	EnrichmentCompleted EnrichmentStatus = "completed"
	EnrichmentFailed    EnrichmentStatus = "failed"
)

var ErrLeadAlreadyExists = errors.New("lead already exists for this company")

// LeadProspect is a person attached to a directory company, candidate for
// claim-invitation outreach. Email is unique within a company's lead set.
type LeadProspect struct {
	ID                      string           `json:"id"`
	FirstName               string           `json:"first_name"`
	LastName                string           `json:"last_name"`
	Email                   string           `json:"email"`
	JobTitle                string           `json:"job_title"`
	LinkedinURL             string           `json:"linkedin_url,omitempty"`
	DataSource              DataSource       `json:"data_source"`
	AIScore                 int              `json:"ai_score"` // 0-100
	EnrichmentStatus        EnrichmentStatus `json:"enrichment_status"`
	LastEnriched            *time.Time       `json:"last_enriched,omitempty"`
	CompanyID               string           `json:"company_id"`
	LastContactedAt         *time.Time       `json:"last_contacted_at,omitempty"`
	LastContactedCampaignID string           `json:"last_contacted_campaign_id,omitempty"`
	ContactCount            int              `json:"contact_count"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
}

func (l *LeadProspect) FullName() string {
	return l.FirstName + " " + l.LastName
}

// ProspectCandidate is an unsaved lead record as returned by a discovery
// source, before dedup and persistence.
type ProspectCandidate struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	JobTitle    string     `json:"job_title"`
	LinkedinURL string     `json:"linkedin_url,omitempty"`
	DataSource  DataSource `json:"data_source"`
	AIScore     int        `json:"ai_score"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *LeadProspect) error
	Update(ctx context.Context, lead *LeadProspect) error
	FindByID(ctx context.Context, id string) (*LeadProspect, error)

	// FindByEmailAndCompany returns (nil, nil) when no matching lead exists.
	FindByEmailAndCompany(ctx context.Context, email, companyID string) (*LeadProspect, error)

	// ListByCompany returns leads ordered by score desc, then created_at desc.
	ListByCompany(ctx context.Context, companyID string) ([]*LeadProspect, error)

	// ListTargets returns sendable leads ordered by score desc. An empty
	// companyIDs slice means no company filter. Leads whose last contacted
	// campaign is excludeCampaignID are omitted.
	ListTargets(ctx context.Context, companyIDs []string, excludeCampaignID string) ([]*LeadProspect, error)
}
