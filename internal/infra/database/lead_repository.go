package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/lib/pq"

	"github.com/serenelion/earthcare-network/internal/entity"
)

const leadColumns = `
	id, company_id, first_name, last_name, email, job_title, linkedin_url,
	data_source, ai_score, enrichment_status, last_enriched,
	last_contacted_at, last_contacted_campaign_id, contact_count,
	created_at, updated_at
`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.LeadProspect) error {
	query := `
		INSERT INTO lead_prospects (
			id, company_id, first_name, last_name, email, job_title,
			linkedin_url, data_source, ai_score, enrichment_status,
			contact_count, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.CompanyID,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.JobTitle,
		nullString(lead.LinkedinURL),
		string(lead.DataSource),
		lead.AIScore,
		string(lead.EnrichmentStatus),
		lead.ContactCount,
		lead.CreatedAt,
		lead.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// unique (company_id, email)
			return entity.ErrLeadAlreadyExists
		}

		log.Printf("lead repository: insert failed: %v", err)
		return err
	}

	return nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.LeadProspect) error {
	query := `
		UPDATE lead_prospects
		SET linkedin_url = $2,
			ai_score = $3,
			enrichment_status = $4,
			last_enriched = $5,
			last_contacted_at = $6,
			last_contacted_campaign_id = $7,
			contact_count = $8,
			updated_at = $9
		WHERE id = $1
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		nullString(lead.LinkedinURL),
		lead.AIScore,
		string(lead.EnrichmentStatus),
		lead.LastEnriched,
		lead.LastContactedAt,
		nullString(lead.LastContactedCampaignID),
		lead.ContactCount,
		lead.UpdatedAt,
	)
	return err
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.LeadProspect, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM lead_prospects WHERE id = $1`, id)
	return scanLead(row)
}

func (r *LeadRepository) FindByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.LeadProspect, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM lead_prospects WHERE email = $1 AND company_id = $2`,
		email, companyID)

	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return lead, err
}

func (r *LeadRepository) ListByCompany(ctx context.Context, companyID string) ([]*entity.LeadProspect, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+leadColumns+`
		 FROM lead_prospects
		 WHERE company_id = $1
		 ORDER BY ai_score DESC, created_at DESC`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeads(rows)
}

func (r *LeadRepository) ListTargets(ctx context.Context, companyIDs []string, excludeCampaignID string) ([]*entity.LeadProspect, error) {
	var rows *sql.Rows
	var err error

	if len(companyIDs) > 0 {
		rows, err = r.DB.QueryContext(ctx,
			`SELECT `+leadColumns+`
			 FROM lead_prospects
			 WHERE company_id = ANY($1)
			 AND (last_contacted_campaign_id IS NULL OR last_contacted_campaign_id <> $2)
			 ORDER BY ai_score DESC, created_at DESC`,
			pq.Array(companyIDs), excludeCampaignID)
	} else {
		rows, err = r.DB.QueryContext(ctx,
			`SELECT `+leadColumns+`
			 FROM lead_prospects
			 WHERE last_contacted_campaign_id IS NULL OR last_contacted_campaign_id <> $1
			 ORDER BY ai_score DESC, created_at DESC`,
			excludeCampaignID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeads(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.LeadProspect, error) {
	var lead entity.LeadProspect
	var linkedinURL, campaignID sql.NullString
	var lastEnriched, lastContactedAt sql.NullTime
	var dataSource, enrichmentStatus string

	err := row.Scan(
		&lead.ID,
		&lead.CompanyID,
		&lead.FirstName,
		&lead.LastName,
		&lead.Email,
		&lead.JobTitle,
		&linkedinURL,
		&dataSource,
		&lead.AIScore,
		&enrichmentStatus,
		&lastEnriched,
		&lastContactedAt,
		&campaignID,
		&lead.ContactCount,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.LinkedinURL = linkedinURL.String
	lead.LastContactedCampaignID = campaignID.String
	lead.DataSource = entity.DataSource(dataSource)
	lead.EnrichmentStatus = entity.EnrichmentStatus(enrichmentStatus)
	if lastEnriched.Valid {
		lead.LastEnriched = &lastEnriched.Time
	}
	if lastContactedAt.Valid {
		lead.LastContactedAt = &lastContactedAt.Time
	}

	return &lead, nil
}

func scanLeads(rows *sql.Rows) ([]*entity.LeadProspect, error) {
	var leads []*entity.LeadProspect
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
