package database

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/serenelion/earthcare-network/internal/entity"
)

const campaignColumns = `
	id, name, description, status, email_template, target_companies,
	emails_sent, emails_opened, emails_clicked, emails_replied,
	companies_claimed, trial_signups, start_date, end_date, executed_at,
	created_at, updated_at
`

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

func (r *CampaignRepository) Create(ctx context.Context, campaign *entity.EmailCampaign) error {
	query := `
		INSERT INTO email_campaigns (
			id, name, description, status, email_template, target_companies,
			emails_sent, emails_opened, emails_clicked, emails_replied,
			companies_claimed, trial_signups, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.DB.ExecContext(ctx, query,
		campaign.ID,
		campaign.Name,
		campaign.Description,
		string(campaign.Status),
		campaign.EmailTemplate,
		pq.Array(campaign.TargetCompanies),
		campaign.EmailsSent,
		campaign.EmailsOpened,
		campaign.EmailsClicked,
		campaign.EmailsReplied,
		campaign.CompaniesClaimed,
		campaign.TrialSignups,
		campaign.CreatedAt,
		campaign.UpdatedAt,
	)
	return err
}

func (r *CampaignRepository) Update(ctx context.Context, campaign *entity.EmailCampaign) error {
	query := `
		UPDATE email_campaigns
		SET status = $2,
			emails_sent = $3,
			emails_opened = $4,
			emails_clicked = $5,
			emails_replied = $6,
			companies_claimed = $7,
			trial_signups = $8,
			start_date = $9,
			end_date = $10,
			executed_at = $11,
			updated_at = $12
		WHERE id = $1
	`

	_, err := r.DB.ExecContext(ctx, query,
		campaign.ID,
		string(campaign.Status),
		campaign.EmailsSent,
		campaign.EmailsOpened,
		campaign.EmailsClicked,
		campaign.EmailsReplied,
		campaign.CompaniesClaimed,
		campaign.TrialSignups,
		campaign.StartDate,
		campaign.EndDate,
		campaign.ExecutedAt,
		campaign.UpdatedAt,
	)
	return err
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*entity.EmailCampaign, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+campaignColumns+` FROM email_campaigns WHERE id = $1`, id)
	return scanCampaign(row)
}

func (r *CampaignRepository) List(ctx context.Context, status entity.CampaignStatus) ([]*entity.EmailCampaign, error) {
	var rows *sql.Rows
	var err error

	if status != "" {
		rows, err = r.DB.QueryContext(ctx,
			`SELECT `+campaignColumns+`
			 FROM email_campaigns
			 WHERE status = $1
			 ORDER BY created_at DESC`,
			string(status))
	} else {
		rows, err = r.DB.QueryContext(ctx,
			`SELECT `+campaignColumns+`
			 FROM email_campaigns
			 ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*entity.EmailCampaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}
	return campaigns, rows.Err()
}

func scanCampaign(row rowScanner) (*entity.EmailCampaign, error) {
	var campaign entity.EmailCampaign
	var status string
	var targetCompanies pq.StringArray
	var startDate, endDate, executedAt sql.NullTime

	err := row.Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.Description,
		&status,
		&campaign.EmailTemplate,
		&targetCompanies,
		&campaign.EmailsSent,
		&campaign.EmailsOpened,
		&campaign.EmailsClicked,
		&campaign.EmailsReplied,
		&campaign.CompaniesClaimed,
		&campaign.TrialSignups,
		&startDate,
		&endDate,
		&executedAt,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	campaign.Status = entity.CampaignStatus(status)
	campaign.TargetCompanies = targetCompanies
	if startDate.Valid {
		campaign.StartDate = &startDate.Time
	}
	if endDate.Valid {
		campaign.EndDate = &endDate.Time
	}
	if executedAt.Valid {
		campaign.ExecutedAt = &executedAt.Time
	}

	return &campaign, nil
}
