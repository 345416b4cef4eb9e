package database

import (
	"context"
	"database/sql"

	"github.com/serenelion/earthcare-network/internal/entity"
)

// CompanyRepository reads directory listings owned by the platform. This
// service never writes companies.
type CompanyRepository struct {
	DB *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	var company entity.Company
	var domainURL, city, state sql.NullString

	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, domain_url, address_city, address_state, claimed
		 FROM companies WHERE id = $1`,
		id,
	).Scan(&company.ID, &company.Name, &domainURL, &city, &state, &company.Claimed)
	if err != nil {
		return nil, err
	}

	company.DomainURL = domainURL.String
	company.AddressCity = city.String
	company.AddressState = state.String

	return &company, nil
}

func (r *CompanyRepository) ListUnclaimed(ctx context.Context) ([]*entity.Company, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, domain_url, address_city, address_state, claimed
		 FROM companies
		 WHERE claimed = FALSE
		 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*entity.Company
	for rows.Next() {
		var company entity.Company
		var domainURL, city, state sql.NullString

		if err := rows.Scan(&company.ID, &company.Name, &domainURL, &city, &state, &company.Claimed); err != nil {
			return nil, err
		}

		company.DomainURL = domainURL.String
		company.AddressCity = city.String
		company.AddressState = state.String
		companies = append(companies, &company)
	}
	return companies, rows.Err()
}
