package entity

import (
	"context"
)

// Company is a directory listing. The record is owned by the directory
// platform; this service only reads it to seed discovery and claim links.
type Company struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DomainURL    string `json:"domain_url"` // primary link, e.g. https://greentech.eco
	AddressCity  string `json:"address_city,omitempty"`
	AddressState string `json:"address_state,omitempty"`
	Claimed      bool   `json:"claimed"`
}

type CompanyRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*Company, error)
	ListUnclaimed(ctx context.Context) ([]*Company, error)
}
