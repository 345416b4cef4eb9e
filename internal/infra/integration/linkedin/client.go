// Package linkedin simulates a LinkedIn Sales Navigator people search.
package linkedin

import (
	"context"
	"fmt"
	"log"

	"github.com/serenelion/earthcare-network/internal/entity"
	"github.com/serenelion/earthcare-network/internal/usecase"
)

type Client struct{}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) Name() string {
	return "linkedin"
}

func (c *Client) Discover(ctx context.Context, params usecase.DiscoveryParams) ([]entity.ProspectCandidate, error) {
	log.Printf("linkedin: discovering leads for %s", params.CompanyDomain)

	return []entity.ProspectCandidate{
		{
			FirstName:   "Alex",
			LastName:    "Rodriguez",
			Email:       fmt.Sprintf("alex.rodriguez@%s", params.CompanyDomain),
			JobTitle:    "Operations Manager",
			LinkedinURL: "https://linkedin.com/in/alexrodriguez",
			DataSource:  entity.DataSourceLinkedIn,
			AIScore:     usecase.CalculateScore("Operations Manager", params.CompanyName),
		},
	}, nil
}
