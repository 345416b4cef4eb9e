// Package hunter simulates a Hunter.io domain search. Hunter finds emails but
// no profile links, so its candidates come back without a LinkedIn URL and
// get one guessed during enrichment.
package hunter

import (
	"context"
	"fmt"
	"log"

	"github.com/serenelion/earthcare-network/internal/entity"
	"github.com/serenelion/earthcare-network/internal/usecase"
)

type Client struct {
	apiKey string
}

func NewClient(apiKey string) *Client {
	return &Client{apiKey: apiKey}
}

func (c *Client) Name() string {
	return "hunter"
}

func (c *Client) Discover(ctx context.Context, params usecase.DiscoveryParams) ([]entity.ProspectCandidate, error) {
	log.Printf("hunter: discovering leads for %s", params.CompanyDomain)

	return []entity.ProspectCandidate{
		{
			FirstName:  "Emma",
			LastName:   "Thompson",
			Email:      fmt.Sprintf("emma.thompson@%s", params.CompanyDomain),
			JobTitle:   "Marketing Director",
			DataSource: entity.DataSourceHunter,
			AIScore:    usecase.CalculateScore("Marketing Director", params.CompanyName),
		},
	}, nil
}
