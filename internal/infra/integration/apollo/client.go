// Package apollo simulates the Apollo.io people-search API. The client keeps
// the shape of a real vendor integration (request DTOs, response mapping) so
// swapping in the live API later only touches this package.
package apollo

import (
	"context"
	"log"
	"strings"

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
	return "apollo"
}

// Discover returns the simulated Apollo result set for the company domain.
// Apollo applies the requested job-title filter to its own output, matching
// the vendor's server-side filtering.
func (c *Client) Discover(ctx context.Context, params usecase.DiscoveryParams) ([]entity.ProspectCandidate, error) {
	log.Printf("apollo: discovering leads for %s", params.CompanyDomain)

	people := []personResponse{
		{
			FirstName:   "Sarah",
			LastName:    "Johnson",
			Title:       "CEO",
			LinkedinURL: "https://linkedin.com/in/sarahjohnson",
		},
		{
			FirstName:   "Michael",
			LastName:    "Chen",
			Title:       "Founder",
			LinkedinURL: "https://linkedin.com/in/michaelchen",
		},
	}

	candidates := make([]entity.ProspectCandidate, 0, len(people))
	for _, person := range people {
		if !matchesTitles(person.Title, params.JobTitles) {
			continue
		}
		candidates = append(candidates, person.toCandidate(params))
	}

	return candidates, nil
}

func matchesTitles(title string, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	lower := strings.ToLower(title)
	for _, want := range wanted {
		if strings.Contains(lower, strings.ToLower(want)) {
			return true
		}
	}
	return false
}
