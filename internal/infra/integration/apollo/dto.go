package apollo

import (
	"fmt"
	"strings"

	"github.com/serenelion/earthcare-network/internal/entity"
	"github.com/serenelion/earthcare-network/internal/usecase"
)

// personResponse mirrors the relevant slice of Apollo's people-search payload.
type personResponse struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Title       string `json:"title"`
	LinkedinURL string `json:"linkedin_url"`
}

func (p personResponse) toCandidate(params usecase.DiscoveryParams) entity.ProspectCandidate {
	email := fmt.Sprintf("%s.%s@%s",
		strings.ToLower(p.FirstName),
		strings.ToLower(p.LastName),
		params.CompanyDomain,
	)

	return entity.ProspectCandidate{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       email,
		JobTitle:    p.Title,
		LinkedinURL: p.LinkedinURL,
		DataSource:  entity.DataSourceApollo,
		AIScore:     usecase.CalculateScore(p.Title, params.CompanyName),
	}
}
