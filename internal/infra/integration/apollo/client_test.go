package apollo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/serenelion/earthcare-network/internal/entity"
	"github.com/serenelion/earthcare-network/internal/infra/integration/apollo"
	"github.com/serenelion/earthcare-network/internal/usecase"
)

func TestDiscoverBuildsCandidatesFromDomain(t *testing.T) {
	client := apollo.NewClient("test-key")

	candidates, err := client.Discover(context.Background(), usecase.DiscoveryParams{
		CompanyDomain: "greentech.eco",
		CompanyName:   "GreenTech Solutions",
	})

	assert.NoError(t, err)
	assert.Len(t, candidates, 2)

	first := candidates[0]
	assert.Equal(t, "sarah.johnson@greentech.eco", first.Email)
	assert.Equal(t, entity.DataSourceApollo, first.DataSource)
	assert.Equal(t, 100, first.AIScore)
	assert.NotEmpty(t, first.LinkedinURL)
}

func TestDiscoverAppliesJobTitleFilter(t *testing.T) {
	client := apollo.NewClient("test-key")

	candidates, err := client.Discover(context.Background(), usecase.DiscoveryParams{
		CompanyDomain: "greentech.eco",
		JobTitles:     []string{"Founder"},
	})

	assert.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, "Michael Chen", candidates[0].FirstName+" "+candidates[0].LastName)
}
