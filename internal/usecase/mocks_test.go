package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/serenelion/earthcare-network/internal/entity"
	"github.com/serenelion/earthcare-network/internal/infra/queue"
	"github.com/serenelion/earthcare-network/internal/usecase"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.LeadProspect) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.LeadProspect) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.LeadProspect, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeadProspect), args.Error(1)
}

func (m *MockLeadRepository) FindByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.LeadProspect, error) {
	args := m.Called(ctx, email, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeadProspect), args.Error(1)
}

func (m *MockLeadRepository) ListByCompany(ctx context.Context, companyID string) ([]*entity.LeadProspect, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.LeadProspect), args.Error(1)
}

func (m *MockLeadRepository) ListTargets(ctx context.Context, companyIDs []string, excludeCampaignID string) ([]*entity.LeadProspect, error) {
	args := m.Called(ctx, companyIDs, excludeCampaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.LeadProspect), args.Error(1)
}

// MockCampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, campaign *entity.EmailCampaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) Update(ctx context.Context, campaign *entity.EmailCampaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id string) (*entity.EmailCampaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.EmailCampaign), args.Error(1)
}

func (m *MockCampaignRepository) List(ctx context.Context, status entity.CampaignStatus) ([]*entity.EmailCampaign, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.EmailCampaign), args.Error(1)
}

// MockCompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListUnclaimed(ctx context.Context) ([]*entity.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Company), args.Error(1)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadGeneration(ctx context.Context, payload queue.LeadGenerationPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// stubSource is a hand-rolled ProspectSource with canned output; err makes
// Discover fail to exercise partial source failure.
type stubSource struct {
	name       string
	candidates []entity.ProspectCandidate
	err        error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Discover(ctx context.Context, params usecase.DiscoveryParams) ([]entity.ProspectCandidate, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}
