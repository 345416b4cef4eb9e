package usecase

import (
	"context"

	"github.com/serenelion/earthcare-network/internal/entity"
	"github.com/serenelion/earthcare-network/internal/infra/queue"
)

// ProspectSource is a single discovery vendor (Apollo, LinkedIn, Hunter...).
// Sources are queried in registration order; a failing source must not block
// the others.
type ProspectSource interface {
	Name() string
	Discover(ctx context.Context, params DiscoveryParams) ([]entity.ProspectCandidate, error)
}

// MailSender delivers one rendered email. Implementations: SMTP (gomail) for
// production, simulated sender with a failure hook for development and tests.
type MailSender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

type QueueProducerInterface interface {
	PublishLeadGeneration(ctx context.Context, payload queue.LeadGenerationPayload) error
}
