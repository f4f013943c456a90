package services

import (
	"context"
	"errors"

	"github.com/nimbusdesk/nimbusdesk/modules/core/domain/entities/customdomain"
	"github.com/nimbusdesk/nimbusdesk/modules/core/domain/entities/workspace"
	"github.com/nimbusdesk/nimbusdesk/modules/core/infrastructure/persistence"
	"github.com/nimbusdesk/nimbusdesk/pkg/eventbus"
	"github.com/nimbusdesk/nimbusdesk/pkg/exceptions"
)

// ReconcileOutcome classifies what a webhook delivery did, so callers and
// tests can distinguish converging writes from no-ops and absorbed failures.
type ReconcileOutcome int

const (
	ReconcileNoop ReconcileOutcome = iota
	ReconcileApplied
	ReconcileCleared
	ReconcileAbsorbed
)

func (o ReconcileOutcome) String() string {
	switch o {
	case ReconcileApplied:
		return "applied"
	case ReconcileCleared:
		return "cleared"
	case ReconcileAbsorbed:
		return "absorbed"
	default:
		return "noop"
	}
}

// CustomDomainService reconciles upstream DNS validation state with the
// workspace record owning a hostname. Reconciliation is idempotent: repeated
// identical deliveries produce zero writes, and every failure past
// authentication is absorbed so the webhook sender never retries forever.
type CustomDomainService struct {
	repo      workspace.Repository
	validator customdomain.Validator
	publisher eventbus.EventBus
	reporter  exceptions.Reporter
}

func NewCustomDomainService(
	repo workspace.Repository,
	validator customdomain.Validator,
	publisher eventbus.EventBus,
	reporter exceptions.Reporter,
) *CustomDomainService {
	return &CustomDomainService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		reporter:  reporter,
	}
}

// Reconcile recomputes the custom-domain state for the reported hostname.
// The returned error is the absorbed cause when the outcome is
// ReconcileAbsorbed; it is informational and must not fail the delivery.
func (s *CustomDomainService) Reconcile(ctx context.Context, hostname string) (ReconcileOutcome, error) {
	if hostname == "" {
		return ReconcileNoop, nil
	}

	ws, err := s.repo.GetByCustomDomain(ctx, hostname)
	if err != nil {
		if errors.Is(err, persistence.ErrWorkspaceNotFound) {
			// Hostname not yet, or no longer, claimed by any workspace.
			return ReconcileNoop, nil
		}
		return s.absorb(ctx, err)
	}

	details, err := s.validator.GetCustomDomainDetails(ctx, hostname)
	if err != nil {
		return s.absorb(ctx, err)
	}

	if details == nil {
		// Upstream no longer recognizes the hostname.
		if ws.CustomDomain() != hostname {
			return ReconcileNoop, nil
		}
		ws.ClearCustomDomain()
		if _, err := s.repo.Update(ctx, ws); err != nil {
			return s.absorb(ctx, err)
		}
		s.publisher.Publish(workspace.NewCustomDomainClearedEvent(ws, hostname))
		return ReconcileCleared, nil
	}

	working := details.Working()
	if working == ws.IsCustomDomainEnabled() {
		return ReconcileNoop, nil
	}

	ws.SetCustomDomain(hostname, working)
	if _, err := s.repo.Update(ctx, ws); err != nil {
		return s.absorb(ctx, err)
	}
	s.publisher.Publish(workspace.NewCustomDomainUpdatedEvent(ws, hostname, working))
	return ReconcileApplied, nil
}

func (s *CustomDomainService) absorb(ctx context.Context, err error) (ReconcileOutcome, error) {
	if s.reporter != nil {
		s.reporter.Capture(ctx, err)
	}
	return ReconcileAbsorbed, err
}
