package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/nitmir/check-opnsense/pkg/client/opnsense"
	"github.com/nitmir/check-opnsense/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Controller selects the checker for a mode and turns its outcome into a
// verdict.
type Controller struct {
	registry Registry
	client   APIClient
}

func NewController(registry Registry, client APIClient) *Controller {
	return &Controller{
		registry: registry,
		client:   client,
	}
}

// Run executes exactly one check. Classified failures become UNKNOWN (or
// CRITICAL for an unsupported request method) verdicts. Any other error,
// ErrInconsistentPayload included, is returned and no verdict is produced.
func (ctrl *Controller) Run(ctx context.Context, mode domain.Mode) (*domain.Verdict, error) {
	logger := zerolog.Ctx(ctx)

	checker, err := ctrl.registry.Create(mode, ctrl.client)
	if err != nil {
		if errors.Is(err, ErrUnknownMode) {
			verdict := domain.NewVerdict()
			verdict.Set(domain.SeverityUnknown, fmt.Sprintf("Check mode '%s' not known", mode))
			return verdict, nil
		}
		return nil, err
	}

	logger.Debug().Str("mode", string(checker.Mode())).Msg("running check")

	verdict, err := checker.Check(ctx)
	if err == nil {
		return verdict, nil
	}

	var reqErr *opnsense.RequestError
	if errors.As(err, &reqErr) {
		verdict := domain.NewVerdict()
		severity := domain.SeverityUnknown
		if reqErr.Kind == opnsense.KindMethod {
			severity = domain.SeverityCritical
		}
		verdict.Set(severity, reqErr.Error())
		return verdict, nil
	}

	var statusErr *UnrecognizedStatusError
	if errors.As(err, &statusErr) {
		verdict := domain.NewVerdict()
		verdict.Set(domain.SeverityUnknown, statusErr.Error())
		return verdict, nil
	}

	return nil, fmt.Errorf("%s check aborted: %w", checker.Mode(), err)
}
