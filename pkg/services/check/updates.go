package check

import (
	"context"

	"github.com/nitmir/check-opnsense/pkg/models/api"
	"github.com/nitmir/check-opnsense/pkg/models/domain"
	"github.com/rs/zerolog"
)

const firmwareStatusNone = "none"

type UpdatesChecker struct {
	client APIClient
}

func NewUpdatesChecker(client APIClient) Checker {
	return &UpdatesChecker{client: client}
}

func (c *UpdatesChecker) Mode() domain.Mode {
	return domain.ModeUpdates
}

// Check reads the firmware status and, when the firewall has no cached
// update information, triggers one refresh. A second "none" is classified as is.
func (c *UpdatesChecker) Check(ctx context.Context) (*domain.Verdict, error) {
	status, err := c.client.FirmwareStatus(ctx)
	if err != nil {
		return nil, err
	}

	if status.Status == firmwareStatusNone {
		zerolog.Ctx(ctx).Debug().Msg("no cached update information, triggering firmware check")
		status, err = c.client.RefreshFirmwareStatus(ctx)
		if err != nil {
			return nil, err
		}
	}

	return ClassifyUpdates(*status), nil
}

// ClassifyUpdates maps a firmware status onto a verdict.
func ClassifyUpdates(status api.FirmwareStatus) *domain.Verdict {
	verdict := domain.NewVerdict()

	hasUpdate := status.Status == "update" || status.Status == "upgrade"
	if !hasUpdate {
		verdict.Set(domain.SeverityOK, "System up to date")
		return verdict
	}

	verdict.Set(domain.SeverityWarning, status.StatusMsg)
	if status.NeedsReboot() {
		verdict.Severity = domain.SeverityCritical
	}
	return verdict
}
