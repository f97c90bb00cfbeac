package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/nitmir/check-opnsense/pkg/models/api"
	"github.com/nitmir/check-opnsense/pkg/models/domain"
)

var (
	// ErrInconsistentPayload means the API broke its own contract. The run is
	// aborted instead of producing a verdict.
	ErrInconsistentPayload = errors.New("inconsistent API payload")
	ErrUnknownMode         = errors.New("unknown check mode")
)

// UnrecognizedStatusError is returned when the firewall reports a health
// status outside the known vocabulary.
type UnrecognizedStatusError struct {
	Subsystem string
	Status    string
}

func (e *UnrecognizedStatusError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("no %s status reported", e.Subsystem)
	}
	return fmt.Sprintf("unrecognized %s status %q", e.Subsystem, e.Status)
}

// APIClient is the subset of the OPNsense client used by the checkers.
type APIClient interface {
	FirmwareStatus(ctx context.Context) (*api.FirmwareStatus, error)
	RefreshFirmwareStatus(ctx context.Context) (*api.FirmwareStatus, error)
	SystemStatus(ctx context.Context) (*api.SystemStatus, error)
	SearchServices(ctx context.Context) (*api.ServiceSearch, error)
}

// Checker runs one check mode and produces its verdict.
type Checker interface {
	Mode() domain.Mode
	Check(ctx context.Context) (*domain.Verdict, error)
}
