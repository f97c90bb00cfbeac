package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/nitmir/check-opnsense/pkg/models/api"
	"github.com/nitmir/check-opnsense/pkg/models/domain"
)

type ServicesChecker struct {
	client APIClient
}

func NewServicesChecker(client APIClient) Checker {
	return &ServicesChecker{client: client}
}

func (c *ServicesChecker) Mode() domain.Mode {
	return domain.ModeServices
}

func (c *ServicesChecker) Check(ctx context.Context) (*domain.Verdict, error) {
	search, err := c.client.SearchServices(ctx)
	if err != nil {
		return nil, err
	}
	return ClassifyServices(*search)
}

// ClassifyServices warns about every service that is not running and reports
// the running count as perfdata.
func ClassifyServices(search api.ServiceSearch) (*domain.Verdict, error) {
	var running, notRunning []string
	for _, row := range search.Rows {
		if row.Running == 1 {
			running = append(running, row.Name)
		} else {
			notRunning = append(notRunning, row.Name)
		}
	}

	if len(running)+len(notRunning) != search.Total {
		return nil, fmt.Errorf("%w: %d service rows but total is %d",
			ErrInconsistentPayload, len(running)+len(notRunning), search.Total)
	}

	verdict := domain.NewVerdict()
	verdict.AddMetric(domain.PerfMetric{
		Label: "running",
		Value: float64(len(running)),
		Min:   domain.Float(0),
		Max:   domain.Float(float64(search.Total)),
	})

	if len(notRunning) > 0 {
		verdict.Set(domain.SeverityWarning, "Services not running: "+strings.Join(notRunning, ", "))
		return verdict, nil
	}

	verdict.Set(domain.SeverityOK, "All services are running")
	return verdict, nil
}
