package check

import (
	"context"
	"strings"

	"github.com/nitmir/check-opnsense/pkg/models/api"
	"github.com/nitmir/check-opnsense/pkg/models/domain"
)

const subsystemStatusOK = "OK"

var systemSeverities = map[string]domain.Severity{
	"OK":      domain.SeverityOK,
	"Notice":  domain.SeverityOK,
	"Warning": domain.SeverityWarning,
	"Error":   domain.SeverityCritical,
}

type SystemChecker struct {
	client APIClient
}

func NewSystemChecker(client APIClient) Checker {
	return &SystemChecker{client: client}
}

func (c *SystemChecker) Mode() domain.Mode {
	return domain.ModeSystem
}

func (c *SystemChecker) Check(ctx context.Context) (*domain.Verdict, error) {
	status, err := c.client.SystemStatus(ctx)
	if err != nil {
		return nil, err
	}
	return ClassifySystem(*status)
}

// SystemSeverity maps an OPNsense health status onto a severity. Statuses
// outside the known set are an error, never OK.
func SystemSeverity(status string) (domain.Severity, error) {
	severity, ok := systemSeverities[status]
	if !ok {
		return domain.SeverityUnknown, &UnrecognizedStatusError{Subsystem: api.SystemEntryName, Status: status}
	}
	return severity, nil
}

// ClassifySystem takes the severity from the System entry alone, while the
// message collects every entry that is not OK.
func ClassifySystem(status api.SystemStatus) (*domain.Verdict, error) {
	system, ok := status.Lookup(api.SystemEntryName)
	if !ok {
		return nil, &UnrecognizedStatusError{Subsystem: api.SystemEntryName, Status: ""}
	}

	severity, err := SystemSeverity(system.Status)
	if err != nil {
		return nil, err
	}

	verdict := domain.NewVerdict()
	if system.Status == subsystemStatusOK {
		verdict.Set(severity, "No problems were detected.")
		return verdict, nil
	}

	var messages []string
	for _, entry := range status.Entries {
		if entry.Status != subsystemStatusOK && entry.Message != nil {
			messages = append(messages, *entry.Message)
		}
	}
	verdict.Set(severity, strings.Join(messages, ", "))
	return verdict, nil
}
