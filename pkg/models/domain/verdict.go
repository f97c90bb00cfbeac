package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PerfMetric is a single performance data entry appended to the check output.
type PerfMetric struct {
	Label string
	Value float64
	Warn  *float64
	Crit  *float64
	Min   *float64
	Max   *float64
}

// String renders the metric as 'label'=value;warn;crit;min;max.
func (m PerfMetric) String() string {
	return fmt.Sprintf("'%s'=%s;%s;%s;%s;%s",
		m.Label,
		formatFloat(m.Value),
		formatOptional(m.Warn),
		formatOptional(m.Crit),
		formatOptional(m.Min),
		formatOptional(m.Max))
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Float returns a pointer to v, for the optional PerfMetric fields.
func Float(v float64) *float64 {
	return &v
}

// Verdict is the result of a single check run.
type Verdict struct {
	Severity Severity
	Message  string
	Metrics  []PerfMetric
}

// NewVerdict returns an empty verdict in the UNKNOWN state.
func NewVerdict() *Verdict {
	return &Verdict{Severity: SeverityUnknown}
}

// Set replaces the severity and message.
func (v *Verdict) Set(severity Severity, message string) {
	v.Severity = severity
	v.Message = message
}

func (v *Verdict) AddMetric(m PerfMetric) {
	v.Metrics = append(v.Metrics, m)
}

// PerfData returns the perfdata suffix, "" when there are no metrics.
func (v *Verdict) PerfData() string {
	if len(v.Metrics) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(v.Metrics))
	for _, m := range v.Metrics {
		rendered = append(rendered, m.String())
	}
	return "|" + strings.Join(rendered, " ")
}

// Line is the single output line consumed by the monitoring supervisor.
func (v *Verdict) Line() string {
	return fmt.Sprintf("%s - %s%s", v.Severity, v.Message, v.PerfData())
}
