package domain

// Severity is the outcome of a check as understood by monitoring supervisors.
// The numeric value is the process exit code.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityCritical
	SeverityUnknown
)

var severityNames = map[Severity]string{
	SeverityOK:       "OK",
	SeverityWarning:  "WARNING",
	SeverityCritical: "CRITICAL",
	SeverityUnknown:  "UNKNOWN",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ExitCode returns the plugin exit status for the severity.
func (s Severity) ExitCode() int {
	if _, ok := severityNames[s]; !ok {
		return int(SeverityUnknown)
	}
	return int(s)
}
