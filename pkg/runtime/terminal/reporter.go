package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/nitmir/check-opnsense/pkg/models/domain"
)

const (
	// ExitUsage is returned for argument errors and aborted checks.
	ExitUsage = 3
	// ExitEnvironment is returned when the verdict could not be delivered.
	ExitEnvironment = 255
)

// Reporter writes the verdict line consumed by the monitoring supervisor
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a reporter writing to writer, stdout when nil
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

// Report prints the verdict and returns the exit code the process must end
// with. The caller exits right away so the verdict is never changed afterwards.
func (r *Reporter) Report(verdict *domain.Verdict) (int, error) {
	if _, err := fmt.Fprintln(r.writer, verdict.Line()); err != nil {
		return ExitEnvironment, &reportError{err: err}
	}
	return verdict.Severity.ExitCode(), nil
}

type reportError struct {
	err error
}

func (e *reportError) Error() string {
	return fmt.Sprintf("failed to write check result: %v", e.err)
}

func (e *reportError) Unwrap() error {
	return e.err
}
