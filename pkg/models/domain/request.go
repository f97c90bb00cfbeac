package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Mode string

const (
	ModeUpdates  Mode = "updates"
	ModeServices Mode = "services"
	ModeSystem   Mode = "system"
)

// Modes lists the supported check modes in display order.
func Modes() []Mode {
	return []Mode{ModeUpdates, ModeServices, ModeSystem}
}

// ParseMode accepts exactly one of the supported mode names.
func ParseMode(raw string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == raw {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid mode %q, choose from %s", raw, strings.Join(modeNames(), ", "))
}

func modeNames() []string {
	names := make([]string, 0, len(Modes()))
	for _, m := range Modes() {
		names = append(names, string(m))
	}
	return names
}

// CheckRequest holds everything needed to run one check against one firewall.
type CheckRequest struct {
	Hostname  string
	Port      int
	APIKey    string
	APISecret string
	TLSVerify bool
	Mode      Mode

	// Thresholds are accepted on the command line but not evaluated by any mode yet.
	Warning  *float64
	Critical *float64
}

// Validate reports every missing or out of range field at once.
func (r CheckRequest) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Hostname) == "" {
		errs = append(errs, errors.New("hostname is required"))
	}
	if r.Port < 1 || r.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range", r.Port))
	}
	if r.APIKey == "" {
		errs = append(errs, errors.New("api key is required"))
	}
	if r.APISecret == "" {
		errs = append(errs, errors.New("api secret is required"))
	}
	if _, err := ParseMode(string(r.Mode)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
