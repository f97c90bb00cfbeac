package api

import "encoding/json"

// FirmwareStatus is the payload of core/firmware/status.
type FirmwareStatus struct {
	Status    string `json:"status"`
	StatusMsg string `json:"status_msg"`

	// StatusReboot is "1" when the pending update requires a reboot. Older
	// firmware versions omit it or send other JSON types, so it is kept raw.
	StatusReboot json.RawMessage `json:"status_reboot,omitempty"`
}

// NeedsReboot is true only for the JSON string "1".
func (f FirmwareStatus) NeedsReboot() bool {
	if len(f.StatusReboot) == 0 {
		return false
	}
	var s string
	if err := json.Unmarshal(f.StatusReboot, &s); err != nil {
		return false
	}
	return s == "1"
}
