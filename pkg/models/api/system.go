package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// SystemEntryName is the key of the overall system health entry.
const SystemEntryName = "System"

// Subsystem is one entry of core/system/status.
type Subsystem struct {
	Name    string
	Status  string
	Message *string
}

// SystemStatus is the payload of core/system/status. Entries keep the order
// in which the firewall reported them.
type SystemStatus struct {
	Entries []Subsystem
}

// Lookup returns the entry with the given name.
func (s SystemStatus) Lookup(name string) (Subsystem, bool) {
	for _, e := range s.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Subsystem{}, false
}

type subsystemJSON struct {
	Status  json.RawMessage `json:"status"`
	Message json.RawMessage `json:"message"`
}

// UnmarshalJSON walks the top-level object in order. Values that are not
// objects are skipped. A status that is not a string keeps its JSON text so
// it can never pass for a known status. A message that is not a string is
// treated as absent.
func (s *SystemStatus) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("system status: expected a JSON object")
	}

	s.Entries = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("system status: unexpected key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("system status: entry %q: %w", name, err)
		}
		if !isObject(raw) {
			continue
		}

		var entry subsystemJSON
		if err := json.Unmarshal(raw, &entry); err != nil {
			return fmt.Errorf("system status: entry %q: %w", name, err)
		}
		s.Entries = append(s.Entries, Subsystem{
			Name:    name,
			Status:  statusText(entry.Status),
			Message: stringValue(entry.Message),
		})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func stringValue(raw json.RawMessage) *string {
	var v string
	if len(raw) == 0 || raw[0] != '"' || json.Unmarshal(raw, &v) != nil {
		return nil
	}
	return &v
}

func statusText(raw json.RawMessage) string {
	if v := stringValue(raw); v != nil {
		return *v
	}
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	return string(raw)
}
