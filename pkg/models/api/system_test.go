package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemStatus_UnmarshalJSON(t *testing.T) {
	payload := `{
		"System": {"status": "Warning", "message": "degraded"},
		"metadata": "2024-01-01",
		"Firewall": {"status": "OK"},
		"CrashReporter": {"status": "Error", "message": "crash", "timestamp": 1700000000}
	}`

	var status SystemStatus
	require.NoError(t, json.Unmarshal([]byte(payload), &status))

	require.Len(t, status.Entries, 3)
	assert.Equal(t, "System", status.Entries[0].Name)
	assert.Equal(t, "Warning", status.Entries[0].Status)
	require.NotNil(t, status.Entries[0].Message)
	assert.Equal(t, "degraded", *status.Entries[0].Message)

	assert.Equal(t, "Firewall", status.Entries[1].Name)
	assert.Nil(t, status.Entries[1].Message)

	assert.Equal(t, "CrashReporter", status.Entries[2].Name)

	system, ok := status.Lookup("System")
	assert.True(t, ok)
	assert.Equal(t, "Warning", system.Status)

	_, ok = status.Lookup("Gateways")
	assert.False(t, ok)
}

func TestSystemStatus_UnmarshalJSON_LooseEntries(t *testing.T) {
	var status SystemStatus
	require.NoError(t, json.Unmarshal([]byte(`{"metadata":{"status":2,"count":1},"System":{"status":"OK"}}`), &status))

	require.Len(t, status.Entries, 2)
	assert.Equal(t, Subsystem{Name: "metadata", Status: "2"}, status.Entries[0])
	assert.Equal(t, Subsystem{Name: "System", Status: "OK"}, status.Entries[1])

	payload := `{
		"Firewall": {"status": null, "message": {"text": "rules"}},
		"Disk": {"message": 42},
		"System": {"status": 1, "message": "degraded"}
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &status))

	require.Len(t, status.Entries, 3)
	assert.Equal(t, Subsystem{Name: "Firewall", Status: ""}, status.Entries[0])
	assert.Equal(t, Subsystem{Name: "Disk", Status: ""}, status.Entries[1])
	assert.Equal(t, "1", status.Entries[2].Status)
	require.NotNil(t, status.Entries[2].Message)
	assert.Equal(t, "degraded", *status.Entries[2].Message)
}

func TestSystemStatus_UnmarshalJSON_Invalid(t *testing.T) {
	for _, payload := range []string{`[]`, `"ok"`, `{"System": `, `{"System": {"status": }}`} {
		var status SystemStatus
		assert.Error(t, json.Unmarshal([]byte(payload), &status), payload)
	}
}

func TestFirmwareStatus_NeedsReboot(t *testing.T) {
	tests := []struct {
		payload string
		want    bool
	}{
		{`{"status":"update","status_reboot":"1"}`, true},
		{`{"status":"update","status_reboot":"0"}`, false},
		{`{"status":"update","status_reboot":1}`, false},
		{`{"status":"update","status_reboot":null}`, false},
		{`{"status":"update"}`, false},
	}

	for _, tt := range tests {
		var status FirmwareStatus
		require.NoError(t, json.Unmarshal([]byte(tt.payload), &status))
		assert.Equal(t, tt.want, status.NeedsReboot(), tt.payload)
	}
}
