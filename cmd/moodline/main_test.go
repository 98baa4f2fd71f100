package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebtf/moodline/pkg/models"
)

func TestParseTimeFlag(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "empty", value: "", want: time.Time{}},
		{name: "rfc3339", value: "2026-03-10T09:30:00Z", want: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)},
		{name: "date", value: "2026-03-10", want: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{name: "invalid", value: "last tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimeFlag("from", tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSendPromptCommand(t *testing.T) {
	var got models.SendPromptRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sms/send-prompt", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Prompt sent","debug":{"status":201,"to":"+15551234567","messageSid":"SM1","messageStatus":"queued"}}`))
	}))
	defer server.Close()

	out, err := runCLI(t, "--api", server.URL, "send-prompt", "--to", "+15551234567", "--channel", "whatsapp")
	require.NoError(t, err)
	assert.Equal(t, "+15551234567", got.PhoneNumber)
	assert.Equal(t, "whatsapp", got.Channel)
	assert.Contains(t, out, `"messageSid": "SM1"`)
}

func TestEntriesListCommand_InvalidOrder(t *testing.T) {
	_, err := runCLI(t, "--api", "http://127.0.0.1:1", "entries", "list", "--order", "random")
	assert.Error(t, err)
}

func TestEntriesGetCommand_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"entry not found"}`))
	}))
	defer server.Close()

	_, err := runCLI(t, "--api", server.URL, "entries", "get", "abc")
	require.Error(t, err)
	assert.Equal(t, "entry abc not found", err.Error())
}
