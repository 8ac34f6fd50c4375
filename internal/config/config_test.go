package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ropiclub/attendance/internal/config"
	"github.com/ropiclub/attendance/internal/domain"
)

// clearOptional blanks every optional variable so defaults apply.
func clearOptional(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "CORS_ORIGINS", "WORKSHEET", "COUNTER_CELL",
		"GOOGLE_CREDENTIALS_JSON", "GOOGLE_CREDENTIALS_FILE", "ROSTER",
		"EVENT_WEEKDAY", "TIMEZONE", "PAST_DATES", "FUTURE_DATES",
		"CONNECTION_TTL", "COUNTER_TTL", "SESSION_TTL",
	} {
		t.Setenv(key, "")
	}
}

// TestLoad_defaults verifies that optional env vars fall back to their
// defaults when only the required SPREADSHEET_ID is provided.
func TestLoad_defaults(t *testing.T) {
	clearOptional(t)
	t.Setenv("SPREADSHEET_ID", "1AbCdEf")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, "1AbCdEf", cfg.SpreadsheetID)
	require.Equal(t, "Attendance", cfg.Worksheet)
	require.Equal(t, "E2", cfg.CounterCell)
	require.Equal(t, "credentials.json", cfg.CredentialsFile)
	require.Equal(t, domain.DefaultRoster(), cfg.Roster)
	require.Equal(t, time.Tuesday, cfg.EventWeekday)
	require.Equal(t, "Europe/Budapest", cfg.Location.String())
	require.Equal(t, 8, cfg.PastDates)
	require.Equal(t, 2, cfg.FutureDates)
	require.Equal(t, time.Hour, cfg.ConnectionTTL)
	require.Equal(t, 5*time.Minute, cfg.CounterTTL)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearOptional(t)
	t.Setenv("SPREADSHEET_ID", "1AbCdEf")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("WORKSHEET", "Sheet1")
	t.Setenv("COUNTER_CELL", "B1")
	t.Setenv("ROSTER", "Ada, Grace ,Linus")
	t.Setenv("EVENT_WEEKDAY", "thursday")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("PAST_DATES", "4")
	t.Setenv("FUTURE_DATES", "1")
	t.Setenv("CONNECTION_TTL", "10m")
	t.Setenv("COUNTER_TTL", "30s")
	t.Setenv("SESSION_TTL", "1h")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, "Sheet1", cfg.Worksheet)
	require.Equal(t, "B1", cfg.CounterCell)
	require.Equal(t, domain.Roster{"Ada", "Grace", "Linus"}, cfg.Roster)
	require.Equal(t, time.Thursday, cfg.EventWeekday)
	require.Equal(t, "UTC", cfg.Location.String())
	require.Equal(t, 4, cfg.PastDates)
	require.Equal(t, 1, cfg.FutureDates)
	require.Equal(t, 10*time.Minute, cfg.ConnectionTTL)
	require.Equal(t, 30*time.Second, cfg.CounterTTL)
	require.Equal(t, time.Hour, cfg.SessionTTL)
}

// TestLoad_missingRequired verifies that an error is returned when
// SPREADSHEET_ID is not set, and that the error names the variable.
func TestLoad_missingRequired(t *testing.T) {
	clearOptional(t)
	t.Setenv("SPREADSHEET_ID", "")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "SPREADSHEET_ID")
}

// TestLoad_rejectsMalformedValues covers the parse errors one by one.
func TestLoad_rejectsMalformedValues(t *testing.T) {
	cases := []struct {
		key, value, wantInError string
	}{
		{"EVENT_WEEKDAY", "Someday", "EVENT_WEEKDAY"},
		{"TIMEZONE", "Mars/Olympus", "TIMEZONE"},
		{"PAST_DATES", "eight", "PAST_DATES"},
		{"COUNTER_TTL", "5 minutes", "COUNTER_TTL"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			clearOptional(t)
			t.Setenv("SPREADSHEET_ID", "1AbCdEf")
			t.Setenv(tc.key, tc.value)

			_, err := config.Load()

			require.Error(t, err)
			require.ErrorContains(t, err, tc.wantInError)
		})
	}
}
