// Package testutil provides shared helpers for integration tests.
// Helpers in this package skip automatically when required environment
// variables are not set, so unit tests can run without live spreadsheet
// access.
package testutil

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ropiclub/attendance/internal/sheets"
)

// NewGateway opens a sheets.Gateway against the spreadsheet specified by
// the TEST_SPREADSHEET_ID environment variable, authenticating with
// GOOGLE_CREDENTIALS_JSON or the key file named by TEST_CREDENTIALS_FILE.
//
// The test is skipped automatically if TEST_SPREADSHEET_ID is not set, so
// integration tests are opt-in and never break CI environments without
// spreadsheet access. Point it at a throwaway worksheet: the round-trip
// test appends rows.
func NewGateway(t *testing.T) *sheets.Gateway {
	t.Helper()

	id := os.Getenv("TEST_SPREADSHEET_ID")
	if id == "" {
		t.Skip("TEST_SPREADSHEET_ID not set; skipping integration test")
	}

	worksheet := os.Getenv("TEST_WORKSHEET")
	if worksheet == "" {
		worksheet = "AttendanceTest"
	}

	// Short TTLs so repeated test runs do not serve each other stale reads.
	return sheets.Open(sheets.Config{
		SpreadsheetID:   id,
		Worksheet:       worksheet,
		CounterCell:     "E2",
		CredentialsJSON: os.Getenv("GOOGLE_CREDENTIALS_JSON"),
		CredentialsFile: credentialsFile(),
		HandleTTL:       time.Minute,
		CounterTTL:      time.Second,
	}, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func credentialsFile() string {
	if f := os.Getenv("TEST_CREDENTIALS_FILE"); f != "" {
		return f
	}
	return "credentials.json"
}
