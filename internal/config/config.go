// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ropiclub/attendance/internal/domain"
)

// Config holds all configuration values for the attendance server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// SpreadsheetID identifies the backing spreadsheet. Required.
	SpreadsheetID string

	// Worksheet is the tab holding the append log. Defaults to "Attendance".
	Worksheet string

	// CounterCell is the A1 reference of the headcount cell. Defaults to "E2".
	CounterCell string

	// CredentialsJSON is the inline service-account key, usually injected
	// by the deployment's secret store. Optional.
	CredentialsJSON string

	// CredentialsFile is the local key file used when CredentialsJSON is
	// empty. Defaults to "credentials.json".
	CredentialsFile string

	// Roster is the ordered member list. Set ROSTER to a comma-separated
	// list to override the built-in one.
	Roster domain.Roster

	// EventWeekday is the weekly occasion's day. Defaults to Tuesday.
	EventWeekday time.Weekday

	// Location is the club's time zone, parsed from TIMEZONE.
	// Defaults to Europe/Budapest.
	Location *time.Location

	// PastDates and FutureDates size the selectable date window.
	// Defaults: 8 past (anchor included), 2 future.
	PastDates   int
	FutureDates int

	// ConnectionTTL bounds reuse of the spreadsheet connection (1 h),
	// CounterTTL bounds counter staleness (5 min), SessionTTL is the
	// idle lifetime of a visitor session (30 min).
	ConnectionTTL time.Duration
	CounterTTL    time.Duration
	SessionTTL    time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or
// describing the first malformed value.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		Worksheet:       getEnv("WORKSHEET", "Attendance"),
		CounterCell:     getEnv("COUNTER_CELL", "E2"),
		CredentialsJSON: os.Getenv("GOOGLE_CREDENTIALS_JSON"),
		CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		Roster:          domain.DefaultRoster(),
	}

	var missing []string

	cfg.SpreadsheetID = os.Getenv("SPREADSHEET_ID")
	if cfg.SpreadsheetID == "" {
		missing = append(missing, "SPREADSHEET_ID")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if roster := splitCSV(os.Getenv("ROSTER")); len(roster) > 0 {
		cfg.Roster = roster
	}

	var err error
	if cfg.EventWeekday, err = parseWeekday(getEnv("EVENT_WEEKDAY", "Tuesday")); err != nil {
		return Config{}, err
	}
	if cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", "Europe/Budapest")); err != nil {
		return Config{}, fmt.Errorf("TIMEZONE: %w", err)
	}
	if cfg.PastDates, err = getInt("PAST_DATES", 8); err != nil {
		return Config{}, err
	}
	if cfg.FutureDates, err = getInt("FUTURE_DATES", 2); err != nil {
		return Config{}, err
	}
	if cfg.ConnectionTTL, err = getDuration("CONNECTION_TTL", time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.CounterTTL, err = getDuration("COUNTER_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt parses an integer environment variable with a fallback.
func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// getDuration parses a Go duration environment variable with a fallback.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// parseWeekday maps an English weekday name to time.Weekday.
func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("EVENT_WEEKDAY: unknown weekday %q", name)
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
