package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Config describes the one spreadsheet the application writes to and how
// to authenticate against it.
type Config struct {
	// SpreadsheetID identifies the spreadsheet in the Sheets API.
	SpreadsheetID string

	// Worksheet is the tab holding the append log and the counter cell.
	Worksheet string

	// CounterCell is the A1 reference of the headcount cell (e.g. "E2").
	CounterCell string

	// CredentialsJSON is the service-account key as inline JSON. Takes
	// precedence over CredentialsFile when non-empty (the deployment
	// environment's secret store sets it).
	CredentialsJSON string

	// CredentialsFile is the path of a local service-account key file,
	// used when CredentialsJSON is empty.
	CredentialsFile string

	// HandleTTL bounds connection reuse; CounterTTL bounds counter staleness.
	HandleTTL  time.Duration
	CounterTTL time.Duration
}

// dial resolves credentials and opens a Sheets API client scoped to the
// configured spreadsheet.
func dial(ctx context.Context, cfg Config) (Conn, error) {
	creds, err := resolveCredentials(cfg)
	if err != nil {
		return nil, err
	}

	jwt, err := google.JWTConfigFromJSON(creds, gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("sheets: parse service account key: %w", err)
	}

	svc, err := gsheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets: create client: %w", err)
	}

	return &remote{svc: svc, cfg: cfg}, nil
}

// resolveCredentials returns the service-account key bytes. Resolution
// order: inline JSON from the secret store first, then the local key file.
func resolveCredentials(cfg Config) ([]byte, error) {
	if cfg.CredentialsJSON != "" {
		// Secret stores often flatten newlines in the PEM private key.
		return []byte(strings.ReplaceAll(cfg.CredentialsJSON, `\n`, "\n")), nil
	}

	creds, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("sheets: no usable credentials (%s): %w", cfg.CredentialsFile, err)
	}
	return creds, nil
}

// remote is the production Conn backed by the Google Sheets API.
type remote struct {
	svc *gsheets.Service
	cfg Config
}

// Append appends values after the last data row of the worksheet.
// USER_ENTERED mirrors typing into the sheet, so dates and numbers keep
// their native cell types and the counter formula can see them.
func (r *remote) Append(ctx context.Context, values [][]interface{}) error {
	_, err := r.svc.Spreadsheets.Values.
		Append(r.cfg.SpreadsheetID, r.cfg.Worksheet, &gsheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// CounterCell reads the headcount cell. An empty cell reads as "".
func (r *remote) CounterCell(ctx context.Context) (string, error) {
	cellRange := fmt.Sprintf("%s!%s", r.cfg.Worksheet, r.cfg.CounterCell)
	resp, err := r.svc.Spreadsheets.Values.
		Get(r.cfg.SpreadsheetID, cellRange).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return strings.TrimSpace(fmt.Sprint(resp.Values[0][0])), nil
}
