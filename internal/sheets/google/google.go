package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"zakatku/internal/core"
	ports "zakatku/internal/sheets"
)

// Backup sheet layout, columns A through R.
var headerRow = []any{
	"ID", "Penginput", "Tanggal", "Nama", "Alamat",
	"Jiwa Beras", "Beras (kg)", "Jiwa Uang", "Uang",
	"Zakat Maal", "Infaq Beras", "Infaq Uang", "Fidyah Beras", "Fidyah Uang",
	"Total Beras", "Total Uang", "Version", "Updated At",
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ports.RecordBackup = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS. Optional: GOOGLE_SHEET_NAME (default "Zakat").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Zakat"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// UpsertRecord writes one record revision into the backup sheet. Rows are
// keyed by the id in column A, so replaying a message rewrites the same row.
func (c *Client) UpsertRecord(ctx context.Context, rec core.Record, version int64) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	ids, err := c.readIDColumn(ctx)
	if err != nil {
		return "", err
	}

	// Row 1 is the header; data starts at row 2.
	rowNum := rowIndexOf(ids, rec.ID)
	if rowNum < 0 {
		rowNum = len(ids) + 2
	}

	if rowNum == 2 && len(ids) == 0 {
		if err := c.writeHeader(ctx); err != nil {
			return "", err
		}
	}

	rng := fmt.Sprintf("%s!A%d:R%d", c.sheetName, rowNum, rowNum)
	vr := &gsheet.ValueRange{Values: [][]any{recordRow(rec, version)}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("update row %s: %w", rng, err)
	}

	slog.InfoContext(ctx, "Record backed up to Google Sheets",
		"id", rec.ID,
		"version", version,
		"sheets_ref", rng)
	return rng, nil
}

// DeleteRecord clears the backup row for a deleted record. A missing row
// is not an error, the delete may have been replayed.
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	ids, err := c.readIDColumn(ctx)
	if err != nil {
		return err
	}

	rowNum := rowIndexOf(ids, id)
	if rowNum < 0 {
		slog.InfoContext(ctx, "Backup row already absent", "id", id)
		return nil
	}

	rng := fmt.Sprintf("%s!A%d:R%d", c.sheetName, rowNum, rowNum)
	_, err = c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear row %s: %w", rng, err)
	}

	slog.InfoContext(ctx, "Backup row cleared", "id", id, "sheets_ref", rng)
	return nil
}

func (c *Client) writeHeader(ctx context.Context) error {
	rng := fmt.Sprintf("%s!A1:R1", c.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{headerRow}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// readIDColumn returns column A below the header, one entry per sheet row.
func (c *Client) readIDColumn(ctx context.Context) ([]string, error) {
	rng := fmt.Sprintf("%s!A2:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	out := make([]string, len(resp.Values))
	for i, row := range resp.Values {
		if len(row) > 0 {
			out[i] = strings.TrimSpace(fmt.Sprint(row[0]))
		}
	}
	return out, nil
}

// rowIndexOf maps an id to its 1-based sheet row, or -1 when absent.
// ids[0] corresponds to sheet row 2.
func rowIndexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i + 2
		}
	}
	return -1
}

func recordRow(rec core.Record, version int64) []any {
	return []any{
		rec.ID, rec.Penginput, rec.Tanggal, rec.Nama, rec.Alamat,
		rec.ZakatFitrah.JiwaBeras, rec.ZakatFitrah.BerasKg.String(), rec.ZakatFitrah.JiwaUang, rec.ZakatFitrah.Uang,
		rec.ZakatMaal, rec.Infaq.Beras.String(), rec.Infaq.Uang, rec.Fidyah.Beras.String(), rec.Fidyah.Uang,
		rec.TotalBeras.String(), rec.TotalUang, version,
		rec.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}
