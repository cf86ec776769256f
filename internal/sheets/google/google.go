package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"ledger/internal/core"
	ports "ledger/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client mirrors ledger records into a Google spreadsheet. Each record is one
// row with columns A:E = id, date, category, note, amount (in units).
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	recordsSheet  string
}

// Ensure interface conformance
var (
	_ ports.RecordWriter   = (*Client)(nil)
	_ ports.RecordLister   = (*Client)(nil)
	_ ports.RecordUpdater  = (*Client)(nil)
	_ ports.RecordDeleter  = (*Client)(nil)
	_ ports.CategoryReader = (*Client)(nil)
	_ ports.RecordMirror   = (*Client)(nil)
)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Credentials: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_NAME (default "Records").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Records"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		recordsSheet:  sheetName,
	}, nil
}

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

	slog.InfoContext(ctx, "Google Sheets service created")
	return service, nil
}

// Append writes a new row and uses the row number as the record id.
func (c *Client) Append(ctx context.Context, in core.Input) (core.Record, error) {
	if err := in.Validate(); err != nil {
		return core.Record{}, fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return core.Record{}, errors.New("sheets service not initialized")
	}

	nextRow, err := c.nextRow(ctx)
	if err != nil {
		return core.Record{}, err
	}

	rec := core.Record{
		ID:       int64(nextRow),
		Amount:   in.Amount,
		Category: in.Category,
		Note:     in.Note,
		Date:     in.Date,
	}
	if err := c.writeRow(ctx, nextRow, rec); err != nil {
		return core.Record{}, err
	}
	return rec, nil
}

// List scans the records sheet, skipping the header and malformed rows.
func (c *Client) List(ctx context.Context) ([]core.Record, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:E", c.recordsSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	var out []core.Record
	for _, row := range resp.Values {
		rec, ok := parseRow(toStrings(row))
		if !ok {
			continue
		}
		out = append(out, rec)
	}
	// Newest first, matching the local store ordering.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Categories returns the distinct categories found in the sheet, in first-seen
// order.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	records, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var out []string
	for _, rec := range records {
		if _, ok := seen[rec.Category]; ok {
			continue
		}
		seen[rec.Category] = struct{}{}
		out = append(out, rec.Category)
	}
	return out, nil
}

// Update rewrites the row holding the record id.
func (c *Client) Update(ctx context.Context, id int64, in core.Input) (core.Record, error) {
	if err := in.Validate(); err != nil {
		return core.Record{}, fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return core.Record{}, errors.New("sheets service not initialized")
	}

	rowNum, err := c.findRowByID(ctx, id)
	if err != nil {
		return core.Record{}, err
	}
	if rowNum == 0 {
		return core.Record{}, core.ErrRecordNotFound
	}

	rec := core.Record{
		ID:       id,
		Amount:   in.Amount,
		Category: in.Category,
		Note:     in.Note,
		Date:     in.Date,
	}
	if err := c.writeRow(ctx, rowNum, rec); err != nil {
		return core.Record{}, err
	}
	return rec, nil
}

// Delete clears the row holding the record id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.Remove(ctx, id)
}

// Mirror upserts a locally stored record by its id column. A row holding the
// id gets overwritten; otherwise the record is appended.
func (c *Client) Mirror(ctx context.Context, rec core.Record) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rowNum, err := c.findRowByID(ctx, rec.ID)
	if err != nil {
		return err
	}
	if rowNum == 0 {
		rowNum, err = c.nextRow(ctx)
		if err != nil {
			return err
		}
	}
	if err := c.writeRow(ctx, rowNum, rec); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Record mirrored to sheet", "id", rec.ID, "row", rowNum)
	return nil
}

// Remove clears the row holding the given record id. A missing id is not an
// error; the replica is already consistent.
func (c *Client) Remove(ctx context.Context, id int64) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rowNum, err := c.findRowByID(ctx, id)
	if err != nil {
		return err
	}
	if rowNum == 0 {
		slog.InfoContext(ctx, "Record already absent from sheet", "id", id)
		return nil
	}

	rng := fmt.Sprintf("%s!A%d:E%d", c.recordsSheet, rowNum, rowNum)
	_, err = c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear row %d in sheet %s: %w", rowNum, c.recordsSheet, err)
	}

	slog.InfoContext(ctx, "Record removed from sheet", "id", id, "row", rowNum)
	return nil
}

func (c *Client) nextRow(ctx context.Context) (int, error) {
	rng := fmt.Sprintf("%s!A:A", c.recordsSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get sheet dimensions for %s: %w", c.recordsSheet, err)
	}
	return len(resp.Values) + 1, nil
}

func (c *Client) writeRow(ctx context.Context, rowNum int, rec core.Record) error {
	rng := fmt.Sprintf("%s!A%d:E%d", c.recordsSheet, rowNum, rowNum)
	vr := &gsheet.ValueRange{Values: [][]any{{rec.ID, rec.Date, rec.Category, rec.Note, rec.Amount.Units()}}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

// findRowByID scans column A for the record id. Returns 0 when absent.
func (c *Client) findRowByID(ctx context.Context, id int64) (int, error) {
	rng := fmt.Sprintf("%s!A:A", c.recordsSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", rng, err)
	}
	want := fmt.Sprintf("%d", id)
	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == want {
			return i + 1, nil
		}
	}
	return 0, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
