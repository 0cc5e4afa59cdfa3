package sheets

import (
	"context"
	"fmt"
	"log"

	"leadgen-stack/shared/config"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Client wraps the Sheets API for one spreadsheet, which serves as the
// datastore for the whole pipeline. Worksheets are tables: row 1 is the
// header, everything below is data, rows are only ever appended.
type Client struct {
	service       *sheetsapi.Service
	config        *config.SheetsConfig
	spreadsheetID string
}

func NewClient(cfg *config.SheetsConfig) (*Client, error) {
	ctx := context.Background()

	oc := oauthConfig(cfg)

	token, err := getToken(oc, cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to get OAuth token: %w", err)
	}

	tokenSource := &tokenSaver{
		config:    oc,
		token:     token,
		tokenFile: cfg.TokenFile,
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)

	service, err := sheetsapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &Client{
		service:       service,
		config:        cfg,
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

// Values reads the entire worksheet as a Table. A missing or empty
// worksheet yields an empty table rather than an error.
func (c *Client) Values(ctx context.Context, worksheet string) (*Table, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, worksheet).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %s: %w", worksheet, err)
	}

	table := &Table{}
	for i, raw := range resp.Values {
		row := make([]string, len(raw))
		for j, cell := range raw {
			row[j] = fmt.Sprint(cell)
		}
		if i == 0 {
			table.Headers = row
		} else {
			table.Rows = append(table.Rows, row)
		}
	}
	return table, nil
}

// AppendRow appends one row below the worksheet's existing data.
func (c *Client) AppendRow(ctx context.Context, worksheet string, row []string) error {
	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}

	vr := &sheetsapi.ValueRange{Values: [][]interface{}{values}}
	_, err := c.service.Spreadsheets.Values.Append(c.spreadsheetID, worksheet, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append row to %s: %w", worksheet, err)
	}
	return nil
}

// AppendRows appends rows one at a time, logging and continuing on
// per-row failures. Returns the number of rows written.
func (c *Client) AppendRows(ctx context.Context, worksheet string, rows [][]string) (int, error) {
	written := 0
	for _, row := range rows {
		if err := c.AppendRow(ctx, worksheet, row); err != nil {
			log.Printf("Warning: failed to append row to %s: %v", worksheet, err)
			continue
		}
		written++
	}
	if written == 0 && len(rows) > 0 {
		return 0, fmt.Errorf("failed to append any of %d rows to %s", len(rows), worksheet)
	}
	return written, nil
}

// EnsureWorksheet creates the worksheet with the given header row if it
// does not exist yet.
func (c *Client) EnsureWorksheet(ctx context.Context, title string, headers []string) error {
	spreadsheet, err := c.service.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return nil
		}
	}

	log.Printf("Creating worksheet %s", title)
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to create worksheet %s: %w", title, err)
	}

	return c.AppendRow(ctx, title, headers)
}

// UpdateCell writes a single cell. Row and column are 1-based; row 1 is
// the header row.
func (c *Client) UpdateCell(ctx context.Context, worksheet string, row, col int, value string) error {
	cellRange := fmt.Sprintf("%s!%s%d", worksheet, columnLetter(col), row)
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{{value}}}
	_, err := c.service.Spreadsheets.Values.Update(c.spreadsheetID, cellRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", cellRange, err)
	}
	return nil
}

// columnLetter converts a 1-based column index to its A1 notation letters.
func columnLetter(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}
