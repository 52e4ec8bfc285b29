package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client implements TabularStore against one Google spreadsheet.
type Client struct {
	service       *sheets.Service
	logger        *slog.Logger
	spreadsheetID string
}

// NewClient creates a Google Sheets tabular store client.
func NewClient(ctx context.Context, config Config, logger *slog.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service:       service,
		logger:        logger,
		spreadsheetID: config.SpreadsheetID,
	}, nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// EnsureTab returns the sheet id for a tab title, creating the tab when it
// does not exist yet.
func (c *Client) EnsureTab(ctx context.Context, title string) (int64, error) {
	meta, err := c.service.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to read spreadsheet metadata: %w", err)
	}

	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return sheet.Properties.SheetId, nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: title},
				},
			},
		},
	}

	resp, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to add tab %q: %w", title, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return 0, fmt.Errorf("unexpected add-sheet reply for tab %q", title)
	}

	c.logger.Info("created month tab", "title", title)

	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

// GetColumn returns a column's cells from row 1 through the last populated
// row of that column.
func (c *Client) GetColumn(ctx context.Context, title string, column int) ([]string, error) {
	letter := strings.TrimRight(A1(1, column), "1")
	readRange := fmt.Sprintf("'%s'!%s:%s", title, letter, letter)

	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to read column %s of %q: %w", letter, title, err)
	}

	cells := make([]string, len(resp.Values))
	for i, row := range resp.Values {
		if len(row) > 0 {
			cells[i] = fmt.Sprint(row[0])
		}
	}
	return cells, nil
}

// UpdateCells writes a block of values starting at startCell, letting the
// spreadsheet parse numbers and dates (USER_ENTERED).
func (c *Client) UpdateCells(ctx context.Context, title, startCell string, values [][]string) error {
	vr := &sheets.ValueRange{Values: make([][]any, len(values))}
	for i, row := range values {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		vr.Values[i] = cells
	}

	writeRange := fmt.Sprintf("'%s'!%s", title, startCell)
	_, err := c.service.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("unable to write %d rows at %s of %q: %w", len(values), startCell, title, err)
	}
	return nil
}

// SetBackground applies a background color to an inclusive 1-based cell
// range on the given tab.
func (c *Client) SetBackground(ctx context.Context, tabID int64, startRow, endRow, startCol, endCol int, color Color) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:          tabID,
						StartRowIndex:    int64(startRow - 1),
						EndRowIndex:      int64(endRow),
						StartColumnIndex: int64(startCol - 1),
						EndColumnIndex:   int64(endCol),
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							BackgroundColor: &sheets.Color{
								Red:   color.Red,
								Green: color.Green,
								Blue:  color.Blue,
							},
						},
					},
					Fields: "userEnteredFormat.backgroundColor",
				},
			},
		},
	}

	_, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to set background on tab %d: %w", tabID, err)
	}
	return nil
}
