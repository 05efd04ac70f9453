package services

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/api/sheets/v4"
)

type SheetService struct {
	Sheets        *sheets.Service
	SpreadsheetID string
	// Range is where rows are appended, e.g. "Sheet1!A:M"
	Range string
}

func NewSheetService(svc *sheets.Service, spreadsheetID, rng string) *SheetService {
	return &SheetService{Sheets: svc, SpreadsheetID: spreadsheetID, Range: rng}
}

// AppendRows appends rows below the existing data and returns how many were written.
func (s *SheetService) AppendRows(ctx context.Context, rows [][]interface{}) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	resp, err := s.Sheets.Spreadsheets.Values.
		Append(s.SpreadsheetID, s.Range, &sheets.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("append rows to %s: %s: %w", s.SpreadsheetID, describeAPIError(err), err)
	}
	var updated int64
	if resp.Updates != nil {
		updated = resp.Updates.UpdatedRows
	}
	log.Printf("📊 Rows appended: %d", updated)
	return updated, nil
}

// CreateSpreadsheet creates a spreadsheet with a single sheet whose first row
// holds columns, and returns its ID.
func (s *SheetService) CreateSpreadsheet(ctx context.Context, title string, columns []string, sheetName string) (string, error) {
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: sheetName,
					GridProperties: &sheets.GridProperties{
						RowCount:    1000,
						ColumnCount: int64(len(columns)),
					},
				},
			},
		},
	}
	created, err := s.Sheets.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create spreadsheet: %s: %w", describeAPIError(err), err)
	}
	s.SpreadsheetID = created.SpreadsheetId

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	_, err = s.Sheets.Spreadsheets.Values.
		Update(created.SpreadsheetId, sheetName+"!A1", &sheets.ValueRange{Values: [][]interface{}{header}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return created.SpreadsheetId, fmt.Errorf("write headers: %s: %w", describeAPIError(err), err)
	}

	log.Printf("📊 Created spreadsheet '%s' with ID: %s", title, created.SpreadsheetId)
	return created.SpreadsheetId, nil
}
