package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"labstock/inventory"
)

const (
	partsSheet         = "Parts"
	usersSheet         = "Users"
	notificationsSheet = "Notifications"
)

// SheetsBackend implements Backend on a Google Sheets spreadsheet with
// Parts, Users and Notifications worksheets.
type SheetsBackend struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetIDs      map[string]int64
}

// NewSheetsBackend authorizes with the service-account credentials file
// and caches the worksheet IDs needed for row deletion.
func NewSheetsBackend(ctx context.Context, credentialsFile, spreadsheetID string) (*SheetsBackend, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet_id is not configured")
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	b := &SheetsBackend{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetIDs:      make(map[string]int64),
	}

	if err := b.loadSheetIDs(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *SheetsBackend) loadSheetIDs(ctx context.Context) error {
	var meta *sheets.Spreadsheet
	err := b.withRetry(ctx, func() error {
		var err error
		meta, err = b.svc.Spreadsheets.Get(b.spreadsheetID).
			Fields("sheets.properties").Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to fetch spreadsheet metadata: %w", err)
	}

	for _, sh := range meta.Sheets {
		if sh.Properties != nil {
			b.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}

	for _, name := range []string{partsSheet, usersSheet, notificationsSheet} {
		if _, ok := b.sheetIDs[name]; !ok {
			return fmt.Errorf("spreadsheet has no %q worksheet", name)
		}
	}
	return nil
}

// withRetry wraps a remote call with bounded exponential backoff.
// Sheets API calls fail transiently on rate limits and flaky networks.
func (b *SheetsBackend) withRetry(ctx context.Context, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

func (b *SheetsBackend) values(ctx context.Context, rng string) ([][]interface{}, error) {
	var vr *sheets.ValueRange
	err := b.withRetry(ctx, func() error {
		var err error
		vr, err = b.svc.Spreadsheets.Values.Get(b.spreadsheetID, rng).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", rng, err)
	}
	return vr.Values, nil
}

func rowStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = fmt.Sprint(cell)
	}
	return out
}

func (b *SheetsBackend) Items(ctx context.Context) ([]inventory.Item, error) {
	rows, err := b.values(ctx, partsSheet+"!A2:J")
	if err != nil {
		return nil, err
	}

	items := make([]inventory.Item, 0, len(rows))
	for _, row := range rows {
		cells := rowStrings(row)
		if len(cells) == 0 || cells[0] == "" {
			continue
		}
		item, err := inventory.FromRow(cells)
		if err != nil {
			return nil, fmt.Errorf("malformed Parts row: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (b *SheetsBackend) Users(ctx context.Context) ([]string, error) {
	rows, err := b.values(ctx, usersSheet+"!A2:A")
	if err != nil {
		return nil, err
	}

	users := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if name := fmt.Sprint(row[0]); name != "" {
			users = append(users, name)
		}
	}
	return users, nil
}

func (b *SheetsBackend) append(ctx context.Context, sheet string, row []interface{}) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	return b.withRetry(ctx, func() error {
		_, err := b.svc.Spreadsheets.Values.Append(b.spreadsheetID, sheet+"!A:J", vr).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
		return err
	})
}

// findRow returns the 1-based row index of the first cell in column A
// of the sheet that equals value, or 0 when absent.
func (b *SheetsBackend) findRow(ctx context.Context, sheet, value string) (int64, error) {
	rows, err := b.values(ctx, sheet+"!A:A")
	if err != nil {
		return 0, err
	}
	for i, row := range rows {
		if len(row) > 0 && fmt.Sprint(row[0]) == value {
			return int64(i + 1), nil
		}
	}
	return 0, nil
}

func (b *SheetsBackend) deleteRow(ctx context.Context, sheet string, row int64) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    b.sheetIDs[sheet],
					Dimension:  "ROWS",
					StartIndex: row - 1,
					EndIndex:   row,
				},
			},
		}},
	}
	return b.withRetry(ctx, func() error {
		_, err := b.svc.Spreadsheets.BatchUpdate(b.spreadsheetID, req).Context(ctx).Do()
		return err
	})
}

func itemCells(item inventory.Item) []interface{} {
	row := item.Row()
	cells := make([]interface{}, len(row))
	for i, cell := range row {
		cells[i] = cell
	}
	return cells
}

func (b *SheetsBackend) AppendItem(ctx context.Context, item inventory.Item) error {
	if err := b.append(ctx, partsSheet, itemCells(item)); err != nil {
		return fmt.Errorf("failed to append item %s: %w", item.PartNum, err)
	}
	return nil
}

func (b *SheetsBackend) UpdateItem(ctx context.Context, item inventory.Item) error {
	row, err := b.findRow(ctx, partsSheet, item.PartNum)
	if err != nil {
		return err
	}
	if row == 0 {
		return fmt.Errorf("item %s not found in sheet", item.PartNum)
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{itemCells(item)}}
	rng := fmt.Sprintf("%s!A%d:J%d", partsSheet, row, row)
	err = b.withRetry(ctx, func() error {
		_, err := b.svc.Spreadsheets.Values.Update(b.spreadsheetID, rng, vr).
			ValueInputOption("USER_ENTERED").
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update item %s: %w", item.PartNum, err)
	}
	return nil
}

func (b *SheetsBackend) DeleteItem(ctx context.Context, partNum string) error {
	row, err := b.findRow(ctx, partsSheet, partNum)
	if err != nil {
		return err
	}
	if row == 0 {
		return nil
	}
	if err := b.deleteRow(ctx, partsSheet, row); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", partNum, err)
	}
	return nil
}

func (b *SheetsBackend) AppendUser(ctx context.Context, username string) error {
	if err := b.append(ctx, usersSheet, []interface{}{username}); err != nil {
		return fmt.Errorf("failed to append user %s: %w", username, err)
	}
	return nil
}

func (b *SheetsBackend) DeleteUser(ctx context.Context, username string) error {
	row, err := b.findRow(ctx, usersSheet, username)
	if err != nil {
		return err
	}
	if row == 0 {
		return nil
	}
	if err := b.deleteRow(ctx, usersSheet, row); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", username, err)
	}
	return nil
}

// AppendNotification records a part number on the Notifications
// worksheet. Already-notified parts are left alone.
func (b *SheetsBackend) AppendNotification(ctx context.Context, partNum string) error {
	row, err := b.findRow(ctx, notificationsSheet, partNum)
	if err != nil {
		return err
	}
	if row != 0 {
		return nil
	}
	if err := b.append(ctx, notificationsSheet, []interface{}{partNum}); err != nil {
		return fmt.Errorf("failed to append notification for %s: %w", partNum, err)
	}
	return nil
}
