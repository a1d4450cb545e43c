package source

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"reservas/internal/models"
)

// Sheet serial dates count days from this epoch.
var sheetsEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Column headers of the reservations sheet.
const (
	headerFecha       = "FECHA"
	headerTienda      = "TIENDA"
	headerObservacion = "OBSERVACION"
)

// SheetsClient reads reservations straight from the spreadsheet through the
// Sheets API. The first row of the range must hold the column headers.
type SheetsClient struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
}

// SheetsOptions builds client options from either a service account file or an API key.
func SheetsOptions(ctx context.Context, credentialsFile, apiKey string) ([]option.ClientOption, error) {
	switch {
	case credentialsFile != "":
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read sheets credentials: %w", err)
		}
		conf, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("parse sheets credentials: %w", err)
		}
		return []option.ClientOption{option.WithTokenSource(conf.TokenSource(ctx))}, nil
	case apiKey != "":
		return []option.ClientOption{option.WithAPIKey(apiKey)}, nil
	default:
		return nil, nil
	}
}

func NewSheetsClient(ctx context.Context, spreadsheetID, readRange string, opts ...option.ClientOption) (*SheetsClient, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsClient{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}, nil
}

func (c *SheetsClient) Name() string { return "sheets" }

// Fetch reads the configured range and returns one raw record per data row.
func (c *SheetsClient) Fetch(ctx context.Context) ([]json.RawMessage, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.readRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return rowsToRecords(resp.Values)
}

// rowsToRecords maps sheet rows to records keyed by the header row.
func rowsToRecords(rows [][]interface{}) ([]json.RawMessage, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet range is empty", ErrMalformedSource)
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		name := strings.ToUpper(strings.TrimSpace(fmt.Sprint(h)))
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	for _, required := range []string{headerFecha, headerTienda} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing %s column", ErrMalformedSource, required)
		}
	}

	items := make([]json.RawMessage, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := models.RawReservationRecord{
			Fecha:  cellJSON(serialToDate(cell(row, cols, headerFecha))),
			Tienda: cellJSON(cell(row, cols, headerTienda)),
		}
		if _, ok := cols[headerObservacion]; ok {
			rec.Observacion = cellJSON(cell(row, cols, headerObservacion))
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
		}
		items = append(items, data)
	}
	return items, nil
}

func cell(row []interface{}, cols map[string]int, name string) interface{} {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return nil
	}
	return row[i]
}

// serialToDate converts a serial date number to YYYY-MM-DD. Other values pass through.
func serialToDate(v interface{}) interface{} {
	serial, ok := v.(float64)
	// Zero is a blank cell, not the epoch.
	if !ok || serial == 0 || math.IsNaN(serial) || math.IsInf(serial, 0) {
		return v
	}
	return sheetsEpoch.AddDate(0, 0, int(math.Floor(serial))).Format(models.DateLayout)
}

func cellJSON(v interface{}) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
