// Package export renders reservation lists as downloadable files.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"reservas/internal/models"
)

// SheetName is the worksheet holding the reservations.
const SheetName = "Reservas"

const maxSheetName = 31

// XLSXColumns are the header cells of the reservations sheet.
var XLSXColumns = []string{"Fecha", "Tienda", "Observación"}

var errNoSheet = errors.New("no active sheet")

// sheetWriter appends rows to an excelize workbook, one sheet at a time.
type sheetWriter struct {
	file  *excelize.File
	sheet string
	row   int
}

func newSheetWriter() *sheetWriter {
	return &sheetWriter{file: excelize.NewFile()}
}

// addSheet activates a new sheet. The first call renames the default one.
func (w *sheetWriter) addSheet(name string) error {
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}

	if w.sheet == "" {
		if err := w.file.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("rename sheet %s: %w", name, err)
		}
	} else if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	w.sheet = name
	w.row = 1
	return nil
}

func (w *sheetWriter) writeHeader(columns []string) error {
	values := make([]interface{}, len(columns))
	for i, c := range columns {
		values[i] = c
	}
	if err := w.writeRow(values); err != nil {
		return err
	}

	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	start, _ := excelize.CoordinatesToCellName(1, w.row-1)
	end, _ := excelize.CoordinatesToCellName(len(columns), w.row-1)
	return w.file.SetCellStyle(w.sheet, start, end, style)
}

func (w *sheetWriter) writeRow(values []interface{}) error {
	if w.sheet == "" {
		return errNoSheet
	}
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(w.sheet, cell, &values); err != nil {
		return err
	}
	w.row++
	return nil
}

func (w *sheetWriter) save(out io.Writer) error {
	return w.file.Write(out)
}

func (w *sheetWriter) close() error {
	return w.file.Close()
}

// WriteXLSX writes list as a workbook with one row per reservation, in list order.
// Dates are written as text in YYYY-MM-DD form.
func WriteXLSX(out io.Writer, list []models.ReservationDate) error {
	w := newSheetWriter()
	defer w.close()

	if err := w.addSheet(SheetName); err != nil {
		return err
	}
	if err := w.writeHeader(XLSXColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range list {
		note := ""
		if r.Observacion != nil {
			note = *r.Observacion
		}
		if err := w.writeRow([]interface{}{r.Fecha, r.Tienda, note}); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := w.file.SetColWidth(SheetName, "A", "A", 12); err != nil {
		return err
	}
	if err := w.file.SetColWidth(SheetName, "B", "C", 32); err != nil {
		return err
	}
	return w.save(out)
}
