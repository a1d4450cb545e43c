package export

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"reservas/internal/models"
)

func strPtr(s string) *string { return &s }

func sampleList() []models.ReservationDate {
	return []models.ReservationDate{
		{Fecha: "2024-03-05", Tienda: "Store A", Observacion: strPtr("Opens early")},
		{Fecha: "2024-03-06", Tienda: "Store B"},
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleList()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, XLSXColumns, rows[0])
	assert.Equal(t, []string{"2024-03-05", "Store A", "Opens early"}, rows[1])
	require.GreaterOrEqual(t, len(rows[2]), 2)
	assert.Equal(t, []string{"2024-03-06", "Store B"}, rows[2][:2])
	if len(rows[2]) > 2 {
		assert.Empty(t, rows[2][2])
	}
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSheetWriter_NoSheet(t *testing.T) {
	w := newSheetWriter()
	defer w.close()
	assert.ErrorIs(t, w.writeRow([]interface{}{"x"}), errNoSheet)
}

func TestSheetWriter_TruncatesLongNameByCharacter(t *testing.T) {
	w := newSheetWriter()
	defer w.close()

	require.NoError(t, w.addSheet(strings.Repeat("ñ", 40)))
	want := strings.Repeat("ñ", maxSheetName)
	assert.True(t, utf8.ValidString(w.sheet))
	assert.Equal(t, want, w.sheet)
	assert.Contains(t, w.file.GetSheetList(), want)
	require.NoError(t, w.writeRow([]interface{}{"x"}))
}

func TestWriteICS(t *testing.T) {
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	list := append(sampleList(), models.ReservationDate{Fecha: "bad", Tienda: "Skipped"})

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, list, "Calendario de Reservas", stamp))

	cal, err := ical.ParseCalendar(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "Store A", first.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "Opens early", first.GetProperty(ical.ComponentPropertyDescription).Value)
	assert.Equal(t, "20240305", first.GetProperty(ical.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20240306", first.GetProperty(ical.ComponentPropertyDtEnd).Value)
	assert.Equal(t, EventUID(0, list[0]), first.Id())

	assert.Nil(t, events[1].GetProperty(ical.ComponentPropertyDescription))
}

func TestWriteICS_Deterministic(t *testing.T) {
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var a, b bytes.Buffer
	require.NoError(t, WriteICS(&a, sampleList(), "", stamp))
	require.NoError(t, WriteICS(&b, sampleList(), "", stamp))
	assert.Equal(t, a.String(), b.String())
}

func TestEventUID(t *testing.T) {
	r := models.ReservationDate{Fecha: "2024-03-05", Tienda: "Store A"}
	assert.Equal(t, EventUID(0, r), EventUID(0, r))
	assert.NotEqual(t, EventUID(0, r), EventUID(1, r))
	assert.Contains(t, EventUID(0, r), "@reservas")
}
