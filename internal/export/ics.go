package export

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"reservas/internal/models"
)

// ProductID identifies the calendar producer.
const ProductID = "-//reservas//Calendario de Reservas//ES"

// uidNamespace scopes the reservation UIDs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:reservas:fechas"))

// EventUID is stable for the same date, store and position.
func EventUID(index int, r models.ReservationDate) string {
	name := fmt.Sprintf("%d|%s|%s", index, r.Fecha, r.Tienda)
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@reservas"
}

// WriteICS writes list as an iCalendar feed with one all-day event per
// reservation. Reservations whose date cannot be parsed are skipped.
func WriteICS(out io.Writer, list []models.ReservationDate, calName string, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	if calName != "" {
		cal.SetXWRCalName(calName)
	}

	for i, r := range list {
		day, err := time.Parse(models.DateLayout, r.Fecha)
		if err != nil {
			continue
		}
		ev := cal.AddEvent(EventUID(i, r))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		ev.SetSummary(r.Tienda)
		if r.HasObservacion() {
			ev.SetDescription(*r.Observacion)
		}
	}

	return cal.SerializeTo(out)
}
