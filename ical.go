package aurora

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// ExportICS writes s as an iCalendar document, one event per entry. Entry
// times are read in loc. An event ends when the next entry of the day
// starts, the last one lasts an hour. An entry without a clock time, as found
// in older saved data, becomes an all-day event.
//
// stamp is the DTSTAMP of every event.
func ExportICS(w io.Writer, s Schedule, loc *time.Location, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//etnz//aurora//ZH")
	cal.SetXWRCalName("Canada Aurora Trip")

	for _, d := range s.Dates() {
		entries := s[d]
		for i, e := range entries {
			ev := cal.AddEvent(fmt.Sprintf("%s-%s@aurora", d, e.ID))
			ev.SetDtStampTime(stamp)
			if h, m, err := e.Clock(); err != nil {
				ev.SetAllDayStartAt(d.At(0, 0, time.UTC))
				ev.SetAllDayEndAt(d.Add(1).At(0, 0, time.UTC))
			} else {
				start := d.At(h, m, loc)
				end := start.Add(time.Hour)
				if i+1 < len(entries) {
					if nh, nm, err := entries[i+1].Clock(); err == nil {
						if next := d.At(nh, nm, loc); next.After(start) {
							end = next
						}
					}
				}
				ev.SetStartAt(start)
				ev.SetEndAt(end)
			}
			ev.SetSummary(fmt.Sprintf("[%s] %s", e.Category.Label(), MapQuery(e.Location)))
			ev.SetLocation(e.Location)
			if note := strings.TrimSpace(e.Note); note != "" {
				ev.SetDescription(note)
			}
			ev.SetURL(MapURL(e.Location))
		}
	}
	_, err := io.WriteString(w, cal.Serialize())
	return err
}
