package seasonal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// HolidayCalendar resolves a calendar name to its holiday set. An empty name
// disables holiday regressors.
func HolidayCalendar(name string) ([]*cal.Holiday, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, nil
	case "us":
		return us.Holidays, nil
	}
	return nil, fmt.Errorf("%q, %w", name, ErrUnknownHolidayCalendar)
}

// holidayIndex caches observed holiday days per year.
type holidayIndex struct {
	holidays []*cal.Holiday
	years    map[int]map[time.Time]string
}

func newHolidayIndex(holidays []*cal.Holiday) *holidayIndex {
	return &holidayIndex{holidays: holidays, years: make(map[int]map[time.Time]string)}
}

// lookup returns the holiday name observed on day, if any.
func (h *holidayIndex) lookup(day time.Time) (string, bool) {
	if h == nil || len(h.holidays) == 0 {
		return "", false
	}
	year := day.Year()
	days, ok := h.years[year]
	if !ok {
		days = make(map[time.Time]string, len(h.holidays))
		for _, hol := range h.holidays {
			_, observed := hol.Calc(year)
			if observed.IsZero() {
				continue
			}
			days[dayOf(observed)] = featureName(hol)
		}
		h.years[year] = days
	}
	name, found := days[dayOf(day)]
	return name, found
}

func featureName(hol *cal.Holiday) string {
	return "holiday_" + strings.ReplaceAll(strings.ToLower(hol.Name), " ", "_")
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
