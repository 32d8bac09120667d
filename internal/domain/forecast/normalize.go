package forecast

import (
	"time"

	"github.com/smartcafe/demand-forecast/pkg/util"
)

// Normalize turns raw sales records into a gap-free daily series for itemID.
// Quantities recorded on the same day are summed, missing days are filled
// with zero and the series is extended with zero days up to and including
// today. It returns nil when no record matches itemID.
func Normalize(records []SalesRecord, itemID int, today time.Time) Series {
	totals := make(map[time.Time]float64)
	var first, last time.Time
	for _, rec := range records {
		if rec.MenuItemID != itemID {
			continue
		}
		day := util.CalendarDay(rec.Date, nil)
		if len(totals) == 0 || day.Before(first) {
			first = day
		}
		if len(totals) == 0 || day.After(last) {
			last = day
		}
		totals[day] += float64(rec.Quantity)
	}
	if len(totals) == 0 {
		return nil
	}

	end := last
	if today = util.CalendarDay(today, nil); end.Before(today) {
		end = today
	}

	series := make(Series, 0, util.DaysBetween(first, end)+1)
	for day := first; !day.After(end); day = day.AddDate(0, 0, 1) {
		series = append(series, DailyPoint{Date: day, Quantity: totals[day]})
	}
	return series
}
