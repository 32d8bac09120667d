package forecast

import "math"

const dateLayout = "2006-01-02"

// FormatPoints renders points as ISO dates with non-negative integer quantities.
func FormatPoints(points []Point) []Record {
	records := make([]Record, 0, len(points))
	for _, p := range points {
		records = append(records, Record{
			Date:     p.Date.Format(dateLayout),
			Quantity: clampQuantity(p.Estimate),
			Lower:    clampQuantity(p.Lower),
			Upper:    clampQuantity(p.Upper),
		})
	}
	return records
}

// clampQuantity truncates toward zero and floors the result at zero.
func clampQuantity(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
