package seasonal

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"
)

const (
	secondsPerDay = 24 * 60 * 60

	weeklyPeriodDays = 7.0
	yearlyPeriodDays = 365.25

	minWeeklySpan = 14 * 24 * time.Hour
	minYearlySpan = 730 * 24 * time.Hour
)

// design captures everything needed to rebuild the regression matrix for
// arbitrary timestamps once a fit has chosen its components.
type design struct {
	start     time.Time
	spanDays  float64
	hinges    []float64 // changepoints in scaled time
	weekly    int       // fourier order, 0 when disabled
	yearly    int
	holidays  []string // holiday feature columns, sorted
	holidayIx *holidayIndex
}

// newDesign picks the model components supported by the training times.
func newDesign(t []time.Time, opt *Options) *design {
	span := t[len(t)-1].Sub(t[0])
	d := &design{
		start:    t[0],
		spanDays: span.Hours() / 24,
	}

	if opt.Weekly == ModeOn || (opt.Weekly == ModeAuto && span >= minWeeklySpan) {
		d.weekly = opt.WeeklyOrder
	}
	if opt.Yearly == ModeOn || (opt.Yearly == ModeAuto && span >= minYearlySpan) {
		d.yearly = opt.YearlyOrder
	}
	d.hinges = autoChangepoints(d.scale(t), opt.Changepoints, opt.ChangepointRange)

	if len(opt.Holidays) > 0 {
		d.holidayIx = newHolidayIndex(opt.Holidays)
		seen := make(map[string]struct{})
		for _, ts := range t {
			if name, ok := d.holidayIx.lookup(ts); ok {
				seen[name] = struct{}{}
			}
		}
		for name := range seen {
			d.holidays = append(d.holidays, name)
		}
		sort.Strings(d.holidays)
	}
	return d
}

// autoChangepoints spreads n changepoints over the first rng fraction of the
// scaled training times. The count shrinks when history is too short.
func autoChangepoints(scaled []float64, n int, rng float64) []float64 {
	histSize := int(math.Floor(float64(len(scaled)) * rng))
	if n+1 > histSize {
		n = histSize - 1
	}
	if n <= 0 {
		return nil
	}
	hinges := make([]float64, 0, n)
	step := float64(histSize-1) / float64(n)
	for i := 1; i <= n; i++ {
		idx := int(math.Round(float64(i) * step))
		hinges = append(hinges, scaled[idx])
	}
	return hinges
}

// scale maps times onto [0, 1] across the training span.
func (d *design) scale(t []time.Time) []float64 {
	out := make([]float64, len(t))
	for i, ts := range t {
		out[i] = ts.Sub(d.start).Hours() / 24 / d.spanDays
	}
	return out
}

// numFeatures includes the leading intercept column.
func (d *design) numFeatures() int {
	return 2 + len(d.hinges) + 2*d.weekly + 2*d.yearly + len(d.holidays)
}

// matrix builds the design matrix for t. Column 0 is the intercept.
func (d *design) matrix(t []time.Time) *mat.Dense {
	scaled := d.scale(t)
	x := mat.NewDense(len(t), d.numFeatures(), nil)
	holidayCol := make(map[string]int, len(d.holidays))

	for i, ts := range t {
		col := 0
		x.Set(i, col, 1)
		col++
		x.Set(i, col, scaled[i])
		col++
		for _, h := range d.hinges {
			x.Set(i, col, math.Max(0, scaled[i]-h))
			col++
		}

		epochDays := float64(ts.Unix()) / secondsPerDay
		col = setFourier(x, i, col, epochDays, weeklyPeriodDays, d.weekly)
		col = setFourier(x, i, col, epochDays, yearlyPeriodDays, d.yearly)

		if len(d.holidays) == 0 {
			continue
		}
		if len(holidayCol) == 0 {
			for j, name := range d.holidays {
				holidayCol[name] = col + j
			}
		}
		if name, ok := d.holidayIx.lookup(ts); ok {
			if c, known := holidayCol[name]; known {
				x.Set(i, c, 1)
			}
		}
	}
	return x
}

func setFourier(x *mat.Dense, row, col int, epochDays, period float64, order int) int {
	for k := 1; k <= order; k++ {
		arg := 2 * math.Pi * float64(k) * epochDays / period
		x.Set(row, col, math.Sin(arg))
		x.Set(row, col+1, math.Cos(arg))
		col += 2
	}
	return col
}
