package seasonal

import (
	"fmt"
	"strings"

	"github.com/rickar/cal/v2"
)

// Mode selects whether a seasonal component is fit.
type Mode string

const (
	ModeAuto Mode = "auto"
	ModeOn   Mode = "on"
	ModeOff  Mode = "off"
)

// ParseMode maps a config string onto a Mode, defaulting to auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeOn:
		return ModeOn, nil
	case ModeOff:
		return ModeOff, nil
	}
	return "", fmt.Errorf("seasonality mode %q, %w", s, ErrInvalidOptions)
}

// Options configures the components of the additive model.
type Options struct {
	// Changepoints is the maximum number of trend changepoints. It is lowered
	// automatically for short histories.
	Changepoints int
	// ChangepointRange is the fraction of history in which changepoints are placed.
	ChangepointRange float64

	Weekly      Mode
	WeeklyOrder int
	Yearly      Mode
	YearlyOrder int

	// Holidays adds one indicator regressor per holiday observed in the training range.
	Holidays []*cal.Holiday

	// Regularization is the ridge penalty applied to every non-intercept coefficient.
	Regularization float64
	// IntervalWidth is the coverage of the uncertainty band, e.g. 0.8.
	IntervalWidth float64
}

// NewDefaultOptions mirrors the usual daily-data defaults: weekly seasonality
// once two weeks are available, yearly once two years are.
func NewDefaultOptions() *Options {
	return &Options{
		Changepoints:     10,
		ChangepointRange: 0.8,
		Weekly:           ModeAuto,
		WeeklyOrder:      3,
		Yearly:           ModeAuto,
		YearlyOrder:      10,
		Regularization:   0.1,
		IntervalWidth:    0.8,
	}
}

func (o *Options) validate() error {
	if o.Changepoints < 0 {
		return fmt.Errorf("negative changepoints, %w", ErrInvalidOptions)
	}
	if o.ChangepointRange <= 0 || o.ChangepointRange > 1 {
		return fmt.Errorf("changepoint range %.2f, %w", o.ChangepointRange, ErrInvalidOptions)
	}
	if o.WeeklyOrder < 1 || o.YearlyOrder < 1 {
		return fmt.Errorf("fourier order must be positive, %w", ErrInvalidOptions)
	}
	if o.Regularization <= 0 {
		return fmt.Errorf("regularization must be positive, %w", ErrInvalidOptions)
	}
	if o.IntervalWidth <= 0 || o.IntervalWidth >= 1 {
		return fmt.Errorf("interval width %.2f, %w", o.IntervalWidth, ErrInvalidOptions)
	}
	return nil
}
