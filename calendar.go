package bankreport

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/bankreport/date"
)

// MaxCalendarProbes is the number of days examined, the reference day included,
// before giving up on finding a trading day.
const MaxCalendarProbes = 10

// DefaultExchange is the exchange whose calendar drives the report.
const DefaultExchange = "SSE"

// ErrNoTradingDate is returned when no trading day was found in the probed window.
var ErrNoTradingDate = errors.New("no trading date found")

// ResolveTradingDate returns the most recent open day of exchange at or before ref.
//
// Days are probed one at a time, going backward from ref, at most MaxCalendarProbes
// times. A provider error interrupts the search and is returned as a *FetchError.
func ResolveTradingDate(ctx context.Context, cal Calendar, exchange string, ref date.Date) (date.Date, error) {
	for i := 0; i < MaxCalendarProbes; i++ {
		day := ref.Add(-i)
		open, err := cal.OpenDays(ctx, exchange, day, day)
		if err != nil {
			return date.Date{}, &FetchError{Section: SectionCalendar, Err: fmt.Errorf("probing %s: %w", day, err)}
		}
		for _, d := range open {
			if !d.After(ref) {
				return d, nil
			}
		}
	}
	return date.Date{}, fmt.Errorf("%w in the %d days up to %s on %s", ErrNoTradingDate, MaxCalendarProbes, ref, exchange)
}
