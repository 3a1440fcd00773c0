package bankreport

import (
	"context"
	"slices"

	"github.com/etnz/bankreport/date"
)

// FetchValuation retrieves the latest valuation metrics of every instrument of reg
// in a single batched call.
func FetchValuation(ctx context.Context, p ValuationSource, reg Registry) ([]ValuationRecord, error) {
	rows, err := p.Valuations(ctx, reg.IDs(), date.Date{})
	if err != nil {
		return nil, &FetchError{Section: SectionValuation, Err: err}
	}
	return LatestValuation(rows, reg), nil
}

// LatestValuation keeps the rows dated on the most recent trade date found in rows,
// drops instruments outside reg, and orders them by total market value, largest first.
// Ties keep registry order.
//
// The cutoff is global: an instrument that did not trade on the most recent date
// is absent rather than shown with stale data.
func LatestValuation(rows []ValuationRecord, reg Registry) []ValuationRecord {
	var latest date.Date
	for _, r := range rows {
		if r.TradeDate.After(latest) {
			latest = r.TradeDate
		}
	}
	kept := make([]ValuationRecord, 0, len(reg))
	for _, r := range rows {
		if r.TradeDate == latest && reg.Contains(r.InstrumentID) {
			kept = append(kept, r)
		}
	}
	slices.SortStableFunc(kept, func(a, b ValuationRecord) int {
		if c := descending(a.TotalMarketValue, b.TotalMarketValue); c != 0 {
			return c
		}
		return reg.index(a.InstrumentID) - reg.index(b.InstrumentID)
	})
	return kept
}
