package bankreport

import (
	"context"
	"slices"

	"github.com/etnz/bankreport/date"
)

// FetchQuotes retrieves the daily bars of every instrument of reg on a trading day,
// in one batched call, ordered by percentage change, best first.
func FetchQuotes(ctx context.Context, p QuoteSource, reg Registry, on date.Date) ([]QuoteRecord, error) {
	rows, err := p.Quotes(ctx, reg.IDs(), on, on)
	if err != nil {
		return nil, &FetchError{Section: SectionQuotes, Err: err}
	}
	kept := make([]QuoteRecord, 0, len(rows))
	for _, r := range rows {
		if reg.Contains(r.InstrumentID) && r.TradeDate == on {
			kept = append(kept, r)
		}
	}
	slices.SortStableFunc(kept, func(a, b QuoteRecord) int {
		if c := descending(a.PctChange, b.PctChange); c != 0 {
			return c
		}
		return reg.index(a.InstrumentID) - reg.index(b.InstrumentID)
	})
	return kept, nil
}
