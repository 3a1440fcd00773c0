package bankreport

import "context"

// RecentDividendRows is the number of provider rows examined per instrument.
const RecentDividendRows = 5

// FetchDividends retrieves the dividend history of each instrument of reg, one call
// per instrument, in registry order. A failure only affects its own instrument.
func FetchDividends(ctx context.Context, p DividendSource, reg Registry) []Result[[]DividendRecord] {
	results := make([]Result[[]DividendRecord], 0, len(reg))
	for _, inst := range reg {
		rows, err := p.Dividends(ctx, inst.ID)
		if err != nil {
			results = append(results, Result[[]DividendRecord]{
				InstrumentID: inst.ID,
				Err:          &FetchError{Section: SectionDividends, InstrumentID: inst.ID, Err: err},
			})
			continue
		}
		own := make([]DividendRecord, 0, len(rows))
		for _, r := range rows {
			if r.InstrumentID == "" || r.InstrumentID == inst.ID {
				own = append(own, r)
			}
		}
		results = append(results, Result[[]DividendRecord]{InstrumentID: inst.ID, Value: RecentCashDividends(own)})
	}
	return results
}

// RecentCashDividends looks at the first RecentDividendRows rows, as ordered by the
// provider, and keeps those paying a strictly positive cash dividend.
func RecentCashDividends(rows []DividendRecord) []DividendRecord {
	if len(rows) > RecentDividendRows {
		rows = rows[:RecentDividendRows]
	}
	cash := make([]DividendRecord, 0, len(rows))
	for _, r := range rows {
		if r.CashDividendPerShare.Valid && r.CashDividendPerShare.Decimal.IsPositive() {
			cash = append(cash, r)
		}
	}
	return cash
}
