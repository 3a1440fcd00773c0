package bankreport

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/etnz/bankreport/date"
	"github.com/shopspring/decimal"
)

// YearStart is the day whose close is the reference of the year-to-date change.
// It is not adjusted to a trading day: when the market is closed that day,
// there is no reference price.
func YearStart(today date.Date) date.Date { return date.New(today.Year(), time.January, 1) }

// FetchYTD computes the year-to-date change of each instrument of reg between
// the close of YearStart(today) and the close of the trading day on.
func FetchYTD(ctx context.Context, p QuoteSource, reg Registry, today, on date.Date) []Result[YtdRecord] {
	start := YearStart(today)
	results := make([]Result[YtdRecord], 0, len(reg))
	for _, inst := range reg {
		rec, err := fetchYTD(ctx, p, inst.ID, start, on)
		if err != nil {
			err = &FetchError{Section: SectionYTD, InstrumentID: inst.ID, Err: err}
		}
		results = append(results, Result[YtdRecord]{InstrumentID: inst.ID, Value: rec, Err: err})
	}
	return results
}

func fetchYTD(ctx context.Context, p QuoteSource, id string, start, on date.Date) (YtdRecord, error) {
	first, err := closeOn(ctx, p, id, start)
	if err != nil {
		return YtdRecord{}, fmt.Errorf("start price: %w", err)
	}
	if first.IsZero() {
		return YtdRecord{}, fmt.Errorf("start price on %s is zero", start)
	}
	last, err := closeOn(ctx, p, id, on)
	if err != nil {
		return YtdRecord{}, fmt.Errorf("latest price: %w", err)
	}
	return YtdRecord{
		InstrumentID: id,
		StartClose:   first,
		LatestClose:  last,
		PctChange:    last.Sub(first).Div(first).Mul(hundred),
	}, nil
}

func closeOn(ctx context.Context, p QuoteSource, id string, on date.Date) (decimal.Decimal, error) {
	rows, err := p.Quotes(ctx, []string{id}, on, on)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if len(rows) == 0 || !rows[0].Close.Valid {
		return decimal.Decimal{}, fmt.Errorf("%s on %s: %w", id, on, ErrNoData)
	}
	return rows[0].Close.Decimal, nil
}

// SortYTD orders records by change, best first. Ties keep their order.
func SortYTD(records []YtdRecord) {
	slices.SortStableFunc(records, func(a, b YtdRecord) int { return b.PctChange.Cmp(a.PctChange) })
}
