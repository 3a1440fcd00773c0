package bankreport

import (
	"context"
	"fmt"
	"slices"

	"github.com/etnz/bankreport/date"
	"github.com/shopspring/decimal"
)

// fakeProvider is an in-memory Provider. Calls are recorded in calls.
type fakeProvider struct {
	open        []date.Date
	calendarErr error

	valuations   []ValuationRecord
	valuationErr error

	quotes    []QuoteRecord
	quotesErr error

	dividends    map[string][]DividendRecord
	dividendErrs map[string]error

	// indicators and indicatorErrs are keyed by id then period key.
	indicators    map[string]map[string][]FundamentalRecord
	indicatorErrs map[string]map[string]error

	calls []string
}

var _ Provider = (*fakeProvider)(nil)

func (f *fakeProvider) OpenDays(ctx context.Context, exchange string, from, to date.Date) ([]date.Date, error) {
	f.calls = append(f.calls, fmt.Sprintf("trade_cal %s %s", from.Compact(), to.Compact()))
	if f.calendarErr != nil {
		return nil, f.calendarErr
	}
	var days []date.Date
	for _, d := range f.open {
		if !d.Before(from) && !d.After(to) {
			days = append(days, d)
		}
	}
	return days, nil
}

func (f *fakeProvider) Valuations(ctx context.Context, ids []string, on date.Date) ([]ValuationRecord, error) {
	f.calls = append(f.calls, "daily_basic")
	if f.valuationErr != nil {
		return nil, f.valuationErr
	}
	return slices.Clone(f.valuations), nil
}

func (f *fakeProvider) Quotes(ctx context.Context, ids []string, from, to date.Date) ([]QuoteRecord, error) {
	f.calls = append(f.calls, fmt.Sprintf("daily %d %s %s", len(ids), from.Compact(), to.Compact()))
	if f.quotesErr != nil {
		return nil, f.quotesErr
	}
	var rows []QuoteRecord
	for _, q := range f.quotes {
		if slices.Contains(ids, q.InstrumentID) && !q.TradeDate.Before(from) && !q.TradeDate.After(to) {
			rows = append(rows, q)
		}
	}
	return rows, nil
}

func (f *fakeProvider) Dividends(ctx context.Context, id string) ([]DividendRecord, error) {
	f.calls = append(f.calls, "dividend "+id)
	if err := f.dividendErrs[id]; err != nil {
		return nil, err
	}
	return slices.Clone(f.dividends[id]), nil
}

func (f *fakeProvider) Indicators(ctx context.Context, id string, period date.ReportingPeriod) ([]FundamentalRecord, error) {
	f.calls = append(f.calls, "fina_indicator "+id+" "+period.Key())
	if err := f.indicatorErrs[id][period.Key()]; err != nil {
		return nil, err
	}
	return slices.Clone(f.indicators[id][period.Key()]), nil
}

// dec parses a decimal, panicking on malformed test input.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// nd is a present NullDecimal.
func nd(s string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(s)) }

func valuation(id string, on date.Date, totalMV string) ValuationRecord {
	return ValuationRecord{
		InstrumentID:     id,
		TradeDate:        on,
		Close:            nd("5.5"),
		TotalMarketValue: nd(totalMV),
	}
}

func quote(id string, on date.Date, close, pct string) QuoteRecord {
	return QuoteRecord{InstrumentID: id, TradeDate: on, Close: nd(close), PctChange: nd(pct), Amount: nd("123456")}
}

func cashDividend(year int, cash string) DividendRecord {
	r := DividendRecord{PeriodEnd: date.New(year, 12, 31), Progress: "实施"}
	if cash != "" {
		r.CashDividendPerShare = nd(cash)
	}
	return r
}

// smallRegistry has two instruments to keep fixtures short.
var smallRegistry = Registry{
	{ID: "601398.SH", Name: "工商银行"},
	{ID: "601939.SH", Name: "建设银行"},
}
