package bankreport

import (
	"context"

	"github.com/etnz/bankreport/date"
)

// Calendar lists the open days of an exchange.
type Calendar interface {
	// OpenDays returns the trading days of exchange between from and to, both included.
	OpenDays(ctx context.Context, exchange string, from, to date.Date) ([]date.Date, error)
}

// ValuationSource returns daily valuation metrics.
type ValuationSource interface {
	// Valuations returns the metrics of ids on a given day. A zero day asks for
	// whatever the provider has, possibly across several days.
	Valuations(ctx context.Context, ids []string, on date.Date) ([]ValuationRecord, error)
}

// QuoteSource returns daily bars.
type QuoteSource interface {
	// Quotes returns the daily bars of ids between from and to, both included.
	Quotes(ctx context.Context, ids []string, from, to date.Date) ([]QuoteRecord, error)
}

// DividendSource returns the distribution history of an instrument, most recent first.
type DividendSource interface {
	Dividends(ctx context.Context, id string) ([]DividendRecord, error)
}

// IndicatorSource returns the financial ratios of an instrument for a reporting period.
type IndicatorSource interface {
	Indicators(ctx context.Context, id string, period date.ReportingPeriod) ([]FundamentalRecord, error)
}

// Provider is a financial data provider serving every report section.
type Provider interface {
	Calendar
	ValuationSource
	QuoteSource
	DividendSource
	IndicatorSource
}
