package bankreport

import (
	"github.com/etnz/bankreport/date"
	"github.com/shopspring/decimal"
)

// Provider unit conversions to 亿 (1e8 yuan).
var (
	// WanPerYi converts market values quoted in 万元.
	WanPerYi = decimal.NewFromInt(10_000)
	// QianPerYi converts turnover quoted in 千元.
	QianPerYi = decimal.NewFromInt(100_000)
)

var hundred = decimal.NewFromInt(100)

// ValuationRecord holds the daily valuation metrics of an instrument.
// Market values are in 万元 as delivered by the provider.
type ValuationRecord struct {
	InstrumentID           string
	TradeDate              date.Date
	Close                  decimal.NullDecimal
	PETTM                  decimal.NullDecimal
	PB                     decimal.NullDecimal
	DividendYieldTTM       decimal.NullDecimal // percent
	TotalMarketValue       decimal.NullDecimal
	CirculatingMarketValue decimal.NullDecimal
}

// TotalMarketValueYi is the total market value in 亿.
func (v ValuationRecord) TotalMarketValueYi() decimal.NullDecimal {
	return divide(v.TotalMarketValue, WanPerYi)
}

// CirculatingMarketValueYi is the free float market value in 亿.
func (v ValuationRecord) CirculatingMarketValueYi() decimal.NullDecimal {
	return divide(v.CirculatingMarketValue, WanPerYi)
}

// QuoteRecord is the daily bar of an instrument. Amount is in 千元.
type QuoteRecord struct {
	InstrumentID string
	TradeDate    date.Date
	Open         decimal.NullDecimal
	High         decimal.NullDecimal
	Low          decimal.NullDecimal
	Close        decimal.NullDecimal
	PctChange    decimal.NullDecimal
	Amount       decimal.NullDecimal
}

// AmountYi is the turnover in 亿.
func (q QuoteRecord) AmountYi() decimal.NullDecimal { return divide(q.Amount, QianPerYi) }

// DividendRecord is one distribution plan row.
type DividendRecord struct {
	InstrumentID         string
	PeriodEnd            date.Date // fiscal period the dividend relates to
	CashDividendPerShare decimal.NullDecimal
	Progress             string // plan, shareholder approval, implemented...
}

// FundamentalRecord holds the ratios of one financial statement, in percent.
// Missing ratios are zero.
type FundamentalRecord struct {
	InstrumentID    string
	Period          date.ReportingPeriod
	ROE             decimal.Decimal
	ROEDiluted      decimal.Decimal
	NetProfitMargin decimal.Decimal
	DebtToAssets    decimal.Decimal
}

// YtdRecord is the price change since the first day of the year.
type YtdRecord struct {
	InstrumentID string
	StartClose   decimal.Decimal
	LatestClose  decimal.Decimal
	PctChange    decimal.Decimal
}

func divide(v decimal.NullDecimal, by decimal.Decimal) decimal.NullDecimal {
	if !v.Valid {
		return v
	}
	return decimal.NewNullDecimal(v.Decimal.Div(by))
}

// descending orders a and b, with null values last. It returns 0 on ties.
func descending(a, b decimal.NullDecimal) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return 1
	case !b.Valid:
		return -1
	}
	return b.Decimal.Cmp(a.Decimal)
}
