package bankreport

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/bankreport/date"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Section identifies a part of the report.
type Section int

const (
	SectionValuation Section = iota
	SectionQuotes
	SectionDividends
	SectionFundamentals
	SectionYTD
	// SectionCalendar is not rendered; it tags trading date resolution errors.
	SectionCalendar
)

// AllSections lists the rendered sections in display order.
var AllSections = []Section{SectionValuation, SectionQuotes, SectionDividends, SectionFundamentals, SectionYTD}

func (s Section) String() string {
	switch s {
	case SectionValuation:
		return "valuation"
	case SectionQuotes:
		return "quotes"
	case SectionDividends:
		return "dividends"
	case SectionFundamentals:
		return "fundamentals"
	case SectionYTD:
		return "ytd"
	case SectionCalendar:
		return "calendar"
	default:
		panic(fmt.Sprintf("unknown section %d", s))
	}
}

// ParseSection parses a section name as printed by Section.String.
func ParseSection(s string) (Section, error) {
	for _, sec := range AllSections {
		if strings.EqualFold(s, sec.String()) {
			return sec, nil
		}
	}
	if strings.EqualFold(s, SectionCalendar.String()) {
		return SectionCalendar, nil
	}
	return 0, fmt.Errorf("unknown section %q", s)
}

// dependsOnTradingDate reports whether s needs a resolved trading date.
func (s Section) dependsOnTradingDate() bool { return s == SectionQuotes || s == SectionYTD }

// Options tunes Build. Zero values select the defaults.
type Options struct {
	Registry Registry    // default BankStocks()
	Exchange string      // default DefaultExchange
	Today    date.Date   // default date.Today()
	Sections []Section   // default AllSections
	Logger   *zap.Logger // default no logging
}

func (o Options) withDefaults() Options {
	if len(o.Registry) == 0 {
		o.Registry = BankStocks()
	}
	if o.Exchange == "" {
		o.Exchange = DefaultExchange
	}
	if o.Today.IsZero() {
		o.Today = date.Today()
	}
	if len(o.Sections) == 0 {
		o.Sections = AllSections
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Report is the outcome of a pipeline run. Each section carries its own rows and
// error; an error in one section says nothing about the others.
type Report struct {
	Today    date.Date
	Exchange string
	Registry Registry
	Sections []Section

	// TradingDate is the resolved trading day; zero when CalendarErr is set or
	// when no included section needed it.
	TradingDate date.Date
	CalendarErr error

	Valuation    []ValuationRecord
	ValuationErr error

	Quotes    []QuoteRecord
	QuotesErr error

	Dividends []Result[[]DividendRecord]

	// Fundamentals holds only instruments with data, in registry order.
	Fundamentals []FundamentalRecord

	// YTD holds only instruments with both prices, best change first.
	YTD []YtdRecord
}

// Includes reports whether s was requested.
func (r *Report) Includes(s Section) bool {
	for _, sec := range r.Sections {
		if sec == s {
			return true
		}
	}
	return false
}

// Build runs every requested stage in order against p and returns the report.
// It never fails: errors are recorded in the section they belong to.
func Build(ctx context.Context, p Provider, opts Options) *Report {
	opts = opts.withDefaults()
	log := opts.Logger
	r := &Report{
		Today:    opts.Today,
		Exchange: opts.Exchange,
		Registry: opts.Registry,
		Sections: opts.Sections,
	}

	if r.needsTradingDate() {
		r.TradingDate, r.CalendarErr = ResolveTradingDate(ctx, p, opts.Exchange, opts.Today)
		if r.CalendarErr != nil {
			log.Warn("no trading date, skipping quotes and ytd", zap.Error(r.CalendarErr))
		} else {
			log.Info("trading date resolved", zap.Stringer("date", r.TradingDate))
		}
	}

	for _, s := range r.Sections {
		if s.dependsOnTradingDate() && r.CalendarErr != nil {
			continue
		}
		switch s {
		case SectionValuation:
			r.Valuation, r.ValuationErr = FetchValuation(ctx, p, opts.Registry)
			logSectionError(log, s, r.ValuationErr)
		case SectionQuotes:
			r.Quotes, r.QuotesErr = FetchQuotes(ctx, p, opts.Registry, r.TradingDate)
			logSectionError(log, s, r.QuotesErr)
		case SectionDividends:
			r.Dividends = FetchDividends(ctx, p, opts.Registry)
			logResults(log, zap.WarnLevel, r.Dividends)
		case SectionFundamentals:
			results := FetchFundamentals(ctx, p, opts.Registry, opts.Today)
			logResults(log, zap.DebugLevel, results)
			r.Fundamentals = Values(results)
		case SectionYTD:
			results := FetchYTD(ctx, p, opts.Registry, opts.Today, r.TradingDate)
			logResults(log, zap.DebugLevel, results)
			r.YTD = Values(results)
			SortYTD(r.YTD)
		}
	}
	return r
}

func (r *Report) needsTradingDate() bool {
	for _, s := range r.Sections {
		if s.dependsOnTradingDate() {
			return true
		}
	}
	return false
}

func logSectionError(log *zap.Logger, s Section, err error) {
	if err != nil {
		log.Warn("section failed", zap.Stringer("section", s), zap.Error(err))
	}
}

// logResults logs per-instrument failures at the failed level. Missing data is
// expected and only worth a debug line. Sections that leave failed instruments out
// of the report pass zap.DebugLevel.
func logResults[T any](log *zap.Logger, failed zapcore.Level, results []Result[T]) {
	for _, res := range results {
		if res.OK() {
			continue
		}
		level := failed
		if errors.Is(res.Err, ErrNoData) {
			level = zap.DebugLevel
		}
		log.Check(level, "instrument skipped").Write(zap.String("instrument", res.InstrumentID), zap.Error(res.Err))
	}
}
