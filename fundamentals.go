package bankreport

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/bankreport/date"
)

// ErrNoData is returned when a call succeeded but had nothing to return.
var ErrNoData = errors.New("no data")

// CandidatePeriods returns the reporting periods worth asking for on today,
// preferred first: last year's annual report, then this year's third quarter.
//
// Only these two are tried, so between January and the publication of the annual
// report an instrument may have no fundamentals at all.
func CandidatePeriods(today date.Date) []date.ReportingPeriod {
	return []date.ReportingPeriod{
		date.AnnualReport(today.Year() - 1),
		date.ThirdQuarterReport(today.Year()),
	}
}

// FirstSuccess calls try on each candidate in order and returns the first value
// obtained. Errors do not stop the search. If no candidate succeeds the returned
// error joins every attempt's error; try reports an empty answer with ErrNoData.
func FirstSuccess[C, T any](ctx context.Context, candidates []C, try func(context.Context, C) (T, error)) (T, error) {
	var zero T
	var errs []error
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		v, err := try(ctx, c)
		if err == nil {
			return v, nil
		}
		errs = append(errs, fmt.Errorf("%v: %w", c, err))
	}
	if len(errs) == 0 {
		return zero, ErrNoData
	}
	return zero, errors.Join(errs...)
}

// FetchFundamentals retrieves the most relevant financial ratios of each instrument.
// Instruments with no data for any candidate period are returned with an error.
func FetchFundamentals(ctx context.Context, p IndicatorSource, reg Registry, today date.Date) []Result[FundamentalRecord] {
	periods := CandidatePeriods(today)
	results := make([]Result[FundamentalRecord], 0, len(reg))
	for _, inst := range reg {
		rec, err := FirstSuccess(ctx, periods, func(ctx context.Context, period date.ReportingPeriod) (FundamentalRecord, error) {
			rows, err := p.Indicators(ctx, inst.ID, period)
			if err != nil {
				return FundamentalRecord{}, err
			}
			if len(rows) == 0 {
				return FundamentalRecord{}, ErrNoData
			}
			rec := rows[0]
			rec.InstrumentID = inst.ID
			rec.Period = period
			return rec, nil
		})
		if err != nil {
			err = &FetchError{Section: SectionFundamentals, InstrumentID: inst.ID, Err: err}
		}
		results = append(results, Result[FundamentalRecord]{InstrumentID: inst.ID, Value: rec, Err: err})
	}
	return results
}
