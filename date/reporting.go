package date

import (
	"fmt"
	"time"
)

// ReportingPeriod identifies a financial statement by the last day it covers.
type ReportingPeriod struct {
	End Date
}

// AnnualReport returns the reporting period of the full year y (y-12-31).
func AnnualReport(y int) ReportingPeriod {
	return ReportingPeriod{End: New(y, time.December, 31)}
}

// ThirdQuarterReport returns the reporting period of the first three quarters of y (y-09-30).
func ThirdQuarterReport(y int) ReportingPeriod {
	return ReportingPeriod{End: New(y, time.September, 30)}
}

// Quarter is the quarter (1-4) the period closes.
func (r ReportingPeriod) Quarter() int { return int(r.End.Month()-1)/3 + 1 }

// Key is the wire identifier of the period (YYYYMMDD).
func (r ReportingPeriod) Key() string { return r.End.Compact() }

// String formats the period as its closing day.
func (r ReportingPeriod) String() string { return r.End.String() }

// Label is a short human name: "2024" for annual reports, "2025-Q3" otherwise.
func (r ReportingPeriod) Label() string {
	if r.Quarter() == 4 {
		return fmt.Sprintf("%d", r.End.Year())
	}
	return fmt.Sprintf("%d-Q%d", r.End.Year(), r.Quarter())
}
