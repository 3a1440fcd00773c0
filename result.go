package bankreport

import "fmt"

// Result is the outcome of a per-instrument fetch: either a value or an error.
type Result[T any] struct {
	InstrumentID string
	Value        T
	Err          error
}

// OK reports whether the fetch succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

// Values returns the values of the successful results, in order.
func Values[T any](results []Result[T]) []T {
	values := make([]T, 0, len(results))
	for _, r := range results {
		if r.OK() {
			values = append(values, r.Value)
		}
	}
	return values
}

// FetchError is a provider failure in a report section.
type FetchError struct {
	Section      Section
	InstrumentID string // empty for batched calls
	Err          error
}

func (e *FetchError) Error() string {
	if e.InstrumentID == "" {
		return fmt.Sprintf("%s: %v", e.Section, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Section, e.InstrumentID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
