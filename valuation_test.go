package bankreport

import (
	"context"
	"errors"
	"testing"

	"github.com/etnz/bankreport/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids[T any](rows []T, id func(T) string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = id(r)
	}
	return out
}

func valuationIDs(rows []ValuationRecord) []string {
	return ids(rows, func(r ValuationRecord) string { return r.InstrumentID })
}

func TestLatestValuation(t *testing.T) {
	reg := BankStocks()
	d1, d2 := date.New(2025, 7, 3), date.New(2025, 7, 4)
	testCases := []struct {
		name string
		rows []ValuationRecord
		want []string
	}{
		{
			name: "keeps only the global latest date",
			rows: []ValuationRecord{
				valuation("601398.SH", d1, "200"),
				valuation("601939.SH", d2, "150"),
				valuation("601288.SH", d2, "180"),
				valuation("601398.SH", d2, "210"),
			},
			want: []string{"601398.SH", "601288.SH", "601939.SH"},
		},
		{
			name: "stale instrument dropped",
			rows: []ValuationRecord{
				valuation("601398.SH", d1, "999"),
				valuation("601939.SH", d2, "1"),
			},
			want: []string{"601939.SH"},
		},
		{
			name: "unknown instruments dropped",
			rows: []ValuationRecord{
				valuation("000001.SZ", d2, "500"),
				valuation("601988.SH", d2, "100"),
			},
			want: []string{"601988.SH"},
		},
		{
			name: "ties keep registry order and missing values go last",
			rows: []ValuationRecord{
				{InstrumentID: "601658.SH", TradeDate: d2},
				valuation("601328.SH", d2, "100"),
				valuation("601939.SH", d2, "100"),
			},
			want: []string{"601939.SH", "601328.SH", "601658.SH"},
		},
		{name: "empty", want: []string{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := LatestValuation(tc.rows, reg)
			assert.Equal(t, tc.want, valuationIDs(got))
			for _, r := range got {
				assert.Equal(t, got[0].TradeDate, r.TradeDate)
			}
		})
	}
}

func TestFetchValuation(t *testing.T) {
	on := date.New(2025, 7, 4)
	p := &fakeProvider{valuations: []ValuationRecord{
		valuation("601939.SH", on, "185000000"),
		valuation("601398.SH", on, "250000000"),
	}}
	got, err := FetchValuation(context.Background(), p, smallRegistry)
	require.NoError(t, err)
	assert.Equal(t, []string{"601398.SH", "601939.SH"}, valuationIDs(got))
	assert.Equal(t, []string{"daily_basic"}, p.calls, "valuation is a single batched call")
	assert.True(t, got[0].TotalMarketValueYi().Decimal.Equal(dec("25000")))
}

func TestFetchValuation_Error(t *testing.T) {
	boom := errors.New("http 500")
	_, err := FetchValuation(context.Background(), &fakeProvider{valuationErr: boom}, smallRegistry)
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, SectionValuation, fe.Section)
	assert.ErrorIs(t, err, boom)
}

func TestMarketValueYi(t *testing.T) {
	v := ValuationRecord{TotalMarketValue: nd("218765432.1"), CirculatingMarketValue: nd("10000")}
	assert.Equal(t, "21876.54321", v.TotalMarketValueYi().Decimal.String())
	assert.Equal(t, "1", v.CirculatingMarketValueYi().Decimal.String())
	assert.False(t, ValuationRecord{}.TotalMarketValueYi().Valid)
}
