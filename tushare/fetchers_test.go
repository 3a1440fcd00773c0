package tushare

import (
	"context"
	"testing"

	"github.com/etnz/bankreport/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDays(t *testing.T) {
	f := &fakeServer{answers: map[string]string{
		"trade_cal": `{"code": 0, "msg": "", "data": {"fields": ["exchange", "cal_date", "is_open"],
			"items": [["SSE", "20250704", 1], ["SSE", "20250705", 0]]}}`,
	}}
	c := newTestClient(t, f)
	got, err := c.OpenDays(context.Background(), "SSE", date.New(2025, 7, 4), date.New(2025, 7, 5))
	require.NoError(t, err)
	assert.Equal(t, []date.Date{date.New(2025, 7, 4)}, got)
	assert.Equal(t, map[string]string{"exchange": "SSE", "start_date": "20250704", "end_date": "20250705", "is_open": "1"}, f.requests[0].Params)
}

func TestValuations(t *testing.T) {
	f := &fakeServer{answers: map[string]string{
		"daily_basic": `{"code": 0, "msg": "", "data": {
			"fields": ["ts_code", "trade_date", "close", "pe_ttm", "pb", "dv_ttm", "total_mv", "circ_mv"],
			"items": [
				["601398.SH", "20250704", 7.2, 6.9, 0.69, 4.21, 256611842.1, 193563547.4],
				["601939.SH", "20250704", 9.1, null, 0.72, null, 227515466.5, 8876123.2]
			]}}`,
	}}
	c := newTestClient(t, f)
	got, err := c.Valuations(context.Background(), []string{"601398.SH", "601939.SH"}, date.Date{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "601398.SH,601939.SH", f.requests[0].Params["ts_code"])
	assert.Equal(t, "", f.requests[0].Params["trade_date"])

	icbc := got[0]
	assert.Equal(t, date.New(2025, 7, 4), icbc.TradeDate)
	assert.Equal(t, "256611842.1", icbc.TotalMarketValue.Decimal.String(), "numbers are read exactly")
	assert.Equal(t, "4.21", icbc.DividendYieldTTM.Decimal.String())

	assert.False(t, got[1].PETTM.Valid)
	assert.False(t, got[1].DividendYieldTTM.Valid)
	assert.True(t, got[1].PB.Valid)
}

func TestQuotes(t *testing.T) {
	answer := `{"code": 0, "msg": "", "data": {
		"fields": ["ts_code", "trade_date", "open", "high", "low", "close", "pct_chg", "amount"],
		"items": [["601398.SH", "20250704", 7.12, 7.24, 7.1, 7.2, 1.12, 2451763.862]]}}`
	testCases := []struct {
		name     string
		from, to date.Date
		want     map[string]string
	}{
		{
			name: "single day",
			from: date.New(2025, 7, 4), to: date.New(2025, 7, 4),
			want: map[string]string{"ts_code": "601398.SH", "trade_date": "20250704"},
		},
		{
			name: "range",
			from: date.New(2025, 1, 1), to: date.New(2025, 7, 4),
			want: map[string]string{"ts_code": "601398.SH", "start_date": "20250101", "end_date": "20250704"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeServer{answers: map[string]string{"daily": answer}}
			got, err := newTestClient(t, f).Quotes(context.Background(), []string{"601398.SH"}, tc.from, tc.to)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tc.want, f.requests[0].Params)
			assert.Equal(t, "1.12", got[0].PctChange.Decimal.String())
			assert.Equal(t, "2451763.862", got[0].Amount.Decimal.String())
		})
	}
}

func TestDividends(t *testing.T) {
	f := &fakeServer{answers: map[string]string{
		"dividend": `{"code": 0, "msg": "", "data": {
			"fields": ["ts_code", "end_date", "div_proc", "cash_div_tax"],
			"items": [
				["601398.SH", "20241231", "预案", 0.1646],
				["601398.SH", "20240630", "实施", 0.1434],
				["601398.SH", null, "实施", null]
			]}}`,
	}}
	got, err := newTestClient(t, f).Dividends(context.Background(), "601398.SH")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, date.New(2024, 12, 31), got[0].PeriodEnd)
	assert.Equal(t, "预案", got[0].Progress)
	assert.Equal(t, "0.1646", got[0].CashDividendPerShare.Decimal.String())
	assert.True(t, got[2].PeriodEnd.IsZero())
	assert.False(t, got[2].CashDividendPerShare.Valid)
}

func TestIndicators(t *testing.T) {
	testCases := []struct {
		name        string
		answer      string
		wantDiluted string
		wantMargin  string
	}{
		{
			name: "current fields",
			answer: `{"code": 0, "msg": "", "data": {
				"fields": ["ts_code", "end_date", "roe", "roe_dt", "netprofit_margin", "debt_to_assets"],
				"items": [["601398.SH", "20241231", 9.88, 9.79, 42.53, 91.97]]}}`,
			wantDiluted: "9.79",
			wantMargin:  "42.53",
		},
		{
			name: "legacy diluted name and nulls",
			answer: `{"code": 0, "msg": "", "data": {
				"fields": ["ts_code", "end_date", "roe", "roe_diluted", "netprofit_margin", "debt_to_assets"],
				"items": [["601398.SH", "20241231", 9.88, 9.5, null, 91.97]]}}`,
			wantDiluted: "9.5",
			wantMargin:  "0",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeServer{answers: map[string]string{"fina_indicator": tc.answer}}
			period := date.AnnualReport(2024)
			got, err := newTestClient(t, f).Indicators(context.Background(), "601398.SH", period)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "20241231", f.requests[0].Params["period"])
			assert.Equal(t, period, got[0].Period)
			assert.Equal(t, tc.wantDiluted, got[0].ROEDiluted.String())
			assert.Equal(t, tc.wantMargin, got[0].NetProfitMargin.String())
		})
	}
}
