package tushare

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/bankreport"
	"github.com/etnz/bankreport/date"
	"github.com/shopspring/decimal"
)

// This file maps the endpoints used by the report to bankreport records.

var _ bankreport.Provider = (*Client)(nil)

// OpenDays returns the open days of exchange between from and to.
func (c *Client) OpenDays(ctx context.Context, exchange string, from, to date.Date) ([]date.Date, error) {
	// https://tushare.pro/document/2?doc_id=26
	// {"api_name": "trade_cal", "params": {"exchange": "SSE", "start_date": "20250704", "end_date": "20250704", "is_open": "1"}}
	// fields: ["exchange", "cal_date", "is_open", "pretrade_date"]
	// items:  [["SSE", "20250704", 1, "20250703"]]
	t, err := c.call(ctx, "trade_cal", map[string]string{
		"exchange":   exchange,
		"start_date": from.Compact(),
		"end_date":   to.Compact(),
		"is_open":    "1",
	}, []string{"exchange", "cal_date", "is_open"})
	if err != nil {
		return nil, err
	}
	days := make([]date.Date, 0, t.len())
	for _, r := range t.rows() {
		if r.has("is_open") && r.str("is_open") != "1" {
			continue
		}
		d, err := r.date("cal_date")
		if err != nil {
			return nil, fmt.Errorf("trade_cal: %w", err)
		}
		days = append(days, d)
	}
	return days, nil
}

// Valuations returns the daily_basic metrics of ids. A zero on leaves the trade
// date blank, and the API answers with its most recent rows.
func (c *Client) Valuations(ctx context.Context, ids []string, on date.Date) ([]bankreport.ValuationRecord, error) {
	// https://tushare.pro/document/2?doc_id=32
	// fields: ["ts_code", "trade_date", "close", "pe_ttm", "pb", "dv_ttm", "total_mv", "circ_mv"]
	// items:  [["601398.SH", "20250704", 7.2, 6.9, 0.69, 4.21, 256611842.1, 193563547.4]]
	// total_mv and circ_mv are in 万元, dv_ttm is a percentage.
	params := map[string]string{"ts_code": strings.Join(ids, ","), "trade_date": ""}
	if !on.IsZero() {
		params["trade_date"] = on.Compact()
	}
	t, err := c.call(ctx, "daily_basic", params,
		[]string{"ts_code", "trade_date", "close", "pe_ttm", "pb", "dv_ttm", "total_mv", "circ_mv"})
	if err != nil {
		return nil, err
	}
	records := make([]bankreport.ValuationRecord, 0, t.len())
	for _, r := range t.rows() {
		day, err := r.date("trade_date")
		if err != nil {
			return nil, fmt.Errorf("daily_basic: %w", err)
		}
		records = append(records, bankreport.ValuationRecord{
			InstrumentID:           r.str("ts_code"),
			TradeDate:              day,
			Close:                  r.dec("close"),
			PETTM:                  r.dec("pe_ttm"),
			PB:                     r.dec("pb"),
			DividendYieldTTM:       r.dec("dv_ttm"),
			TotalMarketValue:       r.dec("total_mv"),
			CirculatingMarketValue: r.dec("circ_mv"),
		})
	}
	return records, nil
}

// Quotes returns the daily bars of ids between from and to.
func (c *Client) Quotes(ctx context.Context, ids []string, from, to date.Date) ([]bankreport.QuoteRecord, error) {
	// https://tushare.pro/document/2?doc_id=27
	// fields: ["ts_code", "trade_date", "open", "high", "low", "close", "pct_chg", "amount"]
	// items:  [["601398.SH", "20250704", 7.12, 7.24, 7.1, 7.2, 1.12, 2451763.862]]
	// amount is in 千元.
	params := map[string]string{"ts_code": strings.Join(ids, ",")}
	if from == to {
		params["trade_date"] = from.Compact()
	} else {
		params["start_date"] = from.Compact()
		params["end_date"] = to.Compact()
	}
	t, err := c.call(ctx, "daily", params,
		[]string{"ts_code", "trade_date", "open", "high", "low", "close", "pct_chg", "amount"})
	if err != nil {
		return nil, err
	}
	records := make([]bankreport.QuoteRecord, 0, t.len())
	for _, r := range t.rows() {
		on, err := r.date("trade_date")
		if err != nil {
			return nil, fmt.Errorf("daily: %w", err)
		}
		records = append(records, bankreport.QuoteRecord{
			InstrumentID: r.str("ts_code"),
			TradeDate:    on,
			Open:         r.dec("open"),
			High:         r.dec("high"),
			Low:          r.dec("low"),
			Close:        r.dec("close"),
			PctChange:    r.dec("pct_chg"),
			Amount:       r.dec("amount"),
		})
	}
	return records, nil
}

// Dividends returns the distribution history of id, as ordered by the API (most
// recent first).
func (c *Client) Dividends(ctx context.Context, id string) ([]bankreport.DividendRecord, error) {
	// https://tushare.pro/document/2?doc_id=103
	// fields: ["ts_code", "end_date", "div_proc", "cash_div_tax"]
	// items:  [["601398.SH", "20241231", "预案", 0.1646],
	//          ["601398.SH", "20240630", "实施", 0.1434]]
	t, err := c.call(ctx, "dividend", map[string]string{"ts_code": id},
		[]string{"ts_code", "end_date", "div_proc", "cash_div_tax"})
	if err != nil {
		return nil, err
	}
	records := make([]bankreport.DividendRecord, 0, t.len())
	for _, r := range t.rows() {
		end, err := r.date("end_date")
		if err != nil {
			return nil, fmt.Errorf("dividend: %w", err)
		}
		records = append(records, bankreport.DividendRecord{
			InstrumentID:         r.str("ts_code"),
			PeriodEnd:            end,
			CashDividendPerShare: r.dec("cash_div_tax"),
			Progress:             r.str("div_proc"),
		})
	}
	return records, nil
}

// Indicators returns the financial ratios of id for period. Missing ratios are zero.
func (c *Client) Indicators(ctx context.Context, id string, period date.ReportingPeriod) ([]bankreport.FundamentalRecord, error) {
	// https://tushare.pro/document/2?doc_id=79
	// fields: ["ts_code", "end_date", "roe", "roe_dt", "netprofit_margin", "debt_to_assets"]
	// items:  [["601398.SH", "20241231", 9.88, 9.79, 42.53, 91.97]]
	// older answers name the diluted ROE roe_diluted.
	t, err := c.call(ctx, "fina_indicator", map[string]string{"ts_code": id, "period": period.Key()},
		[]string{"ts_code", "end_date", "roe", "roe_dt", "netprofit_margin", "debt_to_assets"})
	if err != nil {
		return nil, err
	}
	records := make([]bankreport.FundamentalRecord, 0, t.len())
	for _, r := range t.rows() {
		diluted := r.dec("roe_dt")
		if !r.has("roe_dt") {
			diluted = r.dec("roe_diluted")
		}
		records = append(records, bankreport.FundamentalRecord{
			InstrumentID:    r.str("ts_code"),
			Period:          period,
			ROE:             orZero(r.dec("roe")),
			ROEDiluted:      orZero(diluted),
			NetProfitMargin: orZero(r.dec("netprofit_margin")),
			DebtToAssets:    orZero(r.dec("debt_to_assets")),
		})
	}
	return records, nil
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
