// Package bankreport retrieves market data for a fixed basket of listed banks
// from a financial data provider and assembles it into a five section report:
//   - Valuation: latest close, PE, PB, dividend yield and market values.
//   - Quotes: open, high, low, close, change and turnover on the last trading day.
//   - Dividends: recent cash distributions per share for each bank.
//   - Fundamentals: ROE, net margin and leverage from the latest statement.
//   - YTD: price change since the first day of the year.
//
// The pipeline is sequential and every stage is independent: a failure in one
// stage is recorded in the Report and never prevents the next stage from
// running. Rendering lives in the renderer package and the provider client in
// the tushare package.
package bankreport
