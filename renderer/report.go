// Package renderer turns a bankreport.Report into markdown.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/bankreport"
	md "github.com/nao1215/markdown"
)

// Source credits the data provider at the end of the report.
const Source = "source: Tushare Pro"

// ReportMarkdown renders the sections included in r, in order. A section whose
// data could not be fetched is rendered as a message explaining why.
func ReportMarkdown(r *bankreport.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Bank stocks report")
	paragraph(doc, fmt.Sprintf("Generated on %s for %d instruments, %s calendar.", r.Today, len(r.Registry), r.Exchange))

	for _, s := range r.Sections {
		switch s {
		case bankreport.SectionValuation:
			valuation(doc, r)
		case bankreport.SectionQuotes:
			quotes(doc, r)
		case bankreport.SectionDividends:
			dividends(doc, r)
		case bankreport.SectionFundamentals:
			fundamentals(doc, r)
		case bankreport.SectionYTD:
			ytd(doc, r)
		}
	}

	paragraph(doc, Source)
	return doc.String() + "\n"
}

// paragraph appends text as its own block.
func paragraph(doc *md.Markdown, text string) {
	doc.PlainText("")
	doc.PlainText(text)
}

func heading(doc *md.Markdown, title string) {
	doc.PlainText("")
	doc.H2(title)
}

func table(doc *md.Markdown, t md.TableSet) {
	paragraph(doc, alignedTable(t))
}

func valuation(doc *md.Markdown, r *bankreport.Report) {
	heading(doc, "Valuation")
	switch {
	case r.ValuationErr != nil:
		paragraph(doc, fmt.Sprintf("valuation data unavailable: %v", r.ValuationErr))
		return
	case len(r.Valuation) == 0:
		paragraph(doc, "no valuation data available")
		return
	}
	paragraph(doc, fmt.Sprintf("As of %s, market values in 亿元.", r.Valuation[0].TradeDate))
	t := md.TableSet{
		Header:    []string{"Name", "Close", "PE TTM", "PB", "Dividend yield", "Total MV", "Float MV"},
		Alignment: leftThenRight(7),
	}
	for _, v := range r.Valuation {
		t.Rows = append(t.Rows, []string{
			r.Registry.Name(v.InstrumentID),
			fixedN(v.Close),
			fixedN(v.PETTM),
			fixedN(v.PB),
			percentN(v.DividendYieldTTM),
			amountN(v.TotalMarketValueYi()),
			amountN(v.CirculatingMarketValueYi()),
		})
	}
	table(doc, t)
}

func quotes(doc *md.Markdown, r *bankreport.Report) {
	heading(doc, "Quotes")
	switch {
	case r.CalendarErr != nil:
		paragraph(doc, fmt.Sprintf("quotes skipped, no trading date: %v", r.CalendarErr))
		return
	case r.QuotesErr != nil:
		paragraph(doc, fmt.Sprintf("quote data unavailable: %v", r.QuotesErr))
		return
	case len(r.Quotes) == 0:
		paragraph(doc, fmt.Sprintf("no quote data available for %s", r.TradingDate))
		return
	}
	paragraph(doc, fmt.Sprintf("Trading date %s, turnover in 亿元.", r.TradingDate))
	t := md.TableSet{
		Header:    []string{"Name", "Open", "High", "Low", "Close", "Change", "Turnover"},
		Alignment: leftThenRight(7),
	}
	for _, q := range r.Quotes {
		t.Rows = append(t.Rows, []string{
			r.Registry.Name(q.InstrumentID),
			fixedN(q.Open),
			fixedN(q.High),
			fixedN(q.Low),
			fixedN(q.Close),
			signedPercentN(q.PctChange),
			amountN(q.AmountYi()),
		})
	}
	table(doc, t)
}

func dividends(doc *md.Markdown, r *bankreport.Report) {
	heading(doc, "Dividends")
	paragraph(doc, fmt.Sprintf("Cash dividends per share among the last %d distributions.", bankreport.RecentDividendRows))
	for _, res := range r.Dividends {
		doc.PlainText("")
		doc.H3(fmt.Sprintf("%s (%s)", r.Registry.Name(res.InstrumentID), res.InstrumentID))
		switch {
		case !res.OK():
			paragraph(doc, fmt.Sprintf("dividend data unavailable: %v", res.Err))
		case len(res.Value) == 0:
			paragraph(doc, "no dividend data")
		default:
			items := make([]string, 0, len(res.Value))
			for _, d := range res.Value {
				items = append(items, dividendLine(d))
			}
			doc.PlainText("")
			doc.BulletList(items...)
		}
	}
}

// dividendLine reads like "2024: 0.165 元 per share (实施)".
func dividendLine(d bankreport.DividendRecord) string {
	year := "n/a"
	if !d.PeriodEnd.IsZero() {
		year = fmt.Sprint(d.PeriodEnd.Year())
	}
	line := fmt.Sprintf("%s: %s per share", year, format(perShare, d.CashDividendPerShare.Decimal))
	if d.Progress != "" {
		line += fmt.Sprintf(" (%s)", d.Progress)
	}
	return line
}

func fundamentals(doc *md.Markdown, r *bankreport.Report) {
	heading(doc, "Fundamentals")
	if len(r.Fundamentals) == 0 {
		paragraph(doc, "no fundamentals data available")
		return
	}
	t := md.TableSet{
		Header:    []string{"Name", "Period", "ROE", "ROE diluted", "Net margin", "Debt to assets"},
		Alignment: leftThenRight(6),
	}
	for _, f := range r.Fundamentals {
		t.Rows = append(t.Rows, []string{
			r.Registry.Name(f.InstrumentID),
			f.Period.Label(),
			percent(f.ROE),
			percent(f.ROEDiluted),
			percent(f.NetProfitMargin),
			percent(f.DebtToAssets),
		})
	}
	table(doc, t)
}

func ytd(doc *md.Markdown, r *bankreport.Report) {
	heading(doc, "Year to date")
	switch {
	case r.CalendarErr != nil:
		paragraph(doc, fmt.Sprintf("year to date skipped, no trading date: %v", r.CalendarErr))
		return
	case len(r.YTD) == 0:
		paragraph(doc, "no year to date data available")
		return
	}
	paragraph(doc, fmt.Sprintf("From the close of %s to the close of %s.", bankreport.YearStart(r.Today), r.TradingDate))
	t := md.TableSet{
		Header:    []string{"Name", "Start", "Latest", "Change"},
		Alignment: leftThenRight(4),
	}
	for _, y := range r.YTD {
		t.Rows = append(t.Rows, []string{
			r.Registry.Name(y.InstrumentID),
			fixed(y.StartClose),
			fixed(y.LatestClose),
			signedPercent(y.PctChange),
		})
	}
	table(doc, t)
}
