package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// missing is printed in place of an absent value.
const missing = "-"

var (
	// yuan formats amounts in 亿 with thousands separators, without a unit.
	yuan = money.NewFormatter(2, ".", ",", "", "1")
	// perShare formats a cash amount per share, 3 digits like the exchange notices.
	perShare = cnyFormatter(3)
)

func cnyFormatter(fraction int) *money.Formatter {
	cny := money.GetCurrency(money.CNY)
	return money.NewFormatter(fraction, cny.Decimal, cny.Thousand, cny.Grapheme, cny.Template)
}

// fixed formats d with 2 decimals.
func fixed(d decimal.Decimal) string { return d.StringFixed(2) }

// fixedN is fixed for an optional value.
func fixedN(d decimal.NullDecimal) string {
	if !d.Valid {
		return missing
	}
	return fixed(d.Decimal)
}

// percent formats d as a percentage with 2 decimals.
func percent(d decimal.Decimal) string { return d.StringFixed(2) + "%" }

func percentN(d decimal.NullDecimal) string {
	if !d.Valid {
		return missing
	}
	return percent(d.Decimal)
}

// signedPercent is percent with an explicit sign for gains.
func signedPercent(d decimal.Decimal) string {
	if d.Round(2).IsPositive() {
		return "+" + percent(d)
	}
	return percent(d)
}

func signedPercentN(d decimal.NullDecimal) string {
	if !d.Valid {
		return missing
	}
	return signedPercent(d.Decimal)
}

// format renders d through f after rounding it to the formatter's fraction.
func format(f *money.Formatter, d decimal.Decimal) string {
	return f.Format(d.Shift(int32(f.Fraction)).Round(0).IntPart())
}

// amountN formats a large amount already expressed in 亿.
func amountN(d decimal.NullDecimal) string {
	if !d.Valid {
		return missing
	}
	return format(yuan, d.Decimal)
}
