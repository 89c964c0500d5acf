package stockdash

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// RoundPrecision rounds v half away from zero to precision decimals.
// Rounding is done on the shortest decimal representation of v, so that
// 1.005 rounds to 1.01.
func RoundPrecision(v float64, precision int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(int32(precision)).InexactFloat64()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// FormatPercent formats a ratio as a percentage with at most two decimals:
// 0.1234 is "12.34%". A zero or NaN ratio is "".
func FormatPercent(ratio float64) string {
	if ratio == 0 || math.IsNaN(ratio) {
		return ""
	}
	return formatFloat(RoundPrecision(ratio*100, 2)) + "%"
}

// minorUnits maps the quote currencies that are hundredths of an ISO
// currency to it: London prices are in pence.
var minorUnits = map[string]string{
	"GBp": "GBP",
	"GBX": "GBP",
	"ZAc": "ZAR",
	"ZAC": "ZAR",
	"ILA": "ILS",
}

// FormatCurrency formats an amount in an ISO currency, "USD" when currency is
// empty. Amounts in a minor unit currency ("GBp") are formatted in the major
// one. A zero or NaN amount is "".
func FormatCurrency(amount float64, currency string) string {
	if amount == 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ""
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	if major, ok := minorUnits[currency]; ok {
		return M(decimal.NewFromFloat(amount).Shift(-2), major).String()
	}
	return M(amount, currency).String()
}

var largeUnits = []struct {
	threshold float64
	suffix    string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatLargeNumber abbreviates n with a T, B, M or K suffix and two
// decimals, e.g. 2_345_678 is "2.35M". Magnitudes below a thousand are
// printed as is. NaN is "".
func FormatLargeNumber(n float64) string {
	if math.IsNaN(n) {
		return ""
	}
	for _, u := range largeUnits {
		if math.Abs(n) >= u.threshold {
			return formatFloat(RoundPrecision(n/u.threshold, 2)) + u.suffix
		}
	}
	return formatFloat(n)
}

// RatioColor returns the colour name of a change ratio: green when
// positive, red when negative, gray otherwise.
func RatioColor(ratio float64) string {
	switch {
	case ratio > 0:
		return "green"
	case ratio < 0:
		return "red"
	default:
		return "gray"
	}
}
