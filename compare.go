package stockdash

import (
	"fmt"
	"io"

	"github.com/etnz/stockdash/date"
)

// ReindexPrices aligns prices on dates.
//
// Dates without a price take the last known price before them, dates before
// the first price take the first price.
func ReindexPrices(dates []date.Date, prices *date.History[float64]) ([]float64, error) {
	if prices == nil || prices.Len() == 0 {
		return nil, fmt.Errorf("no index prices: %w", ErrEmpty)
	}
	_, first := prices.Earliest()
	aligned := make([]float64, len(dates))
	for i, on := range dates {
		price, ok := prices.ValueAsOf(on)
		if !ok {
			price = first
		}
		aligned[i] = price
	}
	return aligned, nil
}

// SimulateIndexInvestment returns the value, day by day, of a portfolio
// that would have invested every deposit in an index.
//
// deposits are cumulative amounts aligned on dates. Each day, the increase
// of the cumulative deposit (never negative) buys index units at that day's
// price. The value of a day is the units held times the day's price.
func SimulateIndexInvestment(dates []date.Date, deposits []float64, prices *date.History[float64]) ([]float64, error) {
	if len(dates) != len(deposits) {
		return nil, fmt.Errorf("%d dates for %d deposits", len(dates), len(deposits))
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("no deposits: %w", ErrEmpty)
	}
	aligned, err := ReindexPrices(dates, prices)
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(dates))
	units := 0.0
	previous := 0.0
	for i := range dates {
		deposit := max(0, deposits[i]-previous)
		previous = deposits[i]
		if price := aligned[i]; price > 0 && deposit > 0 {
			units += deposit / price
		}
		values[i] = units * aligned[i]
	}
	return values, nil
}

// DecodePrices reads a "Date,Price" CSV with a header line.
func DecodePrices(r io.Reader) (*date.History[float64], error) {
	t, err := newCSVTable(r, "Date", "Price")
	if err != nil {
		return nil, fmt.Errorf("prices: %w", err)
	}
	prices := new(date.History[float64])
	for {
		ok, err := t.next()
		if err != nil {
			return nil, fmt.Errorf("prices: %w", err)
		}
		if !ok {
			break
		}
		on, err := date.Parse(t.get("Date"))
		if err != nil {
			return nil, fmt.Errorf("prices: line %d: %w", t.line, err)
		}
		price, err := t.decimalAt("Price")
		if err != nil {
			return nil, fmt.Errorf("prices: %w", err)
		}
		prices.Append(on, price.InexactFloat64())
	}
	if prices.Len() == 0 {
		return nil, fmt.Errorf("prices: %w", ErrEmpty)
	}
	return prices, nil
}

// History returns the candles of t by date.
func (t *Ticker) History() (*date.History[float64], error) {
	if len(t.Dates) != len(t.Candles) {
		return nil, fmt.Errorf("%d dates for %d candles", len(t.Dates), len(t.Candles))
	}
	prices := new(date.History[float64])
	for i, s := range t.Dates {
		on, err := date.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("candle %d: %w", i, err)
		}
		prices.Append(on, t.Candles[i])
	}
	return prices, nil
}

// backendPeriods are the history lengths the backend accepts, shortest first.
var backendPeriods = []struct {
	name string
	days int
}{
	{"1mo", 31},
	{"3mo", 92},
	{"6mo", 183},
	{"1y", 366},
	{"2y", 731},
	{"5y", 1827},
	{"10y", 3653},
}

// PeriodSince returns the shortest backend period covering from to today.
func PeriodSince(from, today date.Date) string {
	days := int(today.Time().Sub(from.Time()).Hours() / 24)
	for _, p := range backendPeriods {
		if days <= p.days {
			return p.name
		}
	}
	return "max"
}
