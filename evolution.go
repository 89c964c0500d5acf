package stockdash

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/etnz/stockdash/date"
)

// ClosedPart is the name of the realized profits part of an Evolution.
const ClosedPart = "Closed Positions"

// Evolution is the value, day by day, of the parts of a portfolio: every
// instrument still open, valued at its daily close, and the cumulated profit
// of the closed positions.
type Evolution struct {
	Dates []date.Date          `json:"dates"`
	Parts map[string][]float64 `json:"parts"` // by instrument ("AAPL/USD") and ClosedPart
	Total []float64            `json:"total"`
}

// Names returns the part names, instruments sorted first and ClosedPart last.
func (e *Evolution) Names() []string {
	names := slices.Sorted(maps.Keys(e.Parts))
	if i := slices.Index(names, ClosedPart); i >= 0 {
		names = append(slices.Delete(names, i, i+1), ClosedPart)
	}
	return names
}

// InstrumentSymbol splits an instrument ("AAPL/USD") and reports whether it
// is quoted in USD, the only market priced.
func InstrumentSymbol(instrument string) (string, bool) {
	symbol, market, ok := strings.Cut(instrument, "/")
	return symbol, ok && market == "USD" && symbol != ""
}

// stillOpen returns the "Open Position" activities that were never closed.
// Crypto positions are ignored.
func stillOpen(acts []Activity) []Activity {
	closed := make(map[string]bool)
	for _, a := range acts {
		if a.Type == "Position closed" && a.PositionID != "" {
			closed[a.PositionID] = true
		}
	}
	var open []Activity
	for _, a := range acts {
		if a.AssetType == "Crypto" || a.Type != "Open Position" || closed[a.PositionID] {
			continue
		}
		open = append(open, a)
	}
	return open
}

// OpenPositions returns the instruments of the positions still open with the
// day they were first opened.
func OpenPositions(acts []Activity) map[string]date.Date {
	first := make(map[string]date.Date)
	for _, a := range stillOpen(acts) {
		on := date.Of(a.Time)
		if f, ok := first[a.Details]; !ok || on.Before(f) {
			first[a.Details] = on
		}
	}
	return first
}

// part is a daily series starting on from.
type part struct {
	from   date.Date
	values []float64
}

func (p part) days() []date.Date {
	days := make([]date.Date, len(p.values))
	for i := range days {
		days[i] = p.from.Add(i)
	}
	return days
}

// on returns the value of p on day: 0 before it starts, its last value after
// it ends.
func (p part) on(day date.Date) float64 {
	if day.Before(p.from) || len(p.values) == 0 {
		return 0
	}
	i := min(daysBetween(p.from, day), len(p.values)-1)
	return p.values[i]
}

func daysBetween(from, to date.Date) int {
	return int(math.Round(to.Time().Sub(from.Time()).Hours() / 24))
}

// NewEvolution computes the evolution of a portfolio up to today.
//
// The units of the positions still open are cumulated per instrument from
// the day of their first opening, and valued with the close as of each day
// (0 before the first known close). Instruments without prices are left out.
// The profits of the closed positions are cumulated from the first to the
// last close day. Parts are aligned on the union of their days: a part is 0
// before it starts and keeps its last value after it ends.
func NewEvolution(acts []Activity, closed []ClosedPosition, prices map[string]*date.History[float64], today date.Date) (*Evolution, error) {
	parts := make(map[string]part)

	units := make(map[string]map[date.Date]float64)
	for _, a := range stillOpen(acts) {
		if units[a.Details] == nil {
			units[a.Details] = make(map[date.Date]float64)
		}
		units[a.Details][date.Of(a.Time)] += a.Units.InexactFloat64()
	}
	for instrument, first := range OpenPositions(acts) {
		closes := prices[instrument]
		if closes == nil || closes.Len() == 0 {
			continue
		}
		p := part{from: first}
		held := 0.0
		for day := range (date.Range{From: first, To: today}).Days() {
			held += units[instrument][day]
			value := 0.0
			if price, ok := closes.ValueAsOf(day); ok {
				value = held * price
			}
			p.values = append(p.values, value)
		}
		parts[instrument] = p
	}

	if len(closed) > 0 {
		profits := make(map[date.Date]float64)
		from, to := date.Of(closed[0].CloseTime), date.Of(closed[0].CloseTime)
		for _, c := range closed {
			on := date.Of(c.CloseTime)
			from, to = minDate(from, on), maxDate(to, on)
			profits[on] += c.Profit.InexactFloat64()
		}
		p := part{from: from}
		cumulated := 0.0
		for day := range (date.Range{From: from, To: to}).Days() {
			cumulated += profits[day]
			p.values = append(p.values, cumulated)
		}
		parts[ClosedPart] = p
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("no priced open position nor closed position: %w", ErrEmpty)
	}

	names := slices.Sorted(maps.Keys(parts))
	var series [][]date.Date
	for _, name := range names {
		series = append(series, parts[name].days())
	}
	e := &Evolution{Parts: make(map[string][]float64, len(parts))}
	for day := range date.Merge(series...) {
		e.Dates = append(e.Dates, day)
	}
	e.Total = make([]float64, len(e.Dates))
	for _, name := range names {
		values := make([]float64, len(e.Dates))
		for i, day := range e.Dates {
			values[i] = parts[name].on(day)
			e.Total[i] += values[i]
		}
		e.Parts[name] = values
	}
	return e, nil
}
