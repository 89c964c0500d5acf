package stockdash

import (
	"fmt"
	"slices"

	"github.com/etnz/stockdash/date"
	"github.com/shopspring/decimal"
)

// NetWorthPoint is the account net worth at the end of a period.
type NetWorthPoint struct {
	Date  date.Date `json:"date"` // first day of the period
	Value Money     `json:"net_worth"`
}

// NetWorth returns the account balance at the end of every period that has
// activity, in chronological order.
//
// Activities are sorted by time (stable, so same-time rows keep their file
// order) and the last balance of each period bucket is kept. Activities with
// a blank balance are skipped.
func NetWorth(acts []Activity, period date.Period) []NetWorthPoint {
	sorted := slices.Clone(acts)
	slices.SortStableFunc(sorted, func(a, b Activity) int { return a.Time.Compare(b.Time) })

	var points []NetWorthPoint
	for _, a := range sorted {
		if !a.Balance.Valid {
			continue
		}
		bucket := date.Of(a.Time).StartOf(period)
		value := M(a.Balance.Decimal, DefaultCurrency)
		if n := len(points); n > 0 && points[n-1].Date == bucket {
			points[n-1].Value = value
			continue
		}
		points = append(points, NetWorthPoint{Date: bucket, Value: value})
	}
	return points
}

// ProfitPoint is the realized profit of the positions closed during a period.
type ProfitPoint struct {
	Date   date.Date `json:"close_date"` // first day of the period
	Profit Money     `json:"profit_usd"`
	Trades int       `json:"closed_trades"`
}

// ClosedProfits sums the profit and counts the positions closed in every
// period, in chronological order. Periods without closed positions are omitted.
func ClosedProfits(positions []ClosedPosition, period date.Period) []ProfitPoint {
	byBucket := make(map[date.Date]*ProfitPoint)
	for _, p := range positions {
		bucket := date.Of(p.CloseTime).StartOf(period)
		pp, ok := byBucket[bucket]
		if !ok {
			pp = &ProfitPoint{Date: bucket, Profit: M(decimal.Zero, DefaultCurrency)}
			byBucket[bucket] = pp
		}
		pp.Profit = pp.Profit.Add(M(p.Profit, DefaultCurrency))
		pp.Trades++
	}
	points := make([]ProfitPoint, 0, len(byBucket))
	for _, pp := range byBucket {
		points = append(points, *pp)
	}
	slices.SortFunc(points, func(a, b ProfitPoint) int { return a.Date.Compare(b.Date) })
	return points
}

// NetWorthSummary sums up a net worth series.
type NetWorthSummary struct {
	From, To      date.Date
	Points        int
	Start, End    Money
	Change        Money
	ChangePercent Percent // relative to Start, 0 when Start is 0
	Peak, Low     Money
}

// Summarize computes the statistics of a net worth series.
func Summarize(points []NetWorthPoint) (NetWorthSummary, error) {
	if len(points) == 0 {
		return NetWorthSummary{}, fmt.Errorf("cannot summarize net worth: %w", ErrEmpty)
	}
	first, last := points[0], points[len(points)-1]
	s := NetWorthSummary{
		From:   first.Date,
		To:     last.Date,
		Points: len(points),
		Start:  first.Value,
		End:    last.Value,
		Change: last.Value.Sub(first.Value),
		Peak:   first.Value,
		Low:    first.Value,
	}
	for _, p := range points[1:] {
		if p.Value.GreaterThan(s.Peak) {
			s.Peak = p.Value
		}
		if p.Value.LessThan(s.Low) {
			s.Low = p.Value
		}
	}
	s.ChangePercent = s.Change.Percent(s.Start)
	return s, nil
}

// TotalProfit sums the profit and trades of a profit series.
func TotalProfit(points []ProfitPoint) (Money, int) {
	total, trades := M(decimal.Zero, DefaultCurrency), 0
	for _, p := range points {
		total = total.Add(p.Profit)
		trades += p.Trades
	}
	return total, trades
}

// Deposits returns the cumulative amount deposited on the account, day by
// day from the first to the last activity.
func Deposits(acts []Activity) []NetWorthPoint {
	if len(acts) == 0 {
		return nil
	}
	daily := make(map[date.Date]decimal.Decimal)
	from, to := date.Of(acts[0].Time), date.Of(acts[0].Time)
	for _, a := range acts {
		on := date.Of(a.Time)
		from, to = minDate(from, on), maxDate(to, on)
		if a.Type == "Deposit" {
			daily[on] = daily[on].Add(a.Amount)
		}
	}
	var points []NetWorthPoint
	cumulative := decimal.Zero
	for on := range (date.Range{From: from, To: to}).Days() {
		cumulative = cumulative.Add(daily[on])
		points = append(points, NetWorthPoint{Date: on, Value: M(cumulative, DefaultCurrency)})
	}
	return points
}

func minDate(a, b date.Date) date.Date {
	if b.Before(a) {
		return b
	}
	return a
}

func maxDate(a, b date.Date) date.Date {
	if b.After(a) {
		return b
	}
	return a
}
