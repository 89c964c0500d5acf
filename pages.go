package stockdash

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/etnz/stockdash/date"
	"golang.org/x/sync/errgroup"
)

// DefaultPeriod is the period of pages loaded without one.
const DefaultPeriod = "ytd"

// DetailsPage gathers what the details page of a ticker shows.
type DetailsPage struct {
	Ticker   string
	Period   string
	Interval string // candle interval of History, "" when the backend picked it
	Summary  *KPIs
	History  *Ticker
}

// ChartInterval returns the candle interval charting period as of now, or ""
// when period has no fixed length ("max").
func ChartInterval(period string, now time.Time) string {
	d, err := date.ParseInterval(period, now)
	if err != nil {
		return ""
	}
	return date.IntervalFor(d)
}

// LoadDetails fetches the KPIs and the price history of ticker concurrently.
func LoadDetails(ctx context.Context, c *Client, ticker, period string) (*DetailsPage, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, errors.New("missing ticker")
	}
	if period == "" {
		period = DefaultPeriod
	}
	page := &DetailsPage{Ticker: ticker, Period: period, Interval: ChartInterval(period, time.Now())}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.Summary, err = c.KPIs(gctx, ticker)
		return err
	})
	g.Go(func() (err error) {
		page.History, err = c.Ticker(gctx, ticker, period, page.Interval)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cannot load details of %s: %w", ticker, err)
	}
	return page, nil
}

// ComparePage gathers what the compare page shows.
type ComparePage struct {
	Tickers []string
	Period  string
	Growth  *Growth
}

// Latest returns the last relative close of ticker, false when it has none.
func (p *ComparePage) Latest(ticker string) (float64, bool) {
	if p.Growth == nil {
		return 0, false
	}
	values := p.Growth.Candles[ticker]
	if len(values) == 0 {
		return 0, false
	}
	return values[len(values)-1], true
}

// Change returns the change ratio of ticker since the first date: 0.05 for
// a 5% gain.
func (p *ComparePage) Change(ticker string) (float64, bool) {
	v, ok := p.Latest(ticker)
	return v - 1, ok
}

// LoadCompare fetches the compared growth of tickers.
func LoadCompare(ctx context.Context, c *Client, tickers []string, period string) (*ComparePage, error) {
	var names []string
	for _, t := range tickers {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			names = append(names, t)
		}
	}
	if len(names) == 0 {
		return nil, errors.New("missing tickers")
	}
	if period == "" {
		period = DefaultPeriod
	}
	g, err := c.CompareGrowth(ctx, names, period)
	if err != nil {
		return nil, err
	}
	return &ComparePage{Tickers: names, Period: period, Growth: g}, nil
}

// LoadEvolution fetches the daily closes of the instruments still open in
// acts and computes the portfolio evolution up to today. Instruments the
// backend does not know are left out.
func LoadEvolution(ctx context.Context, c *Client, acts []Activity, closed []ClosedPosition, today date.Date) (*Evolution, error) {
	var mu sync.Mutex
	prices := make(map[string]*date.History[float64])

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for instrument, first := range OpenPositions(acts) {
		symbol, ok := InstrumentSymbol(instrument)
		if !ok {
			continue
		}
		g.Go(func() error {
			t, err := c.Ticker(gctx, symbol, PeriodSince(first, today), "1d")
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			h, err := t.History()
			if err != nil {
				return fmt.Errorf("ticker %s: %w", symbol, err)
			}
			mu.Lock()
			defer mu.Unlock()
			prices[instrument] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cannot load evolution prices: %w", err)
	}
	return NewEvolution(acts, closed, prices, today)
}
