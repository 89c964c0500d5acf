package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseInterval converts an interval or period string into a duration.
//
// Suffixes are m (minutes), h (hours), d (days), wk (weeks), mo (30 days) and
// y (365 days). "ytd" is the time elapsed since January 1st of now's year.
func ParseInterval(s string, now time.Time) (time.Duration, error) {
	if s == "ytd" {
		return now.Sub(time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())), nil
	}
	units := []struct {
		suffix string
		unit   time.Duration
	}{
		// wk and mo before the single letters they end with
		{"wk", 7 * Day},
		{"mo", 30 * Day},
		{"m", time.Minute},
		{"h", time.Hour},
		{"d", Day},
		{"y", 365 * Day},
	}
	for _, u := range units {
		num, ok := strings.CutSuffix(s, u.suffix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid interval %q: %q is not a count", s, num)
		}
		return time.Duration(n) * u.unit, nil
	}
	return 0, fmt.Errorf("unknown interval format %q", s)
}

// IntervalFor returns the bucket interval used to chart a span of duration d.
//
// The thresholds are those of the backend: a span up to one hour is charted
// by minute, up to two hours every 2 minutes, and so on up to quarterly
// buckets for spans longer than 30 days.
func IntervalFor(d time.Duration) string {
	minutes := d.Minutes()
	thresholds := []struct {
		upTo     float64
		interval string
	}{
		{1 * 60, "1m"},
		{2 * 60, "2m"},
		{5 * 60, "5m"},
		{15 * 60, "15m"},
		{30 * 60, "30m"},
		{60 * 60, "60m"},
		{90 * 60, "90m"},
		{4 * 60 * 60, "4h"},
		{24 * 60 * 60, "1d"},
		{5 * 24 * 60 * 60, "5d"},
		{7 * 24 * 60 * 60, "1wk"},
		{30 * 24 * 60 * 60, "1mo"},
	}
	for _, t := range thresholds {
		if minutes <= t.upTo {
			return t.interval
		}
	}
	return "3mo"
}
