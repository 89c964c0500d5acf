package date

import (
	"fmt"
	"strings"
)

// Period is a calendar bucket size.
type Period int

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Letter returns the backend precision letter for p.
func (p Period) Letter() string {
	return [...]string{"D", "W", "M", "Q", "Y"}[p]
}

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

// ParsePeriod parses a period name ("daily", "week", ...) or a backend
// precision letter ("D", "W", "M", "Q", "Y", in any case).
func ParsePeriod(p string) (Period, error) {
	switch strings.ToUpper(p) {
	case "D":
		return Daily, nil
	case "W":
		return Weekly, nil
	case "M":
		return Monthly, nil
	case "Q":
		return Quarterly, nil
	case "Y":
		return Yearly, nil
	}
	switch strings.ToLower(p) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %s", p)
	}
}
