package api

import "fmt"

// Period selects which analytics bucket the dashboard charts.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// periodOrder fixes the cycling order used by Next and Prev.
var periodOrder = [...]Period{PeriodDay, PeriodWeek, PeriodMonth}

// Periods returns all periods in display order.
func Periods() []Period {
	return periodOrder[:]
}

// ParsePeriod validates a wire or flag value.
func ParsePeriod(s string) (Period, error) {
	for _, p := range periodOrder {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q", s)
}

func (p Period) index() int {
	for i, q := range periodOrder {
		if q == p {
			return i
		}
	}
	return 0
}

// Next returns the following period, wrapping month back to day.
func (p Period) Next() Period {
	return periodOrder[(p.index()+1)%len(periodOrder)]
}

// Prev returns the preceding period, wrapping day back to month.
func (p Period) Prev() Period {
	return periodOrder[(p.index()+len(periodOrder)-1)%len(periodOrder)]
}

// Title returns the capitalized display name.
func (p Period) Title() string {
	switch p {
	case PeriodDay:
		return "Day"
	case PeriodWeek:
		return "Week"
	case PeriodMonth:
		return "Month"
	}
	return string(p)
}
