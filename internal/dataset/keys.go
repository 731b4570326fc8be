package dataset

import (
	"fmt"
	"time"
)

// KeyViolation describes a row that breaks the table's key invariant
type KeyViolation struct {
	Row    int
	Date   time.Time
	Hour   int
	Reason string
}

func (v KeyViolation) String() string {
	if v.Hour >= 0 {
		return fmt.Sprintf("row %d (%s hour %d): %s", v.Row, v.Date.Format(time.DateOnly), v.Hour, v.Reason)
	}
	return fmt.Sprintf("row %d (%s): %s", v.Row, v.Date.Format(time.DateOnly), v.Reason)
}

// CheckKeys reports rows that break uniqueness. Daily tables must have unique,
// increasing dates; hourly tables unique (date, hour) pairs. Rows are numbered
// from 1. An hourly table without an hr column is not checked.
func CheckKeys(t *Table) []KeyViolation {
	switch t.granularity {
	case Daily:
		return checkDaily(t.dates)
	case Hourly:
		if !t.HasColumn(ColHour) {
			return nil
		}
		hours, err := t.Int(ColHour)
		if err != nil {
			return []KeyViolation{{Row: 0, Hour: -1, Reason: err.Error()}}
		}
		return checkHourly(t.dates, hours)
	default:
		return nil
	}
}

func checkDaily(dates []time.Time) []KeyViolation {
	var violations []KeyViolation
	seen := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		if first, dup := seen[d]; dup {
			violations = append(violations, KeyViolation{
				Row: i + 1, Date: d, Hour: -1,
				Reason: fmt.Sprintf("duplicate date, first seen at row %d", first),
			})
			continue
		}
		seen[d] = i + 1
		if i > 0 && !d.After(dates[i-1]) {
			violations = append(violations, KeyViolation{Row: i + 1, Date: d, Hour: -1, Reason: "date out of order"})
		}
	}
	return violations
}

type hourKey struct {
	date time.Time
	hour int
}

func checkHourly(dates []time.Time, hours []int) []KeyViolation {
	var violations []KeyViolation
	seen := make(map[hourKey]int, len(dates))
	for i, d := range dates {
		k := hourKey{date: d, hour: hours[i]}
		if first, dup := seen[k]; dup {
			violations = append(violations, KeyViolation{
				Row: i + 1, Date: d, Hour: hours[i],
				Reason: fmt.Sprintf("duplicate date and hour, first seen at row %d", first),
			})
			continue
		}
		seen[k] = i + 1
	}
	return violations
}
