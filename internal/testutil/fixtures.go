// Package testutil builds synthetic rental tables shaped like the
// bike-sharing CSV exports.
package testutil

import (
	"fmt"
	"strings"
	"time"
)

// DayHeader is the column header of the daily export
const DayHeader = "instant,dteday,season,yr,mnth,holiday,weekday,workingday,weathersit,temp,atemp,hum,windspeed,casual,registered,cnt"

// HourHeader is the column header of the hourly export
const HourHeader = "instant,dteday,season,yr,mnth,hr,holiday,weekday,workingday,weathersit,temp,atemp,hum,windspeed,casual,registered,cnt"

// FirstDay is the first date of the real dataset
var FirstDay = time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC)

// FullPeriodDays is the number of days in 2011-01-01..2012-12-31
const FullPeriodDays = 731

// DayCount is the deterministic total rental count for day index i.
// It carries a slow upward drift, a weekly swing and a 30-day cycle so
// every chart has structure to show.
func DayCount(i int) int {
	return 1500 + 4*i + 120*(i%7) + 200*((i%30)/10)
}

// HourCount is the deterministic count for hour h of day index i
func HourCount(i, h int) int {
	base := 10 + i%13
	switch {
	case h == 8 || h == 17 || h == 18:
		return base + 300
	case h <= 5:
		return base
	default:
		return base + 80 + 3*h
	}
}

func season(m time.Month) int {
	return (int(m)-1)/3 + 1
}

func weather(i int) float64 {
	return 0.2 + float64(i%50)/100
}

// DayRows returns the CSV rows (without header) for days consecutive days
// starting at start.
func DayRows(start time.Time, days int) []string {
	rows := make([]string, 0, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		cnt := DayCount(i)
		casual := cnt / 5
		workingday := 0
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			workingday = 1
		}
		rows = append(rows, fmt.Sprintf("%d,%s,%d,%d,%d,0,%d,%d,%d,%.4f,%.4f,%.4f,%.4f,%d,%d,%d",
			i+1, d.Format("2006-01-02"), season(d.Month()), d.Year()-2011, int(d.Month()),
			int(d.Weekday()), workingday, 1+i%3,
			weather(i), weather(i)*0.9, 0.4+float64(i%40)/100, 0.1+float64(i%20)/100,
			casual, cnt-casual, cnt))
	}
	return rows
}

// DayCSV returns a complete daily export
func DayCSV(start time.Time, days int) string {
	return DayHeader + "\n" + strings.Join(DayRows(start, days), "\n") + "\n"
}

// HourRows returns CSV rows (without header) for each of hours on days
// consecutive days starting at start.
func HourRows(start time.Time, days int, hours []int) []string {
	rows := make([]string, 0, days*len(hours))
	instant := 1
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		for _, h := range hours {
			cnt := HourCount(i, h)
			casual := cnt / 4
			rows = append(rows, fmt.Sprintf("%d,%s,%d,%d,%d,%d,0,%d,1,%d,%.4f,%.4f,%.4f,%.4f,%d,%d,%d",
				instant, d.Format("2006-01-02"), season(d.Month()), d.Year()-2011, int(d.Month()), h,
				int(d.Weekday()), 1+(i+h)%3,
				weather(i+h), weather(i+h)*0.9, 0.5+float64(h)/100, 0.1+float64(h%10)/100,
				casual, cnt-casual, cnt))
			instant++
		}
	}
	return rows
}

// HourCSV returns a complete hourly export
func HourCSV(start time.Time, days int, hours []int) string {
	return HourHeader + "\n" + strings.Join(HourRows(start, days, hours), "\n") + "\n"
}

// AllHours is 0..23
func AllHours() []int {
	hours := make([]int, 24)
	for i := range hours {
		hours[i] = i
	}
	return hours
}
