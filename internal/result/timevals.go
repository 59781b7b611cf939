package result

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// Date is the "date" result, split into fields so structured consumers need
// no date parsing of their own.
type Date struct {
	DayName    string `json:"day_name"    yaml:"day_name"`
	DayNumber  int    `json:"day_number"  yaml:"day_number"`
	MonthName  string `json:"month_name"  yaml:"month_name"`
	Year       int    `json:"year"        yaml:"year"`
	WeekNumber int    `json:"week_number" yaml:"week_number"`
}

// NewDate breaks a wall-clock time into its date fields. The week number is
// the ISO 8601 week.
func NewDate(t time.Time) Date {
	_, week := t.ISOWeek()
	return Date{
		DayName:    t.Weekday().String(),
		DayNumber:  t.Day(),
		MonthName:  t.Month().String(),
		Year:       t.Year(),
		WeekNumber: week,
	}
}

func (d Date) Tag() string  { return "date" }
func (d Date) Payload() any { return d }

func (d Date) text(w io.Writer) {
	fmt.Fprintf(w, "%s, %d %s, %d, week %d\n",
		d.DayName, d.DayNumber, d.MonthName, d.Year, d.WeekNumber)
}

// Time is the "time" result. Offset is the measured clock offset against the
// reference server in seconds, signed, positive when the server is ahead.
type Time struct {
	Hour     int     `json:"hour"     yaml:"hour"`
	Minute   int     `json:"minute"   yaml:"minute"`
	Second   int     `json:"second"   yaml:"second"`
	Timezone string  `json:"timezone" yaml:"timezone"`
	Offset   float64 `json:"offset"   yaml:"offset"`
}

// NewTime builds a Time from a wall-clock instant and a measured offset.
func NewTime(t time.Time, offset float64) Time {
	zone, _ := t.Zone()
	return Time{
		Hour:     t.Hour(),
		Minute:   t.Minute(),
		Second:   t.Second(),
		Timezone: zone,
		Offset:   offset,
	}
}

func (t Time) Tag() string  { return "time" }
func (t Time) Payload() any { return t }

func (t Time) text(w io.Writer) {
	bold := color.New(color.Bold)
	fmt.Fprintf(w, "%s:%s:%02d %s\n",
		bold.Sprintf("%02d", t.Hour),
		bold.Sprintf("%02d", t.Minute),
		t.Second,
		color.CyanString(t.Timezone))
	fmt.Fprintf(w, "±%s seconds\n", color.MagentaString("%.4f", t.Offset))
}

// DateTime is the "datetime" result, nesting the other two.
type DateTime struct {
	Date Date `json:"date" yaml:"date"`
	Time Time `json:"time" yaml:"time"`
}

func (dt DateTime) Tag() string  { return "datetime" }
func (dt DateTime) Payload() any { return dt }

func (dt DateTime) text(w io.Writer) {
	dt.Date.text(w)
	dt.Time.text(w)
}
