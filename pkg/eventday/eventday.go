// Package eventday is the fixed calendar used to turn arrival and departure
// choices into day ranges.
package eventday

import "fmt"

// EventDay is one of the 14 slots spanning both halves of the event. The
// numeric value is the slot's position on the day axis.
type EventDay int

const (
	Wednesday1 EventDay = iota + 1
	Thursday1
	Friday1
	Saturday1
	Sunday1
	Monday1
	Tuesday1
	Wednesday2
	Thursday2
	Friday2
	Saturday2
	Sunday2
	Monday2
	Tuesday2
)

var dayNames = [...]string{
	Wednesday1: "Wednesday1",
	Thursday1:  "Thursday1",
	Friday1:    "Friday1",
	Saturday1:  "Saturday1",
	Sunday1:    "Sunday1",
	Monday1:    "Monday1",
	Tuesday1:   "Tuesday1",
	Wednesday2: "Wednesday2",
	Thursday2:  "Thursday2",
	Friday2:    "Friday2",
	Saturday2:  "Saturday2",
	Sunday2:    "Sunday2",
	Monday2:    "Monday2",
	Tuesday2:   "Tuesday2",
}

func (d EventDay) Valid() bool {
	return d >= Wednesday1 && d <= Tuesday2
}

func (d EventDay) String() string {
	if !d.Valid() {
		return fmt.Sprintf("EventDay(%d)", int(d))
	}
	return dayNames[d]
}

func (d EventDay) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// AllDays returns every event day in canonical order.
func AllDays() []EventDay {
	days := make([]EventDay, 0, Tuesday2)
	for d := Wednesday1; d <= Tuesday2; d++ {
		days = append(days, d)
	}
	return days
}

// DaysBetween returns the days d with start <= d < end. The range never wraps,
// so it is empty whenever start >= end.
func DaysBetween(start, end EventDay) []EventDay {
	var days []EventDay
	for _, d := range AllDays() {
		if start <= d && d < end {
			days = append(days, d)
		}
	}
	return days
}

var byArrivalToken = map[string]EventDay{
	"wednesday1": Wednesday1,
	"thursday1":  Thursday1,
	"friday1":    Friday1,
	"saturday":   Saturday1,
	"sunday":     Sunday1,
	"monday":     Monday1,
	"tuesday":    Tuesday1,
	"wednesday2": Wednesday2,
	"thursday2":  Thursday2,
	"friday2":    Friday2,
}

var byDepartureToken = map[string]EventDay{
	"wednesday": Wednesday2,
	"thursday":  Thursday2,
	"friday":    Friday2,
	"saturday":  Saturday2,
	"sunday":    Sunday2,
	"monday":    Monday2,
	"tuesday":   Tuesday2,
}

// ForArrival maps an arrival choice token onto the day axis.
func ForArrival(token string) (EventDay, bool) {
	d, ok := byArrivalToken[token]
	return d, ok
}

// ForDeparture maps a departure choice token onto the day axis. Departure
// tokens always land in the second half of the event.
func ForDeparture(token string) (EventDay, bool) {
	d, ok := byDepartureToken[token]
	return d, ok
}
