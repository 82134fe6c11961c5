package eventday

import "time"

// FindLaborDay returns midnight, in loc, of the first Monday strictly after
// August 31st of year. The event for a year is over once this has passed.
func FindLaborDay(year int, loc *time.Location) time.Time {
	lastDayOfAugust := time.Date(year, time.August, 31, 0, 0, 0, 0, loc)
	daysAhead := int(time.Monday) - int(lastDayOfAugust.Weekday())
	if daysAhead <= 0 {
		daysAhead += 7
	}
	return lastDayOfAugust.AddDate(0, 0, daysAhead)
}

// NextEventYear is the year of the next event that hasn't finished as of now.
func NextEventYear(now time.Time, loc *time.Location) int {
	now = now.In(loc)
	year := now.Year()
	if now.After(FindLaborDay(year, loc)) {
		year++
	}
	return year
}
