// Package report builds the admin reports: per-day headcounts and the CSV
// exports of attendance and profiles.
package report

import (
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/led-dino/playacamp/pkg/clog"
	"github.com/led-dino/playacamp/pkg/eventday"
	"github.com/led-dino/playacamp/pkg/pcdb/stor"
)

type DayCount struct {
	Day   eventday.EventDay `json:"day"`
	Count int               `json:"count"`
}

// DailyCounts counts, for each event day, the active attendees of the year
// who are in camp that day. An attendee is counted from their arrival day up
// to but not including their departure day. Attendees missing either date are
// left out. Every day is returned, in order, including days with no one.
func DailyCounts(attendanceStor stor.AttendanceStor, year int) ([]DayCount, error) {
	attendances, err := attendanceStor.ListActiveAttendanceForYear(year)
	if err != nil {
		return nil, err
	}

	countByDay := make(map[eventday.EventDay]int)
	for _, a := range attendances {
		if a.ArrivalDate == nil || a.DepartureDate == nil {
			continue
		}

		arrival, okArrival := eventday.ForArrival(*a.ArrivalDate)
		departure, okDeparture := eventday.ForDeparture(*a.DepartureDate)
		if !okArrival || !okDeparture {
			clog.For("report").WithFields(log.Fields{
				"attendance": a.ID,
				"arrival":    *a.ArrivalDate,
				"departure":  *a.DepartureDate,
			}).Warn("Skipping attendance with unknown dates")
			continue
		}

		for _, day := range eventday.DaysBetween(arrival, departure) {
			countByDay[day]++
		}
	}

	counts := make([]DayCount, 0, len(eventday.AllDays()))
	for _, day := range eventday.AllDays() {
		counts = append(counts, DayCount{Day: day, Count: countByDay[day]})
	}

	return counts, nil
}

// WriteDailyCounts writes one "Name: count" line per day.
func WriteDailyCounts(w io.Writer, counts []DayCount) error {
	for _, c := range counts {
		if _, err := fmt.Fprintf(w, "%s: %d\n", c.Day, c.Count); err != nil {
			return err
		}
	}

	return nil
}
