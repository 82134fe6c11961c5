package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/led-dino/playacamp/pkg/pcdb/stor"
)

const (
	AttendanceExport = "attendanceprofile"
	ProfileExport    = "userprofile"
)

var attendanceColumns = []string{
	"First Name",
	"Last Name",
	"Email",
	"Has Early Pass",
	"Has Ticket",
	"Has Vehicle Pass",
	"Paid Dues",
	"Arrival Date",
	"Departure Date",
	"Housing Type Preference",
	"To Transporation",
	"From Transportation",
}

var profileColumns = []string{
	"First Name",
	"Last Name",
	"Email",
	"Attending",
	"Paid Dues",
	"Location",
	"Food Restrictions",
	"Skills",
	"Years on Playa",
	"Invited By",
}

// WriteFile creates path and fills it through write. When write or closing
// the file fails the file is removed, so a failed export leaves nothing
// behind.
func WriteFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = write(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(path)
		return err
	}

	return nil
}

// ExportFilename names an export file after its kind and when it was made.
func ExportFilename(kind string, now time.Time) string {
	return fmt.Sprintf("playacamp-%s-csv-export-%s.csv", kind, now.Format("2006-01-02-15-04-05"))
}

// LocationLookup turns a profile's zipcode into "City, ST".
type LocationLookup interface {
	CityAndState(profile *pcmodel.UserProfile) (string, error)
}

type Exporter struct {
	attendanceStor stor.AttendanceStor
	profileStor    stor.ProfileStor
	locations      LocationLookup
}

func NewExporter(attendanceStor stor.AttendanceStor, profileStor stor.ProfileStor, locations LocationLookup) *Exporter {
	return &Exporter{
		attendanceStor: attendanceStor,
		profileStor:    profileStor,
		locations:      locations,
	}
}

// ExportAttendance writes the year's active attendance records.
func (e *Exporter) ExportAttendance(w io.Writer, year int) error {
	attendances, err := e.attendanceStor.ListActiveAttendanceForYear(year)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(attendanceColumns); err != nil {
		return err
	}

	for i := range attendances {
		if err := cw.Write(attendanceRow(&attendances[i])); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func attendanceRow(a *pcmodel.AttendanceProfile) []string {
	var firstName, lastName, email string
	if a.User != nil {
		firstName, lastName, email = a.User.FirstName, a.User.LastName, a.User.Email
	}

	return []string{
		firstName,
		lastName,
		email,
		triState(a.HasEarlyPass),
		triState(a.HasTicket),
		triState(a.HasVehiclePass),
		boolString(a.PaidDues),
		a.PrettyArrival(),
		a.PrettyDeparture(),
		a.PrettyHousingTypePreference(),
		transportationName(a.ToTransportationMethod),
		transportationName(a.FromTransportationMethod),
	}
}

// ExportProfiles writes every profile. Attending and paid dues refer to year.
func (e *Exporter) ExportProfiles(w io.Writer, year int) error {
	profiles, err := e.profileStor.ListProfiles()
	if err != nil {
		return err
	}

	attendances, err := e.attendanceStor.ListActiveAttendanceForYear(year)
	if err != nil {
		return err
	}

	attendanceByUserID := make(map[int]*pcmodel.AttendanceProfile, len(attendances))
	for i := range attendances {
		attendanceByUserID[attendances[i].UserID] = &attendances[i]
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(profileColumns); err != nil {
		return err
	}

	for i := range profiles {
		location, err := e.locations.CityAndState(&profiles[i])
		if err != nil {
			return err
		}

		row := profileRow(&profiles[i], attendanceByUserID[profiles[i].UserID], location)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func profileRow(p *pcmodel.UserProfile, attendance *pcmodel.AttendanceProfile, location string) []string {
	var firstName, lastName, email string
	if p.User != nil {
		firstName, lastName, email = p.User.FirstName, p.User.LastName, p.User.Email
	}

	var foodRestrictions, skills []string
	for _, fr := range p.FoodRestrictions {
		foodRestrictions = append(foodRestrictions, fr.Name)
	}
	for _, skill := range p.Skills {
		skills = append(skills, skill.Name)
	}

	yearsOnPlaya := ""
	if p.YearsOnPlaya != nil {
		yearsOnPlaya = strconv.Itoa(*p.YearsOnPlaya)
	}

	invitedBy := ""
	if p.InvitedBy != nil {
		invitedBy = *p.InvitedBy
	}

	return []string{
		firstName,
		lastName,
		email,
		boolString(attendance != nil),
		boolString(attendance != nil && attendance.PaidDues),
		location,
		strings.Join(foodRestrictions, ","),
		strings.Join(skills, ","),
		yearsOnPlaya,
		invitedBy,
	}
}

func boolString(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func triState(b *bool) string {
	if b == nil {
		return "Unknown"
	}
	return boolString(*b)
}

func transportationName(tm *pcmodel.TransportationMethod) string {
	if tm == nil {
		return ""
	}
	return tm.Name
}
