package report

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/led-dino/playacamp/pkg/eventday"
	"github.com/led-dino/playacamp/pkg/pcdb"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/led-dino/playacamp/pkg/pcdb/stor"
	"github.com/led-dino/playacamp/pkg/profile"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func TestDailyCounts(t *testing.T) {
	withdrawnAt := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	attendanceStor := stor.NewInMemoryAttendanceStor([]pcmodel.AttendanceProfile{
		{ID: 1, UserID: 1, Year: 2024, ArrivalDate: strp("wednesday1"), DepartureDate: strp("sunday")},
		{ID: 2, UserID: 2, Year: 2024, ArrivalDate: strp("monday"), DepartureDate: strp("wednesday")},
		// Not counted: missing a date, withdrawn, another year, unknown token.
		{ID: 3, UserID: 3, Year: 2024, ArrivalDate: strp("monday")},
		{ID: 4, UserID: 4, Year: 2024, ArrivalDate: strp("monday"), DepartureDate: strp("tuesday"), DeletedAt: &withdrawnAt},
		{ID: 5, UserID: 5, Year: 2023, ArrivalDate: strp("monday"), DepartureDate: strp("tuesday")},
		{ID: 6, UserID: 6, Year: 2024, ArrivalDate: strp("someday"), DepartureDate: strp("tuesday")},
	})

	counts, err := DailyCounts(attendanceStor, 2024)
	require.NoError(t, err)
	require.Len(t, counts, 14)

	expected := []int{1, 1, 1, 1, 1, 2, 2, 1, 1, 1, 1, 0, 0, 0}
	for i, c := range counts {
		assert.Equal(t, eventday.AllDays()[i], c.Day)
		assert.Equalf(t, expected[i], c.Count, "count for %s", c.Day)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDailyCounts(&buf, counts))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 14)
	assert.Equal(t, "Wednesday1: 1", lines[0])
	assert.Equal(t, "Monday1: 2", lines[5])
	assert.Equal(t, "Tuesday2: 0", lines[13])
}

func TestDailyCountsNoAttendance(t *testing.T) {
	counts, err := DailyCounts(stor.NewInMemoryAttendanceStor(nil), 2025)
	require.NoError(t, err)
	require.Len(t, counts, 14)
	for _, c := range counts {
		assert.Equal(t, 0, c.Count)
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 8, 3, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "playacamp-userprofile-csv-export-2025-08-03-14-05-09.csv", ExportFilename(ProfileExport, now))
}

func TestExports(t *testing.T) {
	db, err := pcdb.OpenSqliteInMemory()
	require.NoError(t, err)
	stors := stor.NewGormStors(db)

	car, err := stors.CatalogStor.CreateTransportationMethod(&pcmodel.TransportationMethod{Name: "Car"})
	require.NoError(t, err)
	_, err = stors.CatalogStor.CreateZipcode(&pcmodel.Zipcode{Code: "94110", City: "San Francisco", State: "CA"})
	require.NoError(t, err)
	vegan, err := stors.CatalogStor.CreateFoodRestriction(&pcmodel.FoodRestriction{Name: "Vegan"})
	require.NoError(t, err)

	attending, err := stors.UserStor.CreateUser(&pcmodel.User{Username: "amy", FirstName: "Amy", LastName: "Adams", Email: "amy@test.com"})
	require.NoError(t, err)
	_, err = stors.UserStor.CreateUser(&pcmodel.User{Username: "bob", FirstName: "Bob", LastName: "Brown", Email: "bob@test.com"})
	require.NoError(t, err)

	attendance, err := stors.AttendanceStor.CreateAttendance(&pcmodel.AttendanceProfile{
		UserID:                   attending.ID,
		Year:                     2025,
		HasTicket:                boolp(true),
		HasVehiclePass:           boolp(false),
		ArrivalDate:              strp("friday1"),
		DepartureDate:            strp("monday"),
		HousingTypePreference:    strp("rv"),
		ToTransportationMethodID: &car.ID,
	})
	require.NoError(t, err)
	require.NoError(t, stors.AttendanceStor.SetPaidDues(attendance.ID, true))

	profiles := profile.NewService(stors.ProfileStor, stors.CatalogStor)
	_, err = profiles.UpdateBasics(attending.ID, profile.BasicsForm{Zipcode: "94110", YearsOnPlaya: "2"})
	require.NoError(t, err)
	_, err = profiles.SetFoodRestrictions(attending.ID, []int{vegan.ID})
	require.NoError(t, err)

	exporter := NewExporter(stors.AttendanceStor, stors.ProfileStor, profiles)

	var buf bytes.Buffer
	require.NoError(t, exporter.ExportAttendance(&buf, 2025))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 12)
	assert.Equal(t, []string{
		"Amy", "Adams", "amy@test.com",
		"Unknown", "True", "False", "True",
		"Friday (Early)", "Monday (Late Crew)", "RV",
		"Car", "",
	}, rows[1])

	buf.Reset()
	require.NoError(t, exporter.ExportProfiles(&buf, 2025))
	rows, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Len(t, rows[0], 10)
	assert.Equal(t, []string{"Amy", "Adams", "amy@test.com", "True", "True", "San Francisco, CA", "Vegan", "", "2", ""}, rows[1])
	assert.Equal(t, []string{"Bob", "Brown", "bob@test.com", "False", "False", "", "", "", "", ""}, rows[2])
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "ok.csv")
	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "a,b\n")
		return err
	}))
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(contents))

	// A failed export leaves no partial file.
	path = filepath.Join(dir, "failed.csv")
	err = WriteFile(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "a,b\n")
		return errors.New("db went away")
	})
	require.EqualError(t, err, "db went away")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
