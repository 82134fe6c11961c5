package stor

import (
	"testing"
	"time"

	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestGormAttendanceStor_WithdrawAndReinstateKeepsRecord(t *testing.T) {
	tc := newStorTestCase(t)
	u1 := tc.createUser("u1")

	created, err := tc.stors.AttendanceStor.CreateAttendance(&pcmodel.AttendanceProfile{
		UserID:        u1.ID,
		Year:          2025,
		ArrivalDate:   strp("friday1"),
		DepartureDate: strp("monday"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.UUID)

	now := time.Now()
	require.NoError(t, tc.stors.AttendanceStor.SetAttendanceDeletedAt(created.ID, &now))

	_, err = tc.stors.AttendanceStor.GetAttendance(u1.ID, 2025, false)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	withdrawn, err := tc.stors.AttendanceStor.GetAttendance(u1.ID, 2025, true)
	require.NoError(t, err)
	assert.Equal(t, pcmodel.Withdrawn, withdrawn.State())

	require.NoError(t, tc.stors.AttendanceStor.SetAttendanceDeletedAt(created.ID, nil))

	active, err := tc.stors.AttendanceStor.GetAttendance(u1.ID, 2025, false)
	require.NoError(t, err)
	assert.Equal(t, created.ID, active.ID)
	assert.Equal(t, pcmodel.Active, active.State())
	require.NotNil(t, active.ArrivalDate)
	assert.Equal(t, "friday1", *active.ArrivalDate)
}

func TestGormAttendanceStor_OneRecordPerUserAndYear(t *testing.T) {
	tc := newStorTestCase(t)
	u1 := tc.createUser("u1")

	_, err := tc.stors.AttendanceStor.CreateAttendance(&pcmodel.AttendanceProfile{UserID: u1.ID, Year: 2025})
	require.NoError(t, err)

	_, err = tc.stors.AttendanceStor.CreateAttendance(&pcmodel.AttendanceProfile{UserID: u1.ID, Year: 2025})
	require.Error(t, err)

	_, err = tc.stors.AttendanceStor.CreateAttendance(&pcmodel.AttendanceProfile{UserID: u1.ID, Year: 2026})
	require.NoError(t, err)
}

func TestGormAttendanceStor_UpdatePreferencesReplacesForm(t *testing.T) {
	tc := newStorTestCase(t)
	u1 := tc.createUser("u1")

	cook, err := tc.stors.CatalogStor.CreateJob(&pcmodel.Job{Name: "Cook"})
	require.NoError(t, err)
	build, err := tc.stors.CatalogStor.CreateJob(&pcmodel.Job{Name: "Build"})
	require.NoError(t, err)

	attendance, err := tc.stors.AttendanceStor.CreateAttendance(&pcmodel.AttendanceProfile{
		UserID:                u1.ID,
		Year:                  2025,
		HousingTypePreference: strp("tent"),
		BicycleStatus:         strp("have"),
		JobPreferences:        []pcmodel.Job{*cook},
	})
	require.NoError(t, err)
	require.NoError(t, tc.stors.AttendanceStor.SetPaidDues(attendance.ID, true))

	update := &pcmodel.AttendanceProfile{
		ID:                    attendance.ID,
		HousingTypePreference: strp("rv"),
		JobPreferences:        []pcmodel.Job{*build},
	}
	require.NoError(t, tc.stors.AttendanceStor.UpdateAttendancePreferences(update))

	updated, err := tc.stors.AttendanceStor.GetAttendance(u1.ID, 2025, false)
	require.NoError(t, err)
	require.NotNil(t, updated.HousingTypePreference)
	assert.Equal(t, "rv", *updated.HousingTypePreference)
	assert.Nil(t, updated.BicycleStatus)
	assert.True(t, updated.PaidDues)
	require.Len(t, updated.JobPreferences, 1)
	assert.Equal(t, build.ID, updated.JobPreferences[0].ID)
}

func TestGormAttendanceStor_MissingRecord(t *testing.T) {
	tc := newStorTestCase(t)

	err := tc.stors.AttendanceStor.SetPaidDues(99, true)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	err = tc.stors.AttendanceStor.SetAttendanceDeletedAt(99, nil)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGormAttendanceStor_ListActiveAttendanceForYear(t *testing.T) {
	tc := newStorTestCase(t)
	u1, u2, u3 := tc.createUser("u1"), tc.createUser("u2"), tc.createUser("u3")

	a1, err := tc.stors.AttendanceStor.CreateAttendance(&pcmodel.AttendanceProfile{UserID: u1.ID, Year: 2025})
	require.NoError(t, err)
	a2, err := tc.stors.AttendanceStor.CreateAttendance(&pcmodel.AttendanceProfile{UserID: u2.ID, Year: 2025})
	require.NoError(t, err)
	_, err = tc.stors.AttendanceStor.CreateAttendance(&pcmodel.AttendanceProfile{UserID: u3.ID, Year: 2024})
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, tc.stors.AttendanceStor.SetAttendanceDeletedAt(a2.ID, &now))

	active, err := tc.stors.AttendanceStor.ListActiveAttendanceForYear(2025)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a1.ID, active[0].ID)
	require.NotNil(t, active[0].User)
	assert.Equal(t, "u1", active[0].User.Username)
}
