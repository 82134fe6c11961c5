package attendance

import (
	"testing"
	"time"

	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/led-dino/playacamp/pkg/pcdb/stor"
	"github.com/led-dino/playacamp/pkg/teams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

type testCase struct {
	*testing.T
	attendanceStor *stor.InMemoryAttendanceStor
	catalogStor    *stor.InMemoryCatalogStor
	teamStor       *stor.InMemoryTeamStor
	registry       *teams.Registry
	svc            *Service
	now            time.Time
}

func newTestCase(t *testing.T) *testCase {
	tc := &testCase{
		T:              t,
		attendanceStor: stor.NewInMemoryAttendanceStor(nil),
		catalogStor:    stor.NewInMemoryCatalogStor(),
		teamStor: stor.NewInMemoryTeamStor([]pcmodel.Team{
			{ID: 1, Name: "Early Crew", MaxSize: 10, IsEarlyCrew: true},
			{ID: 2, Name: "Late Crew", MaxSize: 10, IsLateCrew: true},
		}, []pcmodel.User{{ID: 1}, {ID: 2}}),
		now: time.Date(2025, 7, 4, 12, 0, 0, 0, time.UTC),
	}

	_, _ = tc.catalogStor.CreateTransportationMethod(&pcmodel.TransportationMethod{Name: "Car"})
	_, _ = tc.catalogStor.CreateJob(&pcmodel.Job{Name: "Kitchen"})
	_, _ = tc.catalogStor.CreateJob(&pcmodel.Job{Name: "Build"})

	tc.registry = teams.NewRegistry(tc.teamStor)
	tc.svc = NewService(tc.attendanceStor, tc.catalogStor, tc.registry)
	tc.svc.Now = func() time.Time { return tc.now }

	return tc
}

func (tc *testCase) isMember(teamID, userID int) bool {
	member, err := tc.registry.IsMember(teamID, userID)
	require.NoError(tc.T, err)
	return member
}

func TestNoRecordNotAttendingIsNoop(t *testing.T) {
	tc := newTestCase(t)

	outcome, err := tc.svc.SetAttending(1, 2025, false, nil)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, outcome.Transition)
	assert.Equal(t, pcmodel.NoRecord, outcome.State)
	assert.Nil(t, outcome.Attendance)
	assert.Equal(t, 0, tc.attendanceStor.Count())
}

func TestCreateWithPreferences(t *testing.T) {
	tc := newTestCase(t)

	outcome, err := tc.svc.SetAttending(1, 2025, true, &PreferenceEdits{
		ArrivalDate:              strp("thursday1"),
		DepartureDate:            strp("monday"),
		HousingTypePreference:    strp("tent"),
		ToTransportationMethodID: intp(1),
		JobPreferenceIDs:         []int{2, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, Created, outcome.Transition)
	assert.Equal(t, pcmodel.Active, outcome.State)
	assert.Equal(t, "Thursday (Early)", outcome.Attendance.PrettyArrival())
	require.Len(t, outcome.Attendance.JobPreferences, 1)
	assert.Equal(t, "Build", outcome.Attendance.JobPreferences[0].Name)

	assert.True(t, tc.isMember(1, 1), "early arrival joins the early crew")
	assert.True(t, tc.isMember(2, 1), "late departure joins the late crew")
}

func TestCreateWithoutPreferences(t *testing.T) {
	tc := newTestCase(t)

	outcome, err := tc.svc.SetAttending(1, 2025, true, nil)
	require.NoError(t, err)
	assert.Equal(t, Created, outcome.Transition)
	assert.Nil(t, outcome.Attendance.ArrivalDate)
	assert.False(t, tc.isMember(1, 1))
}

func TestCreateWithInvalidPreferencesCreatesNothing(t *testing.T) {
	tc := newTestCase(t)

	_, err := tc.svc.SetAttending(1, 2025, true, &PreferenceEdits{ArrivalDate: strp("someday")})
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "arrival_date")
	assert.Equal(t, 0, tc.attendanceStor.Count())
}

func TestUpdateReplacesTheForm(t *testing.T) {
	tc := newTestCase(t)

	_, err := tc.svc.SetAttending(1, 2025, true, &PreferenceEdits{
		ArrivalDate:   strp("friday1"),
		BicycleStatus: strp("have"),
	})
	require.NoError(t, err)
	require.True(t, tc.isMember(1, 1))

	outcome, err := tc.svc.SetAttending(1, 2025, true, &PreferenceEdits{ArrivalDate: strp("sunday")})
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome.Transition)
	assert.Equal(t, "sunday", *outcome.Attendance.ArrivalDate)
	assert.Nil(t, outcome.Attendance.BicycleStatus)

	stored, err := tc.svc.Current(1, 2025, false)
	require.NoError(t, err)
	assert.Equal(t, "sunday", *stored.ArrivalDate)

	assert.False(t, tc.isMember(1, 1), "no longer arriving early leaves the early crew")
}

func TestActiveAttendingWithoutEditsIsUnchanged(t *testing.T) {
	tc := newTestCase(t)

	_, err := tc.svc.SetAttending(1, 2025, true, &PreferenceEdits{HousingTypePreference: strp("rv")})
	require.NoError(t, err)

	outcome, err := tc.svc.SetAttending(1, 2025, true, nil)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, outcome.Transition)
	assert.Equal(t, "rv", *outcome.Attendance.HousingTypePreference)
}

func TestInvalidUpdateChangesNothing(t *testing.T) {
	tc := newTestCase(t)

	_, err := tc.svc.SetAttending(1, 2025, true, &PreferenceEdits{HousingTypePreference: strp("rv")})
	require.NoError(t, err)

	_, err = tc.svc.SetAttending(1, 2025, true, &PreferenceEdits{
		HousingTypePreference:      strp("castle"),
		FromTransportationMethodID: intp(99),
		JobPreferenceIDs:           []int{1, 42},
		ShiftTimePreference:        strp("dawn"),
	})
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 4)
	assert.Contains(t, verr.Fields, "from_transportation_method_id")
	assert.Contains(t, verr.Fields, "job_preferences")

	stored, err := tc.svc.Current(1, 2025, false)
	require.NoError(t, err)
	assert.Equal(t, "rv", *stored.HousingTypePreference)
	assert.Nil(t, stored.DeletedAt)
}

func TestWithdrawKeepsPreferences(t *testing.T) {
	tc := newTestCase(t)

	created, err := tc.svc.SetAttending(1, 2025, true, &PreferenceEdits{HousingTypePreference: strp("tent")})
	require.NoError(t, err)

	outcome, err := tc.svc.SetAttending(1, 2025, false, nil)
	require.NoError(t, err)
	assert.Equal(t, Withdrawn, outcome.Transition)
	assert.Equal(t, pcmodel.Withdrawn, outcome.State)

	stored, err := tc.svc.Current(1, 2025, true)
	require.NoError(t, err)
	require.NotNil(t, stored.DeletedAt)
	assert.True(t, tc.now.Equal(*stored.DeletedAt))
	assert.Equal(t, "tent", *stored.HousingTypePreference)
	assert.Equal(t, created.Attendance.ID, stored.ID)

	_, err = tc.svc.Current(1, 2025, false)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	outcome, err = tc.svc.SetAttending(1, 2025, false, nil)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, outcome.Transition)
	assert.Equal(t, pcmodel.Withdrawn, outcome.State)
}

func TestReinstateKeepsRecordAndIgnoresEdits(t *testing.T) {
	tc := newTestCase(t)

	created, err := tc.svc.SetAttending(1, 2025, true, &PreferenceEdits{HousingTypePreference: strp("tent")})
	require.NoError(t, err)
	_, err = tc.svc.SetAttending(1, 2025, false, nil)
	require.NoError(t, err)

	outcome, err := tc.svc.SetAttending(1, 2025, true, &PreferenceEdits{HousingTypePreference: strp("van")})
	require.NoError(t, err)
	assert.Equal(t, Reinstated, outcome.Transition)
	assert.Equal(t, pcmodel.Active, outcome.State)
	assert.Equal(t, created.Attendance.ID, outcome.Attendance.ID)
	assert.Equal(t, "tent", *outcome.Attendance.HousingTypePreference)
	assert.Equal(t, 1, tc.attendanceStor.Count())
}

func TestYearsAreIndependent(t *testing.T) {
	tc := newTestCase(t)

	_, err := tc.svc.SetAttending(1, 2024, true, nil)
	require.NoError(t, err)

	outcome, err := tc.svc.SetAttending(1, 2025, true, nil)
	require.NoError(t, err)
	assert.Equal(t, Created, outcome.Transition)
	assert.Equal(t, 2, tc.attendanceStor.Count())
}

func TestFullCrewTeamDoesNotFailUpdate(t *testing.T) {
	tc := newTestCase(t)
	tc.teamStor = stor.NewInMemoryTeamStor([]pcmodel.Team{
		{ID: 1, Name: "Early Crew", MaxSize: 0, IsEarlyCrew: true},
	}, []pcmodel.User{{ID: 1}})
	tc.registry = teams.NewRegistry(tc.teamStor)
	tc.svc = NewService(tc.attendanceStor, tc.catalogStor, tc.registry)

	outcome, err := tc.svc.SetAttending(1, 2025, true, &PreferenceEdits{ArrivalDate: strp("wednesday1")})
	require.NoError(t, err)
	assert.Equal(t, Created, outcome.Transition)
	assert.False(t, tc.isMember(1, 1))
}

func TestSetPaidDues(t *testing.T) {
	tc := newTestCase(t)

	_, err := tc.svc.SetPaidDues(1, 2025, true)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = tc.svc.SetAttending(1, 2025, true, nil)
	require.NoError(t, err)

	attendance, err := tc.svc.SetPaidDues(1, 2025, true)
	require.NoError(t, err)
	assert.True(t, attendance.PaidDues)

	// Preference edits never touch dues.
	_, err = tc.svc.SetAttending(1, 2025, true, &PreferenceEdits{})
	require.NoError(t, err)

	stored, err := tc.svc.Current(1, 2025, false)
	require.NoError(t, err)
	assert.True(t, stored.PaidDues)
}
