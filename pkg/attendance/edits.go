package attendance

import (
	"errors"
	"fmt"

	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/led-dino/playacamp/pkg/pcdb/stor"
)

// PreferenceEdits is the attendance preference form. It is always applied as a
// whole: a field left nil clears the stored value.
type PreferenceEdits struct {
	HousingTypePreference      *string `json:"housing_type_preference"`
	ToTransportationMethodID   *int    `json:"to_transportation_method_id"`
	FromTransportationMethodID *int    `json:"from_transportation_method_id"`
	ArrivalDate                *string `json:"arrival_date"`
	DepartureDate              *string `json:"departure_date"`
	HasEarlyPass               *bool   `json:"has_early_pass"`
	HasTicket                  *bool   `json:"has_ticket"`
	HasVehiclePass             *bool   `json:"has_vehicle_pass"`
	BicycleStatus              *string `json:"bicycle_status"`
	JobPreferenceIDs           []int   `json:"job_preferences"`
	ShiftTimePreference        *string `json:"shift_time_preference"`
	ShiftDayPreference         *string `json:"shift_day_preference"`
}

// resolvedEdits is a validated PreferenceEdits with its job ids loaded.
type resolvedEdits struct {
	*PreferenceEdits
	jobs []pcmodel.Job
}

func invalidChoice(value string) string {
	return fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", value)
}

// validate checks every field against its choice table or catalog and reports
// all problems at once.
func (e *PreferenceEdits) validate(catalogStor stor.CatalogStor) (*resolvedEdits, error) {
	verr := apperr.NewValidationError()

	choiceFields := []struct {
		name    string
		value   *string
		choices pcmodel.Choices
	}{
		{"housing_type_preference", e.HousingTypePreference, pcmodel.HousingChoices},
		{"arrival_date", e.ArrivalDate, pcmodel.ArrivalChoices},
		{"departure_date", e.DepartureDate, pcmodel.DepartureChoices},
		{"bicycle_status", e.BicycleStatus, pcmodel.BicycleChoices},
		{"shift_time_preference", e.ShiftTimePreference, pcmodel.ShiftTimeChoices},
		{"shift_day_preference", e.ShiftDayPreference, pcmodel.ShiftDayChoices},
	}

	for _, f := range choiceFields {
		if f.value != nil && !f.choices.Contains(*f.value) {
			verr.Add(f.name, invalidChoice(*f.value))
		}
	}

	transportFields := []struct {
		name string
		id   *int
	}{
		{"to_transportation_method_id", e.ToTransportationMethodID},
		{"from_transportation_method_id", e.FromTransportationMethodID},
	}

	for _, f := range transportFields {
		if f.id == nil {
			continue
		}

		_, err := catalogStor.GetTransportationMethodByID(*f.id)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			verr.Add(f.name, invalidChoice(fmt.Sprint(*f.id)))
		case err != nil:
			return nil, err
		}
	}

	jobIDs := uniqueIDs(e.JobPreferenceIDs)
	jobs, err := catalogStor.GetJobsByIDs(jobIDs)
	if err != nil {
		return nil, err
	}

	if missing := missingJobID(jobIDs, jobs); missing != 0 {
		verr.Add("job_preferences", invalidChoice(fmt.Sprint(missing)))
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return &resolvedEdits{PreferenceEdits: e, jobs: jobs}, nil
}

// applyTo overwrites every preference field of a.
func (r *resolvedEdits) applyTo(a *pcmodel.AttendanceProfile) {
	a.HousingTypePreference = r.HousingTypePreference
	a.ToTransportationMethodID = r.ToTransportationMethodID
	a.FromTransportationMethodID = r.FromTransportationMethodID
	a.ArrivalDate = r.ArrivalDate
	a.DepartureDate = r.DepartureDate
	a.HasEarlyPass = r.HasEarlyPass
	a.HasTicket = r.HasTicket
	a.HasVehiclePass = r.HasVehiclePass
	a.BicycleStatus = r.BicycleStatus
	a.JobPreferences = r.jobs
	a.ShiftTimePreference = r.ShiftTimePreference
	a.ShiftDayPreference = r.ShiftDayPreference
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	var unique []int
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}

// missingJobID returns the first id that has no job, or 0.
func missingJobID(ids []int, jobs []pcmodel.Job) int {
	found := make(map[int]bool, len(jobs))
	for _, job := range jobs {
		found[job.ID] = true
	}

	for _, id := range ids {
		if !found[id] {
			return id
		}
	}

	return 0
}
