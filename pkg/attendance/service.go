// Package attendance drives the per (user, year) attendance state machine:
// signing up, editing preferences, withdrawing and coming back.
package attendance

import (
	"errors"
	"time"

	"github.com/apex/log"
	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/clog"
	"github.com/led-dino/playacamp/pkg/lock"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/led-dino/playacamp/pkg/pcdb/stor"
)

// Transition names the edge SetAttending took.
type Transition int

const (
	Unchanged Transition = iota
	Created
	Updated
	Withdrawn
	Reinstated
)

func (t Transition) String() string {
	switch t {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Withdrawn:
		return "withdrawn"
	case Reinstated:
		return "reinstated"
	default:
		return "unchanged"
	}
}

func (t Transition) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type Outcome struct {
	Transition Transition                 `json:"transition"`
	State      pcmodel.AttendanceState    `json:"state"`
	Attendance *pcmodel.AttendanceProfile `json:"attendance"`
}

// CrewReconciler keeps the early and late crew teams in step with a user's
// arrival and departure choices.
type CrewReconciler interface {
	EnsureCrewMembership(crew pcmodel.Crew, userID int, member bool) error
}

type userYear struct {
	userID, year int
}

type Service struct {
	attendanceStor stor.AttendanceStor
	catalogStor    stor.CatalogStor
	crews          CrewReconciler
	locker         *lock.IdLocker[userYear]

	// Now supplies the withdrawal timestamp.
	Now func() time.Time
}

// NewService creates the attendance service. crews may be nil, in which case
// crew teams are never touched.
func NewService(attendanceStor stor.AttendanceStor, catalogStor stor.CatalogStor, crews CrewReconciler) *Service {
	return &Service{
		attendanceStor: attendanceStor,
		catalogStor:    catalogStor,
		crews:          crews,
		locker:         lock.NewIdLocker[userYear](),
		Now:            time.Now,
	}
}

// Current returns the user's record for the year, or apperr.ErrNotFound.
func (s *Service) Current(userID, year int, includeWithdrawn bool) (*pcmodel.AttendanceProfile, error) {
	return s.attendanceStor.GetAttendance(userID, year, includeWithdrawn)
}

// SetAttending applies the user's intent for the year. edits may be nil when
// the request only carries the intent. Invalid edits return an
// *apperr.ValidationError and leave everything as it was.
func (s *Service) SetAttending(userID, year int, isAttending bool, edits *PreferenceEdits) (*Outcome, error) {
	var outcome *Outcome

	err := s.locker.WithLock(userYear{userID, year}, func() error {
		current, err := s.attendanceStor.GetAttendance(userID, year, true)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			current = nil
		case err != nil:
			return err
		}

		outcome, err = s.transition(current, userID, year, isAttending, edits)
		return err
	})

	if err != nil {
		return nil, err
	}

	if outcome.Transition != Unchanged {
		clog.For("attendance").WithFields(log.Fields{
			"user":       userID,
			"year":       year,
			"transition": outcome.Transition,
		}).Info("attendance changed")
	}

	return outcome, nil
}

func (s *Service) transition(current *pcmodel.AttendanceProfile, userID, year int, isAttending bool, edits *PreferenceEdits) (*Outcome, error) {
	switch state := current.State(); {
	case state == pcmodel.NoRecord && isAttending:
		return s.create(userID, year, edits)

	case state == pcmodel.Active && isAttending:
		if edits == nil {
			return unchanged(current), nil
		}
		return s.update(current, edits)

	case state == pcmodel.Active:
		now := s.Now()
		if err := s.attendanceStor.SetAttendanceDeletedAt(current.ID, &now); err != nil {
			return nil, err
		}
		current.DeletedAt = &now
		return &Outcome{Transition: Withdrawn, State: pcmodel.Withdrawn, Attendance: current}, nil

	case state == pcmodel.Withdrawn && isAttending:
		if err := s.attendanceStor.SetAttendanceDeletedAt(current.ID, nil); err != nil {
			return nil, err
		}
		current.DeletedAt = nil
		return &Outcome{Transition: Reinstated, State: pcmodel.Active, Attendance: current}, nil

	default:
		return unchanged(current), nil
	}
}

func unchanged(current *pcmodel.AttendanceProfile) *Outcome {
	return &Outcome{Transition: Unchanged, State: current.State(), Attendance: current}
}

func (s *Service) create(userID, year int, edits *PreferenceEdits) (*Outcome, error) {
	attendance := &pcmodel.AttendanceProfile{UserID: userID, Year: year}

	if edits != nil {
		resolved, err := edits.validate(s.catalogStor)
		if err != nil {
			return nil, err
		}
		resolved.applyTo(attendance)
	}

	created, err := s.attendanceStor.CreateAttendance(attendance)
	if err != nil {
		return nil, err
	}

	if edits != nil {
		s.reconcileCrews(created)
	}

	return &Outcome{Transition: Created, State: pcmodel.Active, Attendance: created}, nil
}

func (s *Service) update(current *pcmodel.AttendanceProfile, edits *PreferenceEdits) (*Outcome, error) {
	resolved, err := edits.validate(s.catalogStor)
	if err != nil {
		return nil, err
	}

	updated := *current
	resolved.applyTo(&updated)

	if err := s.attendanceStor.UpdateAttendancePreferences(&updated); err != nil {
		return nil, err
	}

	s.reconcileCrews(&updated)

	return &Outcome{Transition: Updated, State: pcmodel.Active, Attendance: &updated}, nil
}

// reconcileCrews puts the user on the early and late crew teams exactly when
// their dates call for it. A full crew team only gets logged; the attendance
// change itself has already been saved.
func (s *Service) reconcileCrews(a *pcmodel.AttendanceProfile) {
	if s.crews == nil {
		return
	}

	crews := []struct {
		crew   pcmodel.Crew
		member bool
	}{
		{pcmodel.EarlyCrew, a.ArrivesEarly()},
		{pcmodel.LateCrew, a.DepartsLate()},
	}

	for _, c := range crews {
		if err := s.crews.EnsureCrewMembership(c.crew, a.UserID, c.member); err != nil {
			clog.For("attendance").WithFields(log.Fields{
				"user": a.UserID,
				"crew": c.crew,
			}).Warnf("Unable to update crew team membership: %s", err)
		}
	}
}

// SetPaidDues records whether the user has paid dues for the year. Withdrawn
// records can be marked too.
func (s *Service) SetPaidDues(userID, year int, paid bool) (*pcmodel.AttendanceProfile, error) {
	var attendance *pcmodel.AttendanceProfile

	err := s.locker.WithLock(userYear{userID, year}, func() error {
		var err error
		if attendance, err = s.attendanceStor.GetAttendance(userID, year, true); err != nil {
			return err
		}

		if err := s.attendanceStor.SetPaidDues(attendance.ID, paid); err != nil {
			return err
		}

		attendance.PaidDues = paid
		return nil
	})

	if err != nil {
		return nil, err
	}

	return attendance, nil
}
