package stor

import (
	"sync"
	"time"

	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/pkg/errors"
)

type InMemoryAttendanceStor struct {
	mu          sync.Mutex
	attendances []pcmodel.AttendanceProfile
}

func NewInMemoryAttendanceStor(attendances []pcmodel.AttendanceProfile) *InMemoryAttendanceStor {
	return &InMemoryAttendanceStor{attendances: attendances}
}

func (s *InMemoryAttendanceStor) GetAttendance(userID, year int, includeWithdrawn bool) (*pcmodel.AttendanceProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.attendances {
		if a.UserID == userID && a.Year == year && (includeWithdrawn || a.DeletedAt == nil) {
			return &a, nil
		}
	}

	return nil, errors.Wrapf(apperr.ErrNotFound, "attendance for user %d in %d", userID, year)
}

func (s *InMemoryAttendanceStor) CreateAttendance(attendance *pcmodel.AttendanceProfile) (*pcmodel.AttendanceProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.attendances {
		if a.UserID == attendance.UserID && a.Year == attendance.Year {
			return nil, errors.Errorf("duplicate attendance for user %d in %d", a.UserID, a.Year)
		}
	}

	attendance.ID = len(s.attendances) + 1
	s.attendances = append(s.attendances, *attendance)
	return attendance, nil
}

func (s *InMemoryAttendanceStor) SetAttendanceDeletedAt(attendanceID int, deletedAt *time.Time) error {
	return s.update(attendanceID, func(a *pcmodel.AttendanceProfile) {
		a.DeletedAt = deletedAt
	})
}

func (s *InMemoryAttendanceStor) UpdateAttendancePreferences(attendance *pcmodel.AttendanceProfile) error {
	return s.update(attendance.ID, func(a *pcmodel.AttendanceProfile) {
		deletedAt, paidDues := a.DeletedAt, a.PaidDues
		*a = *attendance
		a.DeletedAt, a.PaidDues = deletedAt, paidDues
	})
}

func (s *InMemoryAttendanceStor) SetPaidDues(attendanceID int, paid bool) error {
	return s.update(attendanceID, func(a *pcmodel.AttendanceProfile) {
		a.PaidDues = paid
	})
}

func (s *InMemoryAttendanceStor) ListActiveAttendanceForYear(year int) ([]pcmodel.AttendanceProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active []pcmodel.AttendanceProfile
	for _, a := range s.attendances {
		if a.Year == year && a.DeletedAt == nil {
			active = append(active, a)
		}
	}
	return active, nil
}

// Count is the number of records, withdrawn ones included.
func (s *InMemoryAttendanceStor) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attendances)
}

func (s *InMemoryAttendanceStor) update(attendanceID int, fn func(a *pcmodel.AttendanceProfile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.attendances {
		if s.attendances[i].ID == attendanceID {
			fn(&s.attendances[i])
			return nil
		}
	}

	return errors.Wrapf(apperr.ErrNotFound, "attendance %d", attendanceID)
}
