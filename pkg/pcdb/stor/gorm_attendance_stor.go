package stor

import (
	"time"

	"github.com/hashicorp/go-uuid"
	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GormAttendanceStor struct {
	db *gorm.DB
}

func NewGormAttendanceStor(db *gorm.DB) *GormAttendanceStor {
	return &GormAttendanceStor{db: db}
}

func (s *GormAttendanceStor) preloaded(db *gorm.DB) *gorm.DB {
	return db.Preload("User").
		Preload("ToTransportationMethod").
		Preload("FromTransportationMethod").
		Preload("JobPreferences")
}

// GetAttendance returns the user's record for the year. Withdrawn records are
// only returned when includeWithdrawn is set.
func (s *GormAttendanceStor) GetAttendance(userID, year int, includeWithdrawn bool) (*pcmodel.AttendanceProfile, error) {
	query := s.preloaded(s.db).Where("user_id = ? AND year = ?", userID, year)
	if !includeWithdrawn {
		query = query.Where("deleted_at IS NULL")
	}

	var attendance pcmodel.AttendanceProfile
	if err := query.Order("id").First(&attendance).Error; err != nil {
		return nil, notFoundOr(err, "attendance for user %d in %d", userID, year)
	}

	return &attendance, nil
}

func (s *GormAttendanceStor) CreateAttendance(attendance *pcmodel.AttendanceProfile) (*pcmodel.AttendanceProfile, error) {
	var err error

	if attendance.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Omit("User", "ToTransportationMethod", "FromTransportationMethod", "JobPreferences.*").
			Create(attendance).Error
	})

	if err != nil {
		return nil, err
	}

	return attendance, nil
}

func (s *GormAttendanceStor) SetAttendanceDeletedAt(attendanceID int, deletedAt *time.Time) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		result := tx.Model(&pcmodel.AttendanceProfile{}).
			Where("id = ?", attendanceID).
			Update("deleted_at", deletedAt)
		return requireRowAffected(result, "attendance %d", attendanceID)
	})
}

// UpdateAttendancePreferences writes every preference field of attendance,
// including nil ones, and replaces its job preferences. DeletedAt and PaidDues
// are left alone.
func (s *GormAttendanceStor) UpdateAttendancePreferences(attendance *pcmodel.AttendanceProfile) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		result := tx.Model(&pcmodel.AttendanceProfile{}).
			Where("id = ?", attendance.ID).
			Updates(map[string]interface{}{
				"housing_type_preference":       attendance.HousingTypePreference,
				"to_transportation_method_id":   attendance.ToTransportationMethodID,
				"from_transportation_method_id": attendance.FromTransportationMethodID,
				"arrival_date":                  attendance.ArrivalDate,
				"departure_date":                attendance.DepartureDate,
				"has_early_pass":                attendance.HasEarlyPass,
				"has_ticket":                    attendance.HasTicket,
				"has_vehicle_pass":              attendance.HasVehiclePass,
				"bicycle_status":                attendance.BicycleStatus,
				"shift_time_preference":         attendance.ShiftTimePreference,
				"shift_day_preference":          attendance.ShiftDayPreference,
				"updated_at":                    time.Now(),
			})
		if err := requireRowAffected(result, "attendance %d", attendance.ID); err != nil {
			return err
		}

		association := tx.Model(&pcmodel.AttendanceProfile{ID: attendance.ID}).Association("JobPreferences")
		return replaceAssociation(association, attendance.JobPreferences, len(attendance.JobPreferences))
	})
}

func (s *GormAttendanceStor) SetPaidDues(attendanceID int, paid bool) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		result := tx.Model(&pcmodel.AttendanceProfile{}).
			Where("id = ?", attendanceID).
			Update("paid_dues", paid)
		return requireRowAffected(result, "attendance %d", attendanceID)
	})
}

// ListActiveAttendanceForYear returns the year's records that haven't been
// withdrawn, in creation order.
func (s *GormAttendanceStor) ListActiveAttendanceForYear(year int) ([]pcmodel.AttendanceProfile, error) {
	var attendances []pcmodel.AttendanceProfile
	err := s.preloaded(s.db).
		Where("year = ? AND deleted_at IS NULL", year).
		Order("id").
		Find(&attendances).Error
	return attendances, err
}

func requireRowAffected(result *gorm.DB, format string, args ...interface{}) error {
	switch {
	case result.Error != nil:
		return result.Error
	case result.RowsAffected == 0:
		return errors.Wrapf(apperr.ErrNotFound, format, args...)
	default:
		return nil
	}
}
