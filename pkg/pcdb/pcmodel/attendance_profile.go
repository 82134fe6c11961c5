package pcmodel

import (
	"fmt"
	"time"
)

// AttendanceState is the lifecycle state of a user's attendance for one year.
type AttendanceState int

const (
	NoRecord AttendanceState = iota
	Active
	Withdrawn
)

func (s AttendanceState) String() string {
	switch s {
	case Active:
		return "active"
	case Withdrawn:
		return "withdrawn"
	default:
		return "no_record"
	}
}

func (s AttendanceState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AttendanceProfile is a user's intent to attend a given year, along with their
// logistics preferences. A record is never removed once created: withdrawing
// sets DeletedAt and attending again clears it.
type AttendanceProfile struct {
	ID        int        `json:"id"`
	UUID      string     `json:"uuid" gorm:"size:36"`
	DeletedAt *time.Time `json:"deleted_at"`

	UserID int   `json:"user_id" gorm:"uniqueIndex:idx_attendance_user_year;not null"`
	User   *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Year   int   `json:"year" gorm:"uniqueIndex:idx_attendance_user_year;index;not null"`

	HousingTypePreference      *string               `json:"housing_type_preference" gorm:"size:12"`
	ToTransportationMethodID   *int                  `json:"to_transportation_method_id"`
	ToTransportationMethod     *TransportationMethod `json:"to_transportation_method,omitempty" gorm:"foreignKey:ToTransportationMethodID;constraint:OnDelete:SET NULL"`
	FromTransportationMethodID *int                  `json:"from_transportation_method_id"`
	FromTransportationMethod   *TransportationMethod `json:"from_transportation_method,omitempty" gorm:"foreignKey:FromTransportationMethodID;constraint:OnDelete:SET NULL"`

	ArrivalDate   *string `json:"arrival_date" gorm:"size:16"`
	DepartureDate *string `json:"departure_date" gorm:"size:16"`

	HasEarlyPass   *bool `json:"has_early_pass"`
	HasTicket      *bool `json:"has_ticket"`
	HasVehiclePass *bool `json:"has_vehicle_pass"`
	PaidDues       bool  `json:"paid_dues"`

	BicycleStatus       *string `json:"bicycle_status" gorm:"size:10"`
	JobPreferences      []Job   `json:"job_preferences" gorm:"many2many:attendance_profile_job_preferences"`
	ShiftTimePreference *string `json:"shift_time_preference" gorm:"size:10"`
	ShiftDayPreference  *string `json:"shift_day_preference" gorm:"size:10"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// State is NoRecord only for a nil profile.
func (p *AttendanceProfile) State() AttendanceState {
	switch {
	case p == nil:
		return NoRecord
	case p.DeletedAt == nil:
		return Active
	default:
		return Withdrawn
	}
}

func (p *AttendanceProfile) ArrivesEarly() bool {
	return p.ArrivalDate != nil && EarlyArrivalChoices.Contains(*p.ArrivalDate)
}

func (p *AttendanceProfile) DepartsLate() bool {
	return p.DepartureDate != nil && LateDepartureChoices.Contains(*p.DepartureDate)
}

func (p *AttendanceProfile) PrettyArrival() string {
	return ArrivalChoices.LabelOf(p.ArrivalDate)
}

func (p *AttendanceProfile) PrettyDeparture() string {
	return DepartureChoices.LabelOf(p.DepartureDate)
}

func (p *AttendanceProfile) PrettyHousingTypePreference() string {
	return HousingChoices.LabelOf(p.HousingTypePreference)
}

func (p *AttendanceProfile) String() string {
	if p.User != nil {
		return fmt.Sprintf("%s[%d]", p.User, p.Year)
	}
	return fmt.Sprintf("%d[%d]", p.UserID, p.Year)
}
