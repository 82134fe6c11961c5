package stor

import (
	"time"

	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"gorm.io/gorm"
)

type UserStor interface {
	CreateUser(user *pcmodel.User) (*pcmodel.User, error)
	GetUserByID(userID int) (*pcmodel.User, error)
	GetUserByUsername(username string) (*pcmodel.User, error)
	GetUserByAPIToken(apitoken string) (*pcmodel.User, error)
}

// TeamStor owns teams and their membership edges. Every method that adds a
// member checks capacity and inserts atomically.
type TeamStor interface {
	CreateTeam(team *pcmodel.Team) (*pcmodel.Team, error)
	GetTeamByID(teamID int) (*pcmodel.Team, error)
	DeleteTeam(teamID int) error
	ListTeamsByRemainingSpace() ([]pcmodel.Team, error)
	GetTeamsForUser(userID int) ([]pcmodel.Team, error)
	GetCrewTeam(crew pcmodel.Crew) (*pcmodel.Team, error)
	IsMember(teamID, userID int) (bool, error)
	AddMemberIfSpace(teamID, userID int) (bool, error)
	RemoveMember(teamID, userID int) (int64, error)
	ToggleMember(teamID, userID int) (bool, error)
	GetMembers(teamID int, isLead bool) ([]pcmodel.User, error)
	SetLead(teamID, userID int, isLead bool) error
}

type AttendanceStor interface {
	GetAttendance(userID, year int, includeWithdrawn bool) (*pcmodel.AttendanceProfile, error)
	CreateAttendance(attendance *pcmodel.AttendanceProfile) (*pcmodel.AttendanceProfile, error)
	SetAttendanceDeletedAt(attendanceID int, deletedAt *time.Time) error
	UpdateAttendancePreferences(attendance *pcmodel.AttendanceProfile) error
	SetPaidDues(attendanceID int, paid bool) error
	ListActiveAttendanceForYear(year int) ([]pcmodel.AttendanceProfile, error)
}

type ProfileStor interface {
	GetOrCreateProfile(userID int) (*pcmodel.UserProfile, error)
	UpdateProfileBasics(profile *pcmodel.UserProfile) error
	ReplaceSkills(userID int, skillIDs []int) error
	ReplaceFoodRestrictions(userID int, foodRestrictionIDs []int) error
	UpdateSocialMediaLinks(userID int, links map[string]string) error
	SetVerified(userID int, verified *bool) error
	SearchVerifiedProfiles(search string) ([]pcmodel.UserProfile, error)
	ListProfiles() ([]pcmodel.UserProfile, error)
}

// CatalogStor covers the administrator maintained lookup tables.
type CatalogStor interface {
	CreateSkill(skill *pcmodel.Skill) (*pcmodel.Skill, error)
	CreateFoodRestriction(fr *pcmodel.FoodRestriction) (*pcmodel.FoodRestriction, error)
	CreateJob(job *pcmodel.Job) (*pcmodel.Job, error)
	CreateTransportationMethod(tm *pcmodel.TransportationMethod) (*pcmodel.TransportationMethod, error)
	CreateZipcode(zipcode *pcmodel.Zipcode) (*pcmodel.Zipcode, error)
	GetJobsByIDs(jobIDs []int) ([]pcmodel.Job, error)
	GetTransportationMethodByID(id int) (*pcmodel.TransportationMethod, error)
	GetZipcode(code string) (*pcmodel.Zipcode, error)
	ListSkills() ([]pcmodel.Skill, error)
	ListFoodRestrictions() ([]pcmodel.FoodRestriction, error)
	ListJobs() ([]pcmodel.Job, error)
	ListTransportationMethods() ([]pcmodel.TransportationMethod, error)
}

type Stors struct {
	UserStor       UserStor
	TeamStor       TeamStor
	AttendanceStor AttendanceStor
	ProfileStor    ProfileStor
	CatalogStor    CatalogStor
}

func NewGormStors(db *gorm.DB) *Stors {
	return &Stors{
		UserStor:       NewGormUserStor(db),
		TeamStor:       NewGormTeamStor(db),
		AttendanceStor: NewGormAttendanceStor(db),
		ProfileStor:    NewGormProfileStor(db),
		CatalogStor:    NewGormCatalogStor(db),
	}
}
