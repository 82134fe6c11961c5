package pcmodel

import (
	"fmt"
	"time"
)

type Team struct {
	ID          int              `json:"id"`
	UUID        string           `json:"uuid" gorm:"size:36"`
	Slug        string           `json:"slug" gorm:"uniqueIndex;size:80"`
	Name        string           `json:"name" gorm:"size:64"`
	Description string           `json:"description"`
	MaxSize     int              `json:"max_size"`
	IsEarlyCrew bool             `json:"is_early_crew"`
	IsLateCrew  bool             `json:"is_late_crew"`
	Memberships []TeamMembership `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// MemberCount is filled in by the stor when the team is loaded.
	MemberCount int `json:"member_count" gorm:"-"`
}

// IsFull is checked before a member is added, so a team with MaxSize 0 is
// always full.
func (t Team) IsFull() bool {
	return t.MemberCount >= t.MaxSize
}

// RemainingSpaceKey is the ordering key for team listings. It is negative while
// a team has room and grows as the team fills up.
func (t Team) RemainingSpaceKey() int {
	return t.MemberCount - t.MaxSize
}

func (t Team) String() string {
	return fmt.Sprintf("%s (%d/%d)", t.Name, t.MemberCount, t.MaxSize)
}

// TeamMembership is the edge between a team and a user. A (team, user) pair
// appears at most once.
type TeamMembership struct {
	ID        int       `json:"id"`
	TeamID    int       `json:"team_id" gorm:"uniqueIndex:idx_team_member;not null"`
	Team      *Team     `json:"-" gorm:"foreignKey:TeamID"`
	UserID    int       `json:"user_id" gorm:"uniqueIndex:idx_team_member;not null;index"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	IsLead    bool      `json:"is_lead"`
	CreatedAt time.Time `json:"created_at"`
}

func (m TeamMembership) String() string {
	return fmt.Sprintf("<%d, %d>", m.TeamID, m.UserID)
}

// Crew names the teams that arrival and departure choices feed into.
type Crew string

const (
	EarlyCrew Crew = "early"
	LateCrew  Crew = "late"
)
