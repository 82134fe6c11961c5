// Package teams is the team registry: membership with a hard capacity limit,
// team leads, and the administrative operations on teams.
package teams

import (
	"errors"
	"strings"

	"github.com/apex/log"
	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/clog"
	"github.com/led-dino/playacamp/pkg/lock"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/led-dino/playacamp/pkg/pcdb/stor"
)

const DefaultMaxSize = 1

// Registry serializes every membership change to a team through a per-team
// lock, on top of the row lock the stor takes in the database.
type Registry struct {
	teamStor stor.TeamStor
	locker   *lock.IdLocker[int]
}

func NewRegistry(teamStor stor.TeamStor) *Registry {
	return &Registry{
		teamStor: teamStor,
		locker:   lock.NewIdLocker[int](),
	}
}

// Join adds the user to the team. It fails with apperr.ErrTeamFull when the
// team has no room. Joining a team the user is already on succeeds and changes
// nothing.
func (r *Registry) Join(teamID, userID int) error {
	return r.locker.WithLock(teamID, func() error {
		added, err := r.teamStor.AddMemberIfSpace(teamID, userID)
		if err != nil {
			return err
		}

		if added {
			clog.For("teams").WithFields(fields(teamID, userID)).Info("joined team")
		}

		return nil
	})
}

// Leave removes the user from the team. Leaving a team the user isn't on is
// not an error, leaving a team that doesn't exist is apperr.ErrNotFound.
func (r *Registry) Leave(teamID, userID int) error {
	return r.locker.WithLock(teamID, func() error {
		if _, err := r.teamStor.GetTeamByID(teamID); err != nil {
			return err
		}

		removed, err := r.teamStor.RemoveMember(teamID, userID)
		if err != nil {
			return err
		}

		if removed != 0 {
			clog.For("teams").WithFields(fields(teamID, userID)).Info("left team")
		}

		return nil
	})
}

// Toggle flips the user's membership and returns whether they are a member
// afterward. Adding fails with apperr.ErrTeamFull when the team has no room;
// removing always succeeds.
func (r *Registry) Toggle(teamID, userID int) (bool, error) {
	var nowMember bool

	err := r.locker.WithLock(teamID, func() error {
		var err error
		nowMember, err = r.teamStor.ToggleMember(teamID, userID)
		return err
	})

	if err != nil {
		return false, err
	}

	clog.For("teams").WithFields(fields(teamID, userID)).WithField("member", nowMember).Info("toggled team membership")
	return nowMember, nil
}

// EnsureMembership makes the user's membership match member, toggling only
// when it differs.
func (r *Registry) EnsureMembership(teamID, userID int, member bool) error {
	return r.locker.WithLock(teamID, func() error {
		isMember, err := r.teamStor.IsMember(teamID, userID)
		switch {
		case err != nil:
			return err
		case isMember == member:
			return nil
		case member:
			_, err = r.teamStor.AddMemberIfSpace(teamID, userID)
		default:
			_, err = r.teamStor.RemoveMember(teamID, userID)
		}

		if err == nil {
			clog.For("teams").WithFields(fields(teamID, userID)).WithField("member", member).Info("ensured team membership")
		}

		return err
	})
}

// EnsureCrewMembership is EnsureMembership against the team flagged for crew.
// Having no such team is not an error; there is nothing to reconcile.
func (r *Registry) EnsureCrewMembership(crew pcmodel.Crew, userID int, member bool) error {
	team, err := r.teamStor.GetCrewTeam(crew)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return nil
	case err != nil:
		return err
	}

	return r.EnsureMembership(team.ID, userID, member)
}

func (r *Registry) Get(teamID int) (*pcmodel.Team, error) {
	return r.teamStor.GetTeamByID(teamID)
}

func (r *Registry) IsMember(teamID, userID int) (bool, error) {
	return r.teamStor.IsMember(teamID, userID)
}

func (r *Registry) Leads(teamID int) ([]pcmodel.User, error) {
	return r.teamStor.GetMembers(teamID, true)
}

func (r *Registry) NonLeads(teamID int) ([]pcmodel.User, error) {
	return r.teamStor.GetMembers(teamID, false)
}

// OrderedByRemainingSpace lists every team, emptiest first.
func (r *Registry) OrderedByRemainingSpace() ([]pcmodel.Team, error) {
	return r.teamStor.ListTeamsByRemainingSpace()
}

func (r *Registry) TeamsForUser(userID int) ([]pcmodel.Team, error) {
	return r.teamStor.GetTeamsForUser(userID)
}

// NewTeam describes a team to create. A nil MaxSize gets DefaultMaxSize.
type NewTeam struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxSize     *int   `json:"max_size"`
	IsEarlyCrew bool   `json:"is_early_crew"`
	IsLateCrew  bool   `json:"is_late_crew"`
}

func (nt NewTeam) validate() error {
	verr := apperr.NewValidationError()

	switch name := strings.TrimSpace(nt.Name); {
	case name == "":
		verr.Add("name", "This field is required.")
	case len(name) > 64:
		verr.Add("name", "Ensure this value has at most 64 characters.")
	}

	if nt.MaxSize != nil && *nt.MaxSize < 0 {
		verr.Add("max_size", "Ensure this value is greater than or equal to 0.")
	}

	return verr.OrNil()
}

func (r *Registry) CreateTeam(nt NewTeam) (*pcmodel.Team, error) {
	if err := nt.validate(); err != nil {
		return nil, err
	}

	team := &pcmodel.Team{
		Name:        strings.TrimSpace(nt.Name),
		Description: nt.Description,
		MaxSize:     DefaultMaxSize,
		IsEarlyCrew: nt.IsEarlyCrew,
		IsLateCrew:  nt.IsLateCrew,
	}

	if nt.MaxSize != nil {
		team.MaxSize = *nt.MaxSize
	}

	created, err := r.teamStor.CreateTeam(team)
	if err != nil {
		return nil, err
	}

	clog.For("teams").WithField("team", created.ID).WithField("slug", created.Slug).Info("created team")
	return created, nil
}

// DeleteTeam removes the team and all of its memberships.
func (r *Registry) DeleteTeam(teamID int) error {
	return r.locker.WithLock(teamID, func() error {
		if err := r.teamStor.DeleteTeam(teamID); err != nil {
			return err
		}

		clog.For("teams").WithField("team", teamID).Info("deleted team")
		return nil
	})
}

// SetLead marks an existing member as a lead (or not). The user must already be
// on the team.
func (r *Registry) SetLead(teamID, userID int, isLead bool) error {
	return r.locker.WithLock(teamID, func() error {
		return r.teamStor.SetLead(teamID, userID, isLead)
	})
}

func fields(teamID, userID int) log.Fields {
	return log.Fields{"team": teamID, "user": userID}
}
