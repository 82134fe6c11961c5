package stor

import (
	"fmt"
	"sync"

	"github.com/gosimple/slug"
	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/pkg/errors"
)

// InMemoryTeamStor is a TeamStor over slices. Its mutex makes each method
// atomic, matching the transactional guarantees of GormTeamStor.
type InMemoryTeamStor struct {
	mu          sync.Mutex
	teams       []pcmodel.Team
	users       []pcmodel.User
	memberships []pcmodel.TeamMembership
	nextID      int
}

func NewInMemoryTeamStor(teams []pcmodel.Team, users []pcmodel.User) *InMemoryTeamStor {
	s := &InMemoryTeamStor{users: users, nextID: 1}
	for _, t := range teams {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
		s.teams = append(s.teams, t)
	}
	return s
}

func (s *InMemoryTeamStor) CreateTeam(team *pcmodel.Team) (*pcmodel.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team.ID = s.nextID
	s.nextID++

	base := slug.Make(team.Name)
	team.Slug = base
	for n := 1; s.slugTaken(team.Slug); n++ {
		team.Slug = fmt.Sprintf("%s-%d", base, n)
	}

	s.teams = append(s.teams, *team)
	return team, nil
}

func (s *InMemoryTeamStor) slugTaken(teamSlug string) bool {
	for _, t := range s.teams {
		if t.Slug == teamSlug {
			return true
		}
	}
	return false
}

func (s *InMemoryTeamStor) GetTeamByID(teamID int) (*pcmodel.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findTeam(teamID)
}

func (s *InMemoryTeamStor) DeleteTeam(teamID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.teams {
		if s.teams[i].ID == teamID {
			s.teams = append(s.teams[:i], s.teams[i+1:]...)
			s.removeMemberships(func(m pcmodel.TeamMembership) bool { return m.TeamID == teamID })
			return nil
		}
	}

	return errors.Wrapf(apperr.ErrNotFound, "team %d", teamID)
}

func (s *InMemoryTeamStor) ListTeamsByRemainingSpace() ([]pcmodel.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams := make([]pcmodel.Team, 0, len(s.teams))
	for _, t := range s.teams {
		t.MemberCount = s.countMembers(t.ID)
		teams = append(teams, t)
	}

	sortByRemainingSpace(teams)
	return teams, nil
}

func (s *InMemoryTeamStor) GetTeamsForUser(userID int) ([]pcmodel.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var teams []pcmodel.Team
	for _, t := range s.teams {
		if s.isMember(t.ID, userID) {
			t.MemberCount = s.countMembers(t.ID)
			teams = append(teams, t)
		}
	}
	return teams, nil
}

func (s *InMemoryTeamStor) GetCrewTeam(crew pcmodel.Crew) (*pcmodel.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.teams {
		if (crew == pcmodel.EarlyCrew && t.IsEarlyCrew) || (crew == pcmodel.LateCrew && t.IsLateCrew) {
			t.MemberCount = s.countMembers(t.ID)
			return &t, nil
		}
	}

	return nil, errors.Wrapf(apperr.ErrNotFound, "%s crew team", crew)
}

func (s *InMemoryTeamStor) IsMember(teamID, userID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isMember(teamID, userID), nil
}

func (s *InMemoryTeamStor) AddMemberIfSpace(teamID, userID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, err := s.findTeam(teamID)
	switch {
	case err != nil:
		return false, err
	case s.isMember(teamID, userID):
		return false, nil
	}

	if err := s.insertIfSpace(team, userID); err != nil {
		return false, err
	}

	return true, nil
}

func (s *InMemoryTeamStor) RemoveMember(teamID, userID int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.removeMemberships(func(m pcmodel.TeamMembership) bool {
		return m.TeamID == teamID && m.UserID == userID
	})
	return removed, nil
}

func (s *InMemoryTeamStor) ToggleMember(teamID, userID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, err := s.findTeam(teamID)
	if err != nil {
		return false, err
	}

	if s.isMember(teamID, userID) {
		s.removeMemberships(func(m pcmodel.TeamMembership) bool {
			return m.TeamID == teamID && m.UserID == userID
		})
		return false, nil
	}

	if err := s.insertIfSpace(team, userID); err != nil {
		return false, err
	}

	return true, nil
}

func (s *InMemoryTeamStor) GetMembers(teamID int, isLead bool) ([]pcmodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []pcmodel.User
	for _, u := range s.users {
		for _, m := range s.memberships {
			if m.TeamID == teamID && m.UserID == u.ID && m.IsLead == isLead {
				users = append(users, u)
				break
			}
		}
	}
	return users, nil
}

func (s *InMemoryTeamStor) SetLead(teamID, userID int, isLead bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.memberships {
		if s.memberships[i].TeamID == teamID && s.memberships[i].UserID == userID {
			s.memberships[i].IsLead = isLead
			found = true
		}
	}

	if !found {
		return errors.Wrapf(apperr.ErrNotFound, "membership of user %d in team %d", userID, teamID)
	}
	return nil
}

func (s *InMemoryTeamStor) findTeam(teamID int) (*pcmodel.Team, error) {
	for _, t := range s.teams {
		if t.ID == teamID {
			t.MemberCount = s.countMembers(teamID)
			return &t, nil
		}
	}
	return nil, errors.Wrapf(apperr.ErrNotFound, "team %d", teamID)
}

func (s *InMemoryTeamStor) insertIfSpace(team *pcmodel.Team, userID int) error {
	if team.IsFull() {
		return errors.Wrapf(apperr.ErrTeamFull, "%s", team)
	}

	if !s.userExists(userID) {
		return errors.Wrapf(apperr.ErrNotFound, "user %d", userID)
	}

	s.memberships = append(s.memberships, pcmodel.TeamMembership{
		ID:     len(s.memberships) + 1,
		TeamID: team.ID,
		UserID: userID,
	})
	return nil
}

func (s *InMemoryTeamStor) userExists(userID int) bool {
	for _, u := range s.users {
		if u.ID == userID {
			return true
		}
	}
	return false
}

func (s *InMemoryTeamStor) isMember(teamID, userID int) bool {
	for _, m := range s.memberships {
		if m.TeamID == teamID && m.UserID == userID {
			return true
		}
	}
	return false
}

func (s *InMemoryTeamStor) countMembers(teamID int) int {
	count := 0
	for _, m := range s.memberships {
		if m.TeamID == teamID {
			count++
		}
	}
	return count
}

func (s *InMemoryTeamStor) removeMemberships(match func(m pcmodel.TeamMembership) bool) int64 {
	var (
		kept    []pcmodel.TeamMembership
		removed int64
	)

	for _, m := range s.memberships {
		if match(m) {
			removed++
			continue
		}
		kept = append(kept, m)
	}

	s.memberships = kept
	return removed
}

// AddMembership inserts a membership edge without any capacity or uniqueness
// checks. Tests use it to set up rows the public methods refuse to create.
func (s *InMemoryTeamStor) AddMembership(m pcmodel.TeamMembership) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberships = append(s.memberships, m)
}
