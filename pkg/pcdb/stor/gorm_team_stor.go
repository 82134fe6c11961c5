package stor

import (
	"fmt"
	"sort"

	"github.com/gosimple/slug"
	"github.com/hashicorp/go-uuid"
	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormTeamStor struct {
	db *gorm.DB
}

func NewGormTeamStor(db *gorm.DB) *GormTeamStor {
	return &GormTeamStor{db: db}
}

// CreateTeam creates the team with a slug derived from its name. When the slug
// is taken a counter is appended until it is unique.
func (s *GormTeamStor) CreateTeam(team *pcmodel.Team) (*pcmodel.Team, error) {
	var err error

	if team.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	slugOfName := slug.Make(team.Name)

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		team.Slug = slugOfName
		for slugNext := 1; ; slugNext++ {
			var count int64
			if err := tx.Model(&pcmodel.Team{}).Where("slug = ?", team.Slug).Count(&count).Error; err != nil {
				return err
			}

			if count == 0 {
				break
			}

			team.Slug = fmt.Sprintf("%s-%d", slugOfName, slugNext)
		}

		return tx.Create(team).Error
	})

	if err != nil {
		return nil, err
	}

	return team, nil
}

func (s *GormTeamStor) GetTeamByID(teamID int) (*pcmodel.Team, error) {
	var team pcmodel.Team
	if err := s.db.First(&team, teamID).Error; err != nil {
		return nil, notFoundOr(err, "team %d", teamID)
	}

	if err := fillMemberCount(s.db, &team); err != nil {
		return nil, err
	}

	return &team, nil
}

func (s *GormTeamStor) DeleteTeam(teamID int) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", teamID).Delete(&pcmodel.TeamMembership{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&pcmodel.Team{}, teamID)
		switch {
		case result.Error != nil:
			return result.Error
		case result.RowsAffected == 0:
			return errors.Wrapf(apperr.ErrNotFound, "team %d", teamID)
		default:
			return nil
		}
	})
}

// ListTeamsByRemainingSpace returns all teams ordered ascending by
// member count minus max size, so the emptiest teams come first. Teams with
// the same key are ordered by id.
func (s *GormTeamStor) ListTeamsByRemainingSpace() ([]pcmodel.Team, error) {
	var teams []pcmodel.Team
	if err := s.db.Order("id").Find(&teams).Error; err != nil {
		return nil, err
	}

	var counts []struct {
		TeamID int
		Count  int
	}

	err := s.db.Model(&pcmodel.TeamMembership{}).
		Select("team_id, count(*) as count").
		Group("team_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	countByTeamID := make(map[int]int, len(counts))
	for _, c := range counts {
		countByTeamID[c.TeamID] = c.Count
	}

	for i := range teams {
		teams[i].MemberCount = countByTeamID[teams[i].ID]
	}

	sortByRemainingSpace(teams)

	return teams, nil
}

func (s *GormTeamStor) GetTeamsForUser(userID int) ([]pcmodel.Team, error) {
	var teams []pcmodel.Team
	err := s.db.Where("id in (select team_id from team_memberships where user_id = ?)", userID).
		Order("id").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}

	for i := range teams {
		if err := fillMemberCount(s.db, &teams[i]); err != nil {
			return nil, err
		}
	}

	return teams, nil
}

// GetCrewTeam returns the first team flagged for the crew. ErrNotFound means
// no team is flagged.
func (s *GormTeamStor) GetCrewTeam(crew pcmodel.Crew) (*pcmodel.Team, error) {
	query := s.db.Order("id")
	switch crew {
	case pcmodel.EarlyCrew:
		query = query.Where("is_early_crew = ?", true)
	case pcmodel.LateCrew:
		query = query.Where("is_late_crew = ?", true)
	default:
		return nil, errors.Errorf("unknown crew '%s'", crew)
	}

	var team pcmodel.Team
	if err := query.First(&team).Error; err != nil {
		return nil, notFoundOr(err, "%s crew team", crew)
	}

	if err := fillMemberCount(s.db, &team); err != nil {
		return nil, err
	}

	return &team, nil
}

func (s *GormTeamStor) IsMember(teamID, userID int) (bool, error) {
	return isMember(s.db, teamID, userID)
}

// AddMemberIfSpace adds the user to the team unless the team is full. It
// returns false when the user was already a member.
func (s *GormTeamStor) AddMemberIfSpace(teamID, userID int) (bool, error) {
	var added bool

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		added = false

		team, err := lockTeam(tx, teamID)
		if err != nil {
			return err
		}

		member, err := isMember(tx, teamID, userID)
		switch {
		case err != nil:
			return err
		case member:
			return nil
		}

		if err := insertMemberIfSpace(tx, team, userID); err != nil {
			return err
		}

		added = true
		return nil
	})

	return added, err
}

// RemoveMember removes every membership row for the pair and returns how many
// there were. Removing a non-member is not an error.
func (s *GormTeamStor) RemoveMember(teamID, userID int) (int64, error) {
	var removed int64

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		result := tx.Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&pcmodel.TeamMembership{})
		removed = result.RowsAffected
		return result.Error
	})

	return removed, err
}

// ToggleMember removes the user from the team when they are a member and adds
// them otherwise. It returns whether the user is a member afterward. The check
// and the write happen in one transaction holding the team row lock.
func (s *GormTeamStor) ToggleMember(teamID, userID int) (bool, error) {
	var nowMember bool

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		team, err := lockTeam(tx, teamID)
		if err != nil {
			return err
		}

		member, err := isMember(tx, teamID, userID)
		if err != nil {
			return err
		}

		if member {
			nowMember = false
			return tx.Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&pcmodel.TeamMembership{}).Error
		}

		if err := insertMemberIfSpace(tx, team, userID); err != nil {
			return err
		}

		nowMember = true
		return nil
	})

	return nowMember, err
}

func (s *GormTeamStor) GetMembers(teamID int, isLead bool) ([]pcmodel.User, error) {
	var users []pcmodel.User
	err := s.db.Where("id in (select user_id from team_memberships where team_id = ? and is_lead = ?)", teamID, isLead).
		Order("id").
		Find(&users).Error
	return users, err
}

func (s *GormTeamStor) SetLead(teamID, userID int, isLead bool) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		result := tx.Model(&pcmodel.TeamMembership{}).
			Where("team_id = ? AND user_id = ?", teamID, userID).
			Update("is_lead", isLead)
		switch {
		case result.Error != nil:
			return result.Error
		case result.RowsAffected == 0:
			return errors.Wrapf(apperr.ErrNotFound, "membership of user %d in team %d", userID, teamID)
		default:
			return nil
		}
	})
}

// lockTeam loads the team holding its row lock until the transaction ends, so
// concurrent membership changes to one team are serialized by the database.
func lockTeam(tx *gorm.DB, teamID int) (*pcmodel.Team, error) {
	var team pcmodel.Team
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&team, teamID).Error; err != nil {
		return nil, notFoundOr(err, "team %d", teamID)
	}

	return &team, nil
}

func insertMemberIfSpace(tx *gorm.DB, team *pcmodel.Team, userID int) error {
	if err := fillMemberCount(tx, team); err != nil {
		return err
	}

	if team.IsFull() {
		return errors.Wrapf(apperr.ErrTeamFull, "%s", team)
	}

	var userCount int64
	if err := tx.Model(&pcmodel.User{}).Where("id = ?", userID).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount == 0 {
		return errors.Wrapf(apperr.ErrNotFound, "user %d", userID)
	}

	return tx.Create(&pcmodel.TeamMembership{TeamID: team.ID, UserID: userID}).Error
}

func isMember(db *gorm.DB, teamID, userID int) (bool, error) {
	var count int64
	err := db.Model(&pcmodel.TeamMembership{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count != 0, err
}

func fillMemberCount(db *gorm.DB, team *pcmodel.Team) error {
	var count int64
	if err := db.Model(&pcmodel.TeamMembership{}).Where("team_id = ?", team.ID).Count(&count).Error; err != nil {
		return err
	}

	team.MemberCount = int(count)
	return nil
}

func sortByRemainingSpace(teams []pcmodel.Team) {
	sort.SliceStable(teams, func(i, j int) bool {
		ki, kj := teams[i].RemainingSpaceKey(), teams[j].RemainingSpaceKey()
		if ki != kj {
			return ki < kj
		}
		return teams[i].ID < teams[j].ID
	})
}
