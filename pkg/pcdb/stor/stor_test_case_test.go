package stor

import (
	"fmt"
	"testing"

	"github.com/led-dino/playacamp/pkg/pcdb"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type storTestCase struct {
	*testing.T
	db    *gorm.DB
	stors *Stors
}

func newStorTestCase(t *testing.T) *storTestCase {
	db, err := pcdb.OpenSqliteInMemory()
	require.NoErrorf(t, err, "Opening sqlite failed: %s", err)

	return &storTestCase{T: t, db: db, stors: NewGormStors(db)}
}

func (tc *storTestCase) createUser(username string) *pcmodel.User {
	user, err := tc.stors.UserStor.CreateUser(&pcmodel.User{
		Username:  username,
		FirstName: username,
		LastName:  "Tester",
		Email:     fmt.Sprintf("%s@test.com", username),
		APIToken:  username + "-token",
	})
	require.NoErrorf(tc.T, err, "Failed creating user %s: %s", username, err)
	return user
}

func (tc *storTestCase) createTeam(name string, maxSize int) *pcmodel.Team {
	team, err := tc.stors.TeamStor.CreateTeam(&pcmodel.Team{Name: name, MaxSize: maxSize})
	require.NoErrorf(tc.T, err, "Failed creating team %s: %s", name, err)
	return team
}
