package webapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestsWithoutAPIKeyAreRejected(t *testing.T) {
	tc := newWebapiTestCase(t)
	requireStatus(t, http.StatusUnauthorized, tc.request(http.MethodGet, "/api/teams", nil, ""))
}

func TestAPIKeyFromQueryParam(t *testing.T) {
	tc := newWebapiTestCase(t)
	user := tc.createUser("alice", false)

	rec := tc.request(http.MethodGet, "/api/teams?apikey="+user.APIToken, nil, "")
	requireStatus(t, http.StatusOK, rec)
}

func TestToggleMembershipOnFullTeam(t *testing.T) {
	tc := newWebapiTestCase(t)
	alice := tc.createUser("alice", false)
	bob := tc.createUser("bob", false)
	team := tc.createTeam("Kitchen", 1)
	path := fmt.Sprintf("/api/teams/%d/toggle", team.ID)

	var resp struct {
		IsMember bool `json:"is_member"`
	}

	rec := tc.request(http.MethodPost, path, alice, "")
	requireStatus(t, http.StatusOK, rec)
	tc.decode(rec, &resp)
	require.True(t, resp.IsMember)

	requireStatus(t, http.StatusConflict, tc.request(http.MethodPost, path, bob, ""))

	// Leaving frees the seat.
	rec = tc.request(http.MethodPost, path, alice, "")
	requireStatus(t, http.StatusOK, rec)
	tc.decode(rec, &resp)
	require.False(t, resp.IsMember)

	requireStatus(t, http.StatusOK, tc.request(http.MethodPost, path, bob, ""))
}

func TestToggleMembershipUnknownTeam(t *testing.T) {
	tc := newWebapiTestCase(t)
	alice := tc.createUser("alice", false)

	requireStatus(t, http.StatusNotFound, tc.request(http.MethodPost, "/api/teams/99/toggle", alice, ""))
	requireStatus(t, http.StatusBadRequest, tc.request(http.MethodPost, "/api/teams/abc/toggle", alice, ""))
}

func TestListTeamsOrderedAndMarked(t *testing.T) {
	tc := newWebapiTestCase(t)
	alice := tc.createUser("alice", false)
	small := tc.createTeam("Small", 1)
	big := tc.createTeam("Big", 5)
	require.NoError(t, tc.opts.Registry.Join(small.ID, alice.ID))

	rec := tc.request(http.MethodGet, "/api/teams", alice, "")
	requireStatus(t, http.StatusOK, rec)

	var teams []struct {
		ID          int  `json:"id"`
		MemberCount int  `json:"member_count"`
		IsMember    bool `json:"is_member"`
	}
	tc.decode(rec, &teams)
	require.Len(t, teams, 2)

	assert.Equal(t, big.ID, teams[0].ID)
	assert.False(t, teams[0].IsMember)
	assert.Equal(t, small.ID, teams[1].ID)
	assert.True(t, teams[1].IsMember)
	assert.Equal(t, 1, teams[1].MemberCount)
}

func TestGetTeamShowsLeadsOnlyToVerifiedUsers(t *testing.T) {
	tc := newWebapiTestCase(t)
	lead := tc.createUser("lead", false)
	viewer := tc.createUser("viewer", false)
	admin := tc.createUser("admin", true)
	team := tc.createTeam("Sound", 5)
	require.NoError(t, tc.opts.Registry.Join(team.ID, lead.ID))
	require.NoError(t, tc.opts.Registry.SetLead(team.ID, lead.ID, true))

	path := fmt.Sprintf("/api/teams/%d", team.ID)

	type teamDetail struct {
		Name  string                   `json:"name"`
		Leads []map[string]interface{} `json:"leads"`
	}

	var resp teamDetail
	rec := tc.request(http.MethodGet, path, viewer, "")
	requireStatus(t, http.StatusOK, rec)
	tc.decode(rec, &resp)
	assert.Equal(t, "Sound", resp.Name)
	assert.Empty(t, resp.Leads)

	verified := true
	_, err := tc.opts.Profiles.SetVerified(viewer.ID, &verified)
	require.NoError(t, err)

	resp = teamDetail{}
	rec = tc.request(http.MethodGet, path, viewer, "")
	requireStatus(t, http.StatusOK, rec)
	tc.decode(rec, &resp)
	require.Len(t, resp.Leads, 1)
	assert.Equal(t, "lead", resp.Leads[0]["username"])

	resp = teamDetail{}
	rec = tc.request(http.MethodGet, path, admin, "")
	requireStatus(t, http.StatusOK, rec)
	tc.decode(rec, &resp)
	require.Len(t, resp.Leads, 1)
}
