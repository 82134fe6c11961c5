package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/led-dino/playacamp/pkg/teams"
	"github.com/led-dino/playacamp/pkg/webapi/apimiddleware"
	"golang.org/x/sync/errgroup"
)

type TeamController struct {
	registry   *teams.Registry
	isVerified apimiddleware.IsVerifiedFN
}

func NewTeamController(registry *teams.Registry, isVerified apimiddleware.IsVerifiedFN) *TeamController {
	return &TeamController{registry: registry, isVerified: isVerified}
}

type teamResponse struct {
	pcmodel.Team
	IsMember bool           `json:"is_member"`
	Leads    []pcmodel.User `json:"leads,omitempty"`
	NonLeads []pcmodel.User `json:"non_leads,omitempty"`
}

// ListTeams returns every team, emptiest first, marking the ones the caller
// is on.
func (c *TeamController) ListTeams(ctx echo.Context) error {
	user := apimiddleware.CurrentUser(ctx)

	var (
		g                 errgroup.Group
		allTeams, myTeams []pcmodel.Team
	)

	g.Go(func() error {
		var err error
		allTeams, err = c.registry.OrderedByRemainingSpace()
		return err
	})

	g.Go(func() error {
		var err error
		myTeams, err = c.registry.TeamsForUser(user.ID)
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	member := make(map[int]bool, len(myTeams))
	for _, t := range myTeams {
		member[t.ID] = true
	}

	resp := make([]teamResponse, 0, len(allTeams))
	for _, t := range allTeams {
		resp = append(resp, teamResponse{Team: t, IsMember: member[t.ID]})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetTeam returns the team. Leads and members are only listed for admins
// and verified users.
func (c *TeamController) GetTeam(ctx echo.Context) error {
	teamID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	user := apimiddleware.CurrentUser(ctx)
	canSeeMembers := user.IsAdmin
	if !canSeeMembers {
		if canSeeMembers, err = c.isVerified(user.ID); err != nil {
			return err
		}
	}

	var (
		g    errgroup.Group
		team *pcmodel.Team
		resp teamResponse
	)

	g.Go(func() error {
		var err error
		team, err = c.registry.Get(teamID)
		return err
	})

	g.Go(func() error {
		var err error
		resp.IsMember, err = c.registry.IsMember(teamID, user.ID)
		return err
	})

	if canSeeMembers {
		g.Go(func() error {
			var err error
			resp.Leads, err = c.registry.Leads(teamID)
			return err
		})

		g.Go(func() error {
			var err error
			resp.NonLeads, err = c.registry.NonLeads(teamID)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	resp.Team = *team
	return ctx.JSON(http.StatusOK, resp)
}

func (c *TeamController) ToggleMembership(ctx echo.Context) error {
	teamID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	isMember, err := c.registry.Toggle(teamID, apimiddleware.CurrentUser(ctx).ID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]bool{"is_member": isMember})
}
