package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/led-dino/playacamp/pkg/profile"
	"github.com/led-dino/playacamp/pkg/webapi/apimiddleware"
)

type ProfileController struct {
	svc *profile.Service
}

func NewProfileController(svc *profile.Service) *ProfileController {
	return &ProfileController{svc: svc}
}

type profileResponse struct {
	*pcmodel.UserProfile
	Username      string `json:"username"`
	FormattedName string `json:"formatted_name"`
	CityAndState  string `json:"city_and_state"`
}

func (c *ProfileController) respond(ctx echo.Context, p *pcmodel.UserProfile) error {
	location, err := c.svc.CityAndState(p)
	if err != nil {
		return err
	}

	resp := profileResponse{UserProfile: p, FormattedName: p.FormattedName(), CityAndState: location}
	if p.User != nil {
		resp.Username = p.User.Username
	}

	return ctx.JSON(http.StatusOK, resp)
}

func (c *ProfileController) GetMyProfile(ctx echo.Context) error {
	p, err := c.svc.Get(apimiddleware.CurrentUser(ctx).ID)
	if err != nil {
		return err
	}

	return c.respond(ctx, p)
}

// GetProfile shows another user's profile. Anyone may see their own; other
// profiles need a verified (or admin) caller.
func (c *ProfileController) GetProfile(ctx echo.Context) error {
	userID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	user := apimiddleware.CurrentUser(ctx)
	if userID != user.ID && !user.IsAdmin {
		verified, err := c.svc.IsVerified(user.ID)
		switch {
		case err != nil:
			return err
		case !verified:
			return apperr.ErrForbidden
		}
	}

	p, err := c.svc.Get(userID)
	if err != nil {
		return err
	}

	return c.respond(ctx, p)
}

// SearchProfiles lists verified profiles matching ?search=.
func (c *ProfileController) SearchProfiles(ctx echo.Context) error {
	profiles, err := c.svc.SearchVerified(ctx.QueryParam("search"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, profiles)
}

func (c *ProfileController) UpdateBasics(ctx echo.Context) error {
	var form profile.BasicsForm
	if err := ctx.Bind(&form); err != nil {
		return err
	}

	p, err := c.svc.UpdateBasics(apimiddleware.CurrentUser(ctx).ID, form)
	if err != nil {
		return err
	}

	return c.respond(ctx, p)
}

type idsRequest struct {
	IDs []int `json:"ids"`
}

func (c *ProfileController) UpdateSkills(ctx echo.Context) error {
	var req idsRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	p, err := c.svc.SetSkills(apimiddleware.CurrentUser(ctx).ID, req.IDs)
	if err != nil {
		return err
	}

	return c.respond(ctx, p)
}

func (c *ProfileController) UpdateFoodRestrictions(ctx echo.Context) error {
	var req idsRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	p, err := c.svc.SetFoodRestrictions(apimiddleware.CurrentUser(ctx).ID, req.IDs)
	if err != nil {
		return err
	}

	return c.respond(ctx, p)
}
