package webapi

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/led-dino/playacamp/pkg/attendance"
	"github.com/led-dino/playacamp/pkg/eventday"
	"github.com/led-dino/playacamp/pkg/pcdb/stor"
	"github.com/led-dino/playacamp/pkg/profile"
	"github.com/led-dino/playacamp/pkg/report"
	"github.com/led-dino/playacamp/pkg/teams"
	"github.com/led-dino/playacamp/pkg/webapi/apimiddleware"
)

type AdminController struct {
	registry       *teams.Registry
	attendance     *attendance.Service
	profiles       *profile.Service
	attendanceStor stor.AttendanceStor
	exporter       *report.Exporter
	apikeyCache    *apimiddleware.APIKeyCache
	location       *time.Location
	now            func() time.Time
}

type AdminControllerOpts struct {
	Registry       *teams.Registry
	Attendance     *attendance.Service
	Profiles       *profile.Service
	AttendanceStor stor.AttendanceStor
	Exporter       *report.Exporter
	APIKeyCache    *apimiddleware.APIKeyCache
	Location       *time.Location
	Now            func() time.Time
}

func NewAdminController(opts AdminControllerOpts) *AdminController {
	return &AdminController{
		registry:       opts.Registry,
		attendance:     opts.Attendance,
		profiles:       opts.Profiles,
		attendanceStor: opts.AttendanceStor,
		exporter:       opts.Exporter,
		apikeyCache:    opts.APIKeyCache,
		location:       opts.Location,
		now:            opts.Now,
	}
}

func (c *AdminController) CreateTeam(ctx echo.Context) error {
	var req teams.NewTeam
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	team, err := c.registry.CreateTeam(req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, team)
}

func (c *AdminController) DeleteTeam(ctx echo.Context) error {
	teamID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.registry.DeleteTeam(teamID); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *AdminController) SetTeamLead(ctx echo.Context) error {
	teamID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	userID, err := intParam(ctx, "user_id")
	if err != nil {
		return err
	}

	var req struct {
		IsLead bool `json:"is_lead"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := c.registry.SetLead(teamID, userID, req.IsLead); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]bool{"is_lead": req.IsLead})
}

func (c *AdminController) SetPaidDues(ctx echo.Context) error {
	userID, err := intParam(ctx, "user_id")
	if err != nil {
		return err
	}

	year, err := intParam(ctx, "year")
	if err != nil {
		return err
	}

	var req struct {
		PaidDues bool `json:"paid_dues"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	a, err := c.attendance.SetPaidDues(userID, year, req.PaidDues)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, a)
}

// SetVerified sets or clears (null) the user's verification.
func (c *AdminController) SetVerified(ctx echo.Context) error {
	userID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	var req struct {
		Verified *bool `json:"verified"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	p, err := c.profiles.SetVerified(userID, req.Verified)
	if err != nil {
		return err
	}

	c.apikeyCache.DeleteUserByID(userID)
	return ctx.JSON(http.StatusOK, p)
}

func (c *AdminController) DailyCounts(ctx echo.Context) error {
	year, err := intParam(ctx, "year")
	if err != nil {
		return err
	}

	counts, err := report.DailyCounts(c.attendanceStor, year)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, counts)
}

func (c *AdminController) ExportAttendanceCSV(ctx echo.Context) error {
	return c.exportCSV(ctx, report.AttendanceExport, c.exporter.ExportAttendance)
}

func (c *AdminController) ExportProfilesCSV(ctx echo.Context) error {
	return c.exportCSV(ctx, report.ProfileExport, c.exporter.ExportProfiles)
}

func (c *AdminController) exportCSV(ctx echo.Context, kind string, export func(w io.Writer, year int) error) error {
	now := c.now()
	year, err := yearQueryParam(ctx, eventday.NextEventYear(now, c.location))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export(&buf, year); err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+report.ExportFilename(kind, now.In(c.location)))
	return ctx.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
