package webapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/led-dino/playacamp/pkg/attendance"
	"github.com/led-dino/playacamp/pkg/decoder"
	"github.com/led-dino/playacamp/pkg/eventday"
	"github.com/led-dino/playacamp/pkg/webapi/apimiddleware"
)

type AttendanceController struct {
	svc      *attendance.Service
	location *time.Location
	now      func() time.Time
}

func NewAttendanceController(svc *attendance.Service, location *time.Location, now func() time.Time) *AttendanceController {
	return &AttendanceController{svc: svc, location: location, now: now}
}

func (c *AttendanceController) eventYear() int {
	return eventday.NextEventYear(c.now(), c.location)
}

// GetCurrentAttendance returns the caller's active record for the upcoming
// event.
func (c *AttendanceController) GetCurrentAttendance(ctx echo.Context) error {
	current, err := c.svc.Current(apimiddleware.CurrentUser(ctx).ID, c.eventYear(), false)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, current)
}

type setAttendingRequest struct {
	IsAttending bool                        `json:"is_attending"`
	Preferences *attendance.PreferenceEdits `json:"preferences"`
}

type setAttendingResponse struct {
	Year int `json:"year"`
	*attendance.Outcome
}

func (c *AttendanceController) SetAttending(ctx echo.Context) error {
	req, err := decoder.DecodeStrict[setAttendingRequest](ctx.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	year := c.eventYear()
	outcome, err := c.svc.SetAttending(apimiddleware.CurrentUser(ctx).ID, year, req.IsAttending, req.Preferences)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, setAttendingResponse{Year: year, Outcome: outcome})
}
