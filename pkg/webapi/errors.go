package webapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/clog"
)

// HTTPErrorHandler turns the core's errors into status codes. Validation
// errors are answered with {"errors": {field: message}}; everything else goes
// through echo's default handler.
func HTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var verr *apperr.ValidationError
		if errors.As(err, &verr) {
			if !c.Response().Committed {
				_ = c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{"errors": verr.Fields})
			}
			return
		}

		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &httpErr):
		case errors.Is(err, apperr.ErrTeamFull):
			err = echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, apperr.ErrNotFound):
			err = echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, apperr.ErrForbidden):
			err = echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			clog.For("webapi").Errorf("%s %s failed: %s", c.Request().Method, c.Request().URL.Path, err)
		}

		e.DefaultHTTPErrorHandler(err, c)
	}
}

func intParam(c echo.Context, name string) (int, error) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return value, nil
}

// yearQueryParam reads ?year=, falling back to defaultYear when absent.
func yearQueryParam(c echo.Context, defaultYear int) (int, error) {
	value := c.QueryParam("year")
	if value == "" {
		return defaultYear, nil
	}

	year, err := strconv.Atoi(value)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	return year, nil
}
