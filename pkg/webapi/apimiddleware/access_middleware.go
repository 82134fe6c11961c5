package apimiddleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RequireAdmin rejects users without the admin flag. APIKeyAuth must run first.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			switch {
			case user == nil:
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			case !user.IsAdmin:
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			default:
				return next(c)
			}
		}
	}
}

type IsVerifiedFN func(userID int) (bool, error)

type VerifiedConfig struct {
	Skipper    middleware.Skipper
	IsVerified IsVerifiedFN
}

// RequireVerified only lets through admins and users whose profile an admin
// has verified. The check is made on every request, so verifying someone
// takes effect immediately.
func RequireVerified(config VerifiedConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			if user.IsAdmin {
				return next(c)
			}

			verified, err := config.IsVerified(user.ID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}

			if !verified {
				return echo.NewHTTPError(http.StatusForbidden, "Profile has not been verified by an admin")
			}

			return next(c)
		}
	}
}
