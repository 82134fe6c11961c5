package apimiddleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
)

// UserKey is the echo context key the authenticated *pcmodel.User is stored
// under.
const UserKey = "user"

type GetUserByAPIKeyFN func(string) (*pcmodel.User, error)

type APIKeyConfig struct {
	Skipper middleware.Skipper

	// HeaderName and QueryName are where the key is looked for, header first.
	HeaderName string
	QueryName  string

	GetUserByAPIKey GetUserByAPIKeyFN
}

func APIKeyAuth(config APIKeyConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			value, err := getAPIKeyFromRequest(config, c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			user, err := config.GetUserByAPIKey(value)
			switch {
			case err != nil:
				return echo.ErrUnauthorized
			case user == nil:
				return echo.ErrUnauthorized
			default:
				c.Set(UserKey, user)
				return next(c)
			}
		}
	}
}

// CurrentUser returns the user APIKeyAuth authenticated, or nil outside of it.
func CurrentUser(c echo.Context) *pcmodel.User {
	user, _ := c.Get(UserKey).(*pcmodel.User)
	return user
}

func getAPIKeyFromRequest(config APIKeyConfig, c echo.Context) (string, error) {
	if value := c.Request().Header.Get(config.HeaderName); value != "" {
		return value, nil
	}

	if value := c.QueryParam(config.QueryName); value != "" {
		return value, nil
	}

	return "", fmt.Errorf("no apikey as '%s' header or '%s' query param", config.HeaderName, config.QueryName)
}
