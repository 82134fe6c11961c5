package webapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/led-dino/playacamp/pkg/pcdb"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/led-dino/playacamp/pkg/pcdb/stor"
	"github.com/stretchr/testify/require"
)

// webapiTestCase runs requests through the full router backed by an
// in-memory sqlite database. The clock is fixed at June 2025, so the event
// year is 2025.
type webapiTestCase struct {
	*testing.T
	e     *echo.Echo
	stors *stor.Stors
	opts  RouteOpts
}

func newWebapiTestCase(t *testing.T) *webapiTestCase {
	db, err := pcdb.OpenSqliteInMemory()
	require.NoErrorf(t, err, "Opening sqlite failed: %s", err)

	stors := stor.NewGormStors(db)
	opts := NewRouteOpts(stors, time.UTC)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	opts.Now = func() time.Time { return now }
	opts.Attendance.Now = opts.Now

	e := echo.New()
	SetupRoutes(e, opts)

	return &webapiTestCase{T: t, e: e, stors: stors, opts: opts}
}

func (tc *webapiTestCase) createUser(username string, isAdmin bool) *pcmodel.User {
	user, err := tc.stors.UserStor.CreateUser(&pcmodel.User{
		Username:  username,
		FirstName: username,
		LastName:  "Tester",
		Email:     fmt.Sprintf("%s@test.com", username),
		APIToken:  username + "-token",
		IsAdmin:   isAdmin,
	})
	require.NoErrorf(tc.T, err, "Failed creating user %s: %s", username, err)
	return user
}

func (tc *webapiTestCase) createTeam(name string, maxSize int) *pcmodel.Team {
	team, err := tc.stors.TeamStor.CreateTeam(&pcmodel.Team{Name: name, MaxSize: maxSize})
	require.NoErrorf(tc.T, err, "Failed creating team %s: %s", name, err)
	return team
}

func (tc *webapiTestCase) request(method, path string, user *pcmodel.User, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if user != nil {
		req.Header.Set(APIKeyHeader, user.APIToken)
	}

	rec := httptest.NewRecorder()
	tc.e.ServeHTTP(rec, req)
	return rec
}

func (tc *webapiTestCase) decode(rec *httptest.ResponseRecorder, v interface{}) {
	require.NoErrorf(tc.T, json.Unmarshal(rec.Body.Bytes(), v), "Bad response body %q", rec.Body.String())
}

func requireStatus(t *testing.T, expected int, rec *httptest.ResponseRecorder) {
	require.Equalf(t, expected, rec.Code, "%s: %s", http.StatusText(rec.Code), rec.Body.String())
}
