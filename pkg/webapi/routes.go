package webapi

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/led-dino/playacamp/pkg/attendance"
	"github.com/led-dino/playacamp/pkg/pcdb/stor"
	"github.com/led-dino/playacamp/pkg/profile"
	"github.com/led-dino/playacamp/pkg/report"
	"github.com/led-dino/playacamp/pkg/teams"
	"github.com/led-dino/playacamp/pkg/webapi/apimiddleware"
)

const (
	APIKeyHeader = "X-API-Key"
	APIKeyQuery  = "apikey"
)

type RouteOpts struct {
	Registry       *teams.Registry
	Attendance     *attendance.Service
	Profiles       *profile.Service
	AttendanceStor stor.AttendanceStor
	CatalogStor    stor.CatalogStor
	Exporter       *report.Exporter
	APIKeyCache    *apimiddleware.APIKeyCache
	Location       *time.Location
	Now            func() time.Time
}

// NewRouteOpts builds the services the routes need on top of stors.
func NewRouteOpts(stors *stor.Stors, location *time.Location) RouteOpts {
	registry := teams.NewRegistry(stors.TeamStor)
	profiles := profile.NewService(stors.ProfileStor, stors.CatalogStor)
	return RouteOpts{
		Registry:       registry,
		Attendance:     attendance.NewService(stors.AttendanceStor, stors.CatalogStor, registry),
		Profiles:       profiles,
		AttendanceStor: stors.AttendanceStor,
		CatalogStor:    stors.CatalogStor,
		Exporter:       report.NewExporter(stors.AttendanceStor, stors.ProfileStor, profiles),
		APIKeyCache:    apimiddleware.NewAPIKeyCache(stors.UserStor),
		Location:       location,
		Now:            time.Now,
	}
}

func SetupRoutes(e *echo.Echo, opts RouteOpts) {
	e.HTTPErrorHandler = HTTPErrorHandler(e)

	g := e.Group("/api", apimiddleware.APIKeyAuth(apimiddleware.APIKeyConfig{
		HeaderName:      APIKeyHeader,
		QueryName:       APIKeyQuery,
		GetUserByAPIKey: opts.APIKeyCache.GetUserByAPIKey,
	}))

	requireVerified := apimiddleware.RequireVerified(apimiddleware.VerifiedConfig{
		IsVerified: opts.Profiles.IsVerified,
	})

	catalogController := NewCatalogController(opts.CatalogStor)
	g.GET("/catalog", catalogController.GetCatalog)

	teamController := NewTeamController(opts.Registry, opts.Profiles.IsVerified)
	g.GET("/teams", teamController.ListTeams)
	g.GET("/teams/:id", teamController.GetTeam)
	g.POST("/teams/:id/toggle", teamController.ToggleMembership)

	attendanceController := NewAttendanceController(opts.Attendance, opts.Location, opts.Now)
	g.GET("/attendance", attendanceController.GetCurrentAttendance)
	g.POST("/attendance", attendanceController.SetAttending)

	profileController := NewProfileController(opts.Profiles)
	g.GET("/profile", profileController.GetMyProfile)
	g.PUT("/profile/basics", profileController.UpdateBasics)
	g.PUT("/profile/skills", profileController.UpdateSkills)
	g.PUT("/profile/food-restrictions", profileController.UpdateFoodRestrictions)
	g.GET("/profiles", profileController.SearchProfiles, requireVerified)
	g.GET("/profiles/:id", profileController.GetProfile)

	admin := g.Group("/admin", apimiddleware.RequireAdmin())

	adminController := NewAdminController(AdminControllerOpts{
		Registry:       opts.Registry,
		Attendance:     opts.Attendance,
		Profiles:       opts.Profiles,
		AttendanceStor: opts.AttendanceStor,
		Exporter:       opts.Exporter,
		APIKeyCache:    opts.APIKeyCache,
		Location:       opts.Location,
		Now:            opts.Now,
	})
	admin.POST("/teams", adminController.CreateTeam)
	admin.DELETE("/teams/:id", adminController.DeleteTeam)
	admin.PUT("/teams/:id/leads/:user_id", adminController.SetTeamLead)
	admin.PUT("/attendance/:user_id/:year/paid-dues", adminController.SetPaidDues)
	admin.PUT("/profiles/:id/verified", adminController.SetVerified)
	admin.GET("/reports/daily-counts/:year", adminController.DailyCounts)
	admin.GET("/exports/attendance.csv", adminController.ExportAttendanceCSV)
	admin.GET("/exports/profiles.csv", adminController.ExportProfilesCSV)

	logController := NewLogController()
	admin.GET("/logging", logController.ShowCurrentLogging)
	admin.PUT("/logging", logController.SetLogging)
}
