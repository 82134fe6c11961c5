package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/led-dino/playacamp/pkg/pcdb/stor"
	"golang.org/x/sync/errgroup"
)

// CatalogController lists everything a client may pick from when editing a
// profile or attendance preferences.
type CatalogController struct {
	catalogStor stor.CatalogStor
}

func NewCatalogController(catalogStor stor.CatalogStor) *CatalogController {
	return &CatalogController{catalogStor: catalogStor}
}

type catalogResponse struct {
	Skills                []pcmodel.Skill                `json:"skills"`
	FoodRestrictions      []pcmodel.FoodRestriction      `json:"food_restrictions"`
	Jobs                  []pcmodel.Job                  `json:"jobs"`
	TransportationMethods []pcmodel.TransportationMethod `json:"transportation_methods"`
	Choices               map[string]pcmodel.Choices     `json:"choices"`
}

func (c *CatalogController) GetCatalog(ctx echo.Context) error {
	resp := catalogResponse{
		Choices: map[string]pcmodel.Choices{
			"arrival_date":            pcmodel.ArrivalChoices,
			"departure_date":          pcmodel.DepartureChoices,
			"housing_type_preference": pcmodel.HousingChoices,
			"bicycle_status":          pcmodel.BicycleChoices,
			"shift_time_preference":   pcmodel.ShiftTimeChoices,
			"shift_day_preference":    pcmodel.ShiftDayChoices,
			"social_links":            pcmodel.SocialMediaAccountChoices,
		},
	}

	var g errgroup.Group

	g.Go(func() error {
		var err error
		resp.Skills, err = c.catalogStor.ListSkills()
		return err
	})

	g.Go(func() error {
		var err error
		resp.FoodRestrictions, err = c.catalogStor.ListFoodRestrictions()
		return err
	})

	g.Go(func() error {
		var err error
		resp.Jobs, err = c.catalogStor.ListJobs()
		return err
	})

	g.Go(func() error {
		var err error
		resp.TransportationMethods, err = c.catalogStor.ListTransportationMethods()
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, resp)
}
