package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dancojocaru2000/new-infofer-scraper/pkg/api/routes"
	"github.com/dancojocaru2000/new-infofer-scraper/pkg/datamanager"
)

func SetupServer(listen string) error {
	manager, err := datamanager.New()
	if err != nil {
		return err
	}
	routes.UseDataManager(manager)

	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/v3")

	group.Get("version", routes.APIVersion)

	routes.TrainsRouter(group.Group("/trains"))
	routes.StationsRouter(group.Group("/stations"))
	routes.ItinerariesRouter(group.Group("/itineraries"))

	return webApp.Listen(listen)
}
