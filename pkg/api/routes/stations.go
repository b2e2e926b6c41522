package routes

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/dancojocaru2000/new-infofer-scraper/pkg/registry"
)

func StationsRouter(router fiber.Router) {
	router.Get("/", listStations)
	router.Get("/:name", getStation)
}

func listStations(c *fiber.Ctx) error {
	stations, err := registry.ListStations()
	if err != nil {
		return err
	}

	return c.JSON(stations)
}

func getStation(c *fiber.Ctx) error {
	date, err := parseDateQuery(c)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid date, expected YYYY-MM-DD",
		})
	}

	// Station names carry spaces and diacritics.
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		name = c.Params("name")
	}

	result, err := dataManager.FetchStation(name, date)
	if err != nil {
		return err
	}
	if result == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"reason": "station_not_found",
		})
	}

	return c.JSON(result)
}
