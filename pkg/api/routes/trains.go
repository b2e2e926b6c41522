package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dancojocaru2000/new-infofer-scraper/pkg/registry"
	"github.com/dancojocaru2000/new-infofer-scraper/pkg/scraper"
)

func TrainsRouter(router fiber.Router) {
	router.Get("/", listTrains)
	router.Get("/:number", getTrain)
}

func listTrains(c *fiber.Ctx) error {
	trains, err := registry.ListTrains()
	if err != nil {
		return err
	}

	return c.JSON(trains)
}

func getTrain(c *fiber.Ctx) error {
	date, err := parseDateQuery(c)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid date, expected YYYY-MM-DD",
		})
	}

	result, err := dataManager.FetchTrain(c.Params("number"), date)
	if errors.Is(err, scraper.ErrTrainNotThisDay) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"reason": "not_running_today",
		})
	}
	if err != nil {
		return err
	}
	if result == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"reason": "train_not_found",
		})
	}

	return c.JSON(result)
}
