package routes

import (
	"github.com/gofiber/fiber/v2"
)

func ItinerariesRouter(router fiber.Router) {
	router.Get("/", getItineraries)
}

func getItineraries(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Both from and to stations must be given",
		})
	}

	date, err := parseDateQuery(c)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid date, expected YYYY-MM-DD",
		})
	}

	itineraries, err := dataManager.FetchItineraries(from, to, date)
	if err != nil {
		return err
	}
	if itineraries == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"reason": "itineraries_not_found",
		})
	}

	return c.JSON(itineraries)
}
