// Package routes holds the HTTP handlers of the public API.
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dancojocaru2000/new-infofer-scraper/pkg/datamanager"
)

var dataManager *datamanager.DataManager

// UseDataManager injects the shared data manager; must run before any
// route is served.
func UseDataManager(manager *datamanager.DataManager) {
	dataManager = manager
}

// parseDateQuery reads the optional date query parameter (YYYY-MM-DD).
// A missing parameter means today.
func parseDateQuery(c *fiber.Ctx) (*time.Time, error) {
	dateQuery := c.Query("date")
	if dateQuery == "" {
		return nil, nil
	}

	date, err := time.Parse("2006-01-02", dateQuery)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
