package handlers

import (
	"github.com/rgoswami08/shg_sangam/database"
	"github.com/rgoswami08/shg_sangam/models"
	"github.com/gofiber/fiber/v2"
)

// RefreshSchemes re-runs the scheme catalogue seed so an admin can pull
// in updated figures without a redeploy.
func RefreshSchemes(c *fiber.Ctx) error {
	database.SeedSchemes()

	var count int64
	if err := database.DB.Model(&models.Scheme{}).Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to refresh schemes"})
	}
	return c.JSON(fiber.Map{"schemes": count})
}

// ListSchemes returns the government scheme catalogue, grouped by
// category for the schemes page.
func ListSchemes(c *fiber.Ctx) error {
	var schemes []models.Scheme
	if err := database.DB.Order("category, name").Find(&schemes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load schemes"})
	}

	grouped := make(map[string][]models.Scheme)
	for _, scheme := range schemes {
		grouped[scheme.Category] = append(grouped[scheme.Category], scheme)
	}

	return c.JSON(grouped)
}
