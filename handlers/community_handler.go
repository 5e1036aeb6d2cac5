package handlers

import (
	"github.com/rgoswami08/shg_sangam/database"
	"github.com/rgoswami08/shg_sangam/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetCommunitySummary aggregates the hub page numbers: recent groups,
// track records, the caller's memberships, and the headline stats.
func GetCommunitySummary(c *fiber.Ctx) error {
	userID, _ := uuid.Parse(currentUserID(c))

	var recentShgs []models.SHG
	if err := database.DB.Order("created_at desc").Limit(6).Find(&recentShgs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load community data"})
	}

	var trackRecords []models.TrackRecord
	if err := database.DB.Preload("Shg").Order("created_at desc").Limit(8).Find(&trackRecords).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load community data"})
	}

	var memberships []models.SHGMember
	if err := database.DB.Preload("Shg").Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load community data"})
	}

	var totalShgs int64
	database.DB.Model(&models.SHG{}).Count(&totalShgs)

	var totalMembers int64
	database.DB.Model(&models.SHGMember{}).Count(&totalMembers)

	var totalFundsRaised float64
	database.DB.Model(&models.TrackRecord{}).
		Select("COALESCE(SUM(funds_raised), 0)").
		Row().Scan(&totalFundsRaised)

	var activeProjects int64
	database.DB.Model(&models.TrackRecord{}).Where("end_date IS NULL").Count(&activeProjects)

	return c.JSON(fiber.Map{
		"recent_shgs":   recentShgs,
		"track_records": trackRecords,
		"memberships":   memberships,
		"stats": fiber.Map{
			"total_shgs":         totalShgs,
			"total_members":      totalMembers,
			"total_funds_raised": totalFundsRaised,
			"active_projects":    activeProjects,
		},
	})
}

// ListTrackRecords returns all project track records with SHG info.
func ListTrackRecords(c *fiber.Ctx) error {
	var trackRecords []models.TrackRecord
	if err := database.DB.Preload("Shg").Order("created_at desc").Find(&trackRecords).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load track records"})
	}
	return c.JSON(trackRecords)
}

// GetMyMemberships lists the caller's SHG memberships.
func GetMyMemberships(c *fiber.Ctx) error {
	userID, _ := uuid.Parse(currentUserID(c))

	var memberships []models.SHGMember
	if err := database.DB.Preload("Shg").Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load memberships"})
	}
	return c.JSON(memberships)
}
