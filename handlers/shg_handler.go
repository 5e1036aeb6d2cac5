package handlers

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/rgoswami08/shg_sangam/database"
	"github.com/rgoswami08/shg_sangam/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateSHGRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   *string  `json:"description"`
	LeaderName    string   `json:"leader_name" validate:"required"`
	Village       string   `json:"village" validate:"required"`
	State         string   `json:"state" validate:"required"`
	PinCode       *string  `json:"pin_code"`
	ContactEmail  *string  `json:"contact_email"`
	ContactPhone  *string  `json:"contact_phone"`
	FormationDate *string  `json:"formation_date"`
	FocusAreas    []string `json:"focus_areas"`
	MemberCount   int      `json:"member_count"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
}

// CreateSHG registers a new group, makes the creator its leader member,
// and links the creator's profile to it.
func CreateSHG(c *fiber.Ctx) error {
	userID, _ := uuid.Parse(currentUserID(c))

	var req CreateSHGRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var caller models.User
	if err := database.DB.Where("id = ?", userID).First(&caller).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	contactEmail := req.ContactEmail
	if contactEmail == nil {
		contactEmail = &caller.Email
	}
	formationDate := req.FormationDate
	if formationDate == nil {
		today := time.Now().Format("2006-01-02")
		formationDate = &today
	}
	memberCount := req.MemberCount
	if memberCount < 1 {
		memberCount = 1
	}
	focusAreas, err := json.Marshal(req.FocusAreas)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid focus areas"})
	}

	var shg models.SHG
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		shg = models.SHG{
			Name:          req.Name,
			Description:   req.Description,
			LeaderName:    req.LeaderName,
			Village:       req.Village,
			State:         req.State,
			PinCode:       req.PinCode,
			Latitude:      req.Latitude,
			Longitude:     req.Longitude,
			ContactEmail:  contactEmail,
			ContactPhone:  req.ContactPhone,
			FormationDate: formationDate,
			FocusAreas:    datatypes.JSON(focusAreas),
			MemberCount:   memberCount,
			CreatedBy:     userID,
		}
		if err := tx.Create(&shg).Error; err != nil {
			return err
		}

		member := models.SHGMember{
			ShgID:     shg.ID,
			UserID:    userID,
			RoleInShg: "leader",
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{"shg_id": shg.ID, "role": "shg_admin"}).Error
	})
	if err != nil {
		log.Printf("🔥 Failed to create SHG for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create SHG"})
	}

	return c.Status(fiber.StatusCreated).JSON(shg)
}

// ListSHGs returns all groups, newest first.
func ListSHGs(c *fiber.Ctx) error {
	var shgs []models.SHG
	if err := database.DB.Order("created_at desc").Find(&shgs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load SHGs"})
	}
	return c.JSON(shgs)
}

// GetSHG returns one group with its members and track records.
func GetSHG(c *fiber.Ctx) error {
	shgID, err := uuid.Parse(c.Params("shgId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid SHG ID"})
	}

	var shg models.SHG
	if err := database.DB.Where("id = ?", shgID).First(&shg).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "SHG not found"})
	}

	var members []models.SHGMember
	database.DB.Preload("User").Where("shg_id = ?", shgID).Find(&members)

	var trackRecords []models.TrackRecord
	database.DB.Where("shg_id = ?", shgID).Order("created_at desc").Find(&trackRecords)

	return c.JSON(fiber.Map{
		"shg":           shg,
		"members":       members,
		"track_records": trackRecords,
	})
}

// NearbySHGs ranks groups by great-circle distance from the caller's
// coordinates, limited to the radius. Falls back to the unfiltered listing
// when the proximity query fails or nothing is in range, so a bad location
// never blanks the page.
func NearbySHGs(c *fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lat and lon query parameters are required"})
	}
	radiusKm, err := strconv.ParseFloat(c.Query("radius_km", "100"), 64)
	if err != nil || radiusKm <= 0 {
		radiusKm = 100
	}

	var nearby []models.NearbySHG
	queryErr := database.DB.Raw(`
		SELECT * FROM (
			SELECT shgs.*,
				6371 * acos(least(1.0,
					cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)) +
					sin(radians(?)) * sin(radians(latitude))
				)) AS distance_km
			FROM shgs
		) ranked
		WHERE distance_km <= ?
		ORDER BY distance_km ASC`,
		lat, lon, lat, radiusKm,
	).Scan(&nearby).Error

	if queryErr != nil || len(nearby) == 0 {
		if queryErr != nil {
			log.Printf("Nearby SHG query failed, falling back to full listing: %v", queryErr)
		}
		return ListSHGs(c)
	}

	return c.JSON(nearby)
}
