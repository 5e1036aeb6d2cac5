package database

import (
	"log"

	"github.com/rgoswami08/shg_sangam/models"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

func strPtr(s string) *string { return &s }

// SeedSchemes loads the government scheme catalogue shown on the schemes
// page. Upserts on name so redeploys refresh the figures in place.
func SeedSchemes() {
	schemes := []models.Scheme{
		{
			Name:        "Deendayal Antyodaya Yojana - National Rural Livelihoods Mission (DAY-NRLM)",
			Ministry:    "Ministry of Rural Development",
			Description: "Organizes rural poor women into Self Help Groups (SHGs) and supports them to achieve appreciable increase in incomes",
			Category:    "major",
			KeyStats: datatypes.JSON([]byte(`{"Women Mobilized":"10.05 crores","SHGs Formed":"90.87 lakh","Bank Credit (2024)":"₹9.71 lakh crore"}`)),
			LastUpdated: strPtr("Dec 20, 2024"),
			SourceRef:   strPtr("PIB Press Release ID: 2086490"),
		},
		{
			Name:        "Start-up Village Entrepreneurship Programme (SVEP)",
			Ministry:    "Ministry of Rural Development",
			Description: "Sub-scheme under DAY-NRLM that supports SHG women to set up small enterprises in rural areas",
			Category:    "major",
			KeyStats: datatypes.JSON([]byte(`{"Enterprises Supported":"3.13 lakh","Banking Correspondent Sakhis":"1.35 lakh","Revolving Fund per SHG":"₹20,000-30,000"}`)),
			LastUpdated: strPtr("Oct 2024"),
			SourceRef:   strPtr("PIB Press Release ID: 2086490"),
		},
		{
			Name:        "Deen Dayal Upadhyaya Grameen Kaushalya Yojana (DDU-GKY)",
			Ministry:    "Ministry of Rural Development",
			Description: "Placement-linked skill development program for rural poor youth (15-35 years) with mandatory 33% women coverage",
			Category:    "major",
			KeyStats: datatypes.JSON([]byte(`{"Women Trained (2023-24)":"1.22 lakh","Women Placed (2023-24)":"94,684","Total Trained (2024-25)":"69,086"}`)),
			LastUpdated: strPtr("Feb 11, 2025"),
			SourceRef:   strPtr("PIB Press Release ID: 2101873"),
		},
		{
			Name:        "Mahatma Gandhi National Rural Employment Guarantee Act (MGNREGA)",
			Ministry:    "Ministry of Rural Development",
			Description: "Gender-neutral scheme promoting women participation with wage parity, crèche facilities, and women mates",
			Category:    "women_empowerment",
			Benefit:     strPtr("At least 1/3rd beneficiaries must be women"),
			KeyStats:    datatypes.JSON([]byte(`{"Participation":"58.9% women participation in 2023-24"}`)),
		},
		{
			Name:        "Indira Gandhi National Widow Pension Scheme (IGNWPS)",
			Ministry:    "Ministry of Rural Development",
			Description: "Pension scheme for widows aged 40-79 years from Below Poverty Line households",
			Category:    "women_empowerment",
			Benefit:     strPtr("₹300/month (₹500 after age 80)"),
			KeyStats:    datatypes.JSON([]byte(`{"Coverage":"67.36 lakh ceiling across all States/UTs"}`)),
		},
		{
			Name:        "Rural Self Employment Training Institutes (RSETI)",
			Ministry:    "Ministry of Rural Development",
			Description: "Training for unemployed youth (18-45 years) for self-employment or wage employment",
			Category:    "women_empowerment",
			Eligibility: strPtr("All categories including women, irrespective of caste, creed, religion"),
			KeyStats:    datatypes.JSON([]byte(`{"Women Trained":"3.6 lakh women trained, 2.9 lakh settled in 2023-24"}`)),
		},
	}

	err := DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"ministry", "description", "category", "benefit", "eligibility", "key_stats", "last_updated", "source_ref"}),
	}).Create(&schemes).Error
	if err != nil {
		log.Printf("🔥 Failed to seed government schemes: %v", err)
		return
	}

	log.Println("✅ Government schemes seeded successfully")
}
