package models

import (
	"strings"

	"gorm.io/gorm"
)

// Food is a persisted corpus record. Nutrient columns hold the canonical
// per-100g/100ml baseline; serving math happens at read time.
type Food struct {
	gorm.Model
	Name            string  `gorm:"uniqueIndex;not null" json:"name"`
	Category        string  `json:"category"`
	CaloriesPer100  float64 `gorm:"not null" json:"calories_per_100"`
	ProteinPer100   float64 `json:"protein_per_100"`
	CarbsPer100     float64 `json:"carbs_per_100"`
	FatPer100       float64 `json:"fat_per_100"`
	IsLiquid        bool    `json:"is_liquid"`
	DefaultUnit     string  `json:"default_unit"`
	DefaultQuantity float64 `json:"default_quantity"`
	CommonUnits     string  `json:"common_units"`
	Origin          string  `gorm:"index" json:"origin"`
}

// SplitCommonUnits decodes the pipe-separated common unit list.
func (f Food) SplitCommonUnits() []string {
	if strings.TrimSpace(f.CommonUnits) == "" {
		return nil
	}
	parts := strings.Split(f.CommonUnits, "|")
	units := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			units = append(units, part)
		}
	}
	return units
}

// JoinCommonUnits encodes a unit list for storage.
func JoinCommonUnits(units []string) string {
	return strings.Join(units, "|")
}
