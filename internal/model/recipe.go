package model

import (
	"time"

	"github.com/google/uuid"
)

// RecipeLine is one ingredient entry inside a recipe. Lines are embedded in
// the recipe row (jsonb), not an independent table: a recipe snapshots its
// line costs at save time, so later catalog edits never rewrite history.
type RecipeLine struct {
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`
	Cost float64 `json:"cost"`
}

// RecipeLines is stored as a single jsonb document to preserve line order.
type RecipeLines []RecipeLine

// Recipe holds a costed recipe. TotalCost and Margin are derived fields —
// they are never written directly, only recomputed by the pricing routine
// on create/update/seed.
type Recipe struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string      `gorm:"index;not null"`
	Category     string
	Yield        float64     `gorm:"not null;default:1"`
	Ingredients  RecipeLines `gorm:"type:jsonb;serializer:json"`
	LaborCost    float64     `gorm:"not null;default:0"`
	TotalCost    float64     `gorm:"not null;default:0"`
	SellingPrice float64     `gorm:"not null;default:0"`
	Margin       float64     `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
