package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RecipeLineRequest carries one ingredient line of a recipe draft. Cost is
// only meaningful for lines whose name is not in the catalog — resolvable
// lines get their cost recomputed on every save.
type RecipeLineRequest struct {
	Name string  `json:"name" validate:"required,min=1,max=120"`
	Qty  float64 `json:"qty"  validate:"min=0"`
	Unit string  `json:"unit" validate:"max=20"`
	Cost float64 `json:"cost"`
}

type CreateRecipeRequest struct {
	Name         string              `json:"name"         validate:"required,min=1,max=120"`
	Category     string              `json:"category"     validate:"max=60"`
	Yield        float64             `json:"yield"        validate:"omitempty,gt=0"`
	Ingredients  []RecipeLineRequest `json:"ingredients"  validate:"dive"`
	LaborCost    float64             `json:"laborCost"    validate:"min=0"`
	SellingPrice float64             `json:"sellingPrice" validate:"min=0"`
}

type UpdateRecipeRequest struct {
	Name         *string              `json:"name"         validate:"omitempty,min=1,max=120"`
	Category     *string              `json:"category"     validate:"omitempty,max=60"`
	Yield        *float64             `json:"yield"        validate:"omitempty,gt=0"`
	Ingredients  *[]RecipeLineRequest `json:"ingredients"  validate:"omitempty,dive"`
	LaborCost    *float64             `json:"laborCost"    validate:"omitempty,min=0"`
	SellingPrice *float64             `json:"sellingPrice" validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RecipeLineResponse struct {
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`
	Cost float64 `json:"cost"`
}

type RecipeResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Category     string               `json:"category,omitempty"`
	Yield        float64              `json:"yield"`
	Ingredients  []RecipeLineResponse `json:"ingredients"`
	LaborCost    float64              `json:"laborCost"`
	TotalCost    float64              `json:"totalCost"`
	SellingPrice float64              `json:"sellingPrice"`
	Margin       float64              `json:"margin"`
	CreatedAt    time.Time            `json:"createdAt"`
}
