package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateIngredientRequest struct {
	Name     string          `json:"name"      validate:"required,min=1,max=120"`
	Unit     string          `json:"unit"      validate:"required,max=20"`
	UnitCost decimal.Decimal `json:"unitCost"  validate:"min=0"`
	Supplier *string         `json:"supplier"  validate:"omitempty,max=120"`
}

type UpdateIngredientRequest struct {
	Name     *string          `json:"name"     validate:"omitempty,min=1,max=120"`
	Unit     *string          `json:"unit"     validate:"omitempty,max=20"`
	UnitCost *decimal.Decimal `json:"unitCost" validate:"omitempty,min=0"`
	Supplier *string          `json:"supplier" validate:"omitempty,max=120"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type IngredientResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Supplier    *string         `json:"supplier,omitempty"`
	LastUpdated time.Time       `json:"lastUpdated"`
}
