package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingredient is one entry in the purchasing catalog. Name acts as the natural
// lookup key when pricing recipe lines — the storage layer does not enforce
// uniqueness, lookups take the first match.
type Ingredient struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string          `gorm:"index;not null"`
	Unit     string          `gorm:"not null"`
	UnitCost decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Supplier *string
	// LastUpdated is bumped on every catalog edit so buyers can spot stale costs.
	LastUpdated time.Time
	CreatedAt   time.Time
}
