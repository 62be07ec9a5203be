package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MauroGaravito/emilio-cogs/internal/model"
	"github.com/MauroGaravito/emilio-cogs/internal/pricing"
)

// CatalogLookup adapts an IngredientRepository to the pricing.Lookup
// capability. A missing row becomes a nil ingredient, never an error — the
// calculator treats unresolved names as a normal fallback case. Any other
// storage error is passed through for the caller to handle.
func CatalogLookup(repo IngredientRepository) pricing.Lookup {
	return func(ctx context.Context, name string) (*model.Ingredient, error) {
		ing, err := repo.FindByName(ctx, name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return ing, nil
	}
}
