// Package pricing implements the recipe cost recalculation routine shared by
// the create-recipe handler, the update-recipe handler, and the seed command.
// All three call sites must go through PriceRecipe so that rounding and
// fallback behavior can never drift between them.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MauroGaravito/emilio-cogs/internal/model"
)

// Lookup resolves a catalog ingredient by exact name match.
// A nil ingredient with a nil error means "not in the catalog" — that is a
// normal outcome, not a failure. A non-nil error means the catalog itself is
// unreachable and is returned to the caller untouched.
type Lookup func(ctx context.Context, name string) (*model.Ingredient, error)

// PriceRecipe returns a copy of r with every derived field recomputed:
// per-line costs, TotalCost and Margin. The input is never mutated.
//
// Per line, in order: if the named ingredient exists in the catalog the line
// cost is unitCost * qty and an empty line unit inherits the catalog unit;
// otherwise the line keeps whatever cost it already carried (zero by
// default). Unresolved names are tolerated on purpose — a recipe referencing
// a deleted ingredient still saves, it just prices that line from the
// snapshot.
//
// Margin is ((sellingPrice - totalCost) / sellingPrice) * 100 when the
// selling price is positive, and exactly 0 otherwise (zero, missing or
// negative prices would make the percentage meaningless). TotalCost and
// Margin are rounded to 2 decimals, half away from zero; line costs and the
// running sum keep full float precision.
func PriceRecipe(ctx context.Context, r model.Recipe, lookup Lookup) (model.Recipe, error) {
	priced := r
	lines := make(model.RecipeLines, len(r.Ingredients))
	copy(lines, r.Ingredients)

	var ingredientsCost float64
	for i := range lines {
		line := &lines[i]
		cost := line.Cost
		ing, err := lookup(ctx, line.Name)
		if err != nil {
			return r, err
		}
		if ing != nil {
			cost = ing.UnitCost.InexactFloat64() * line.Qty
			if line.Unit == "" {
				line.Unit = ing.Unit
			}
		}
		line.Cost = cost
		ingredientsCost += cost
	}

	totalCost := ingredientsCost + r.LaborCost

	priced.Ingredients = lines
	priced.TotalCost = Round2(totalCost)
	if r.SellingPrice > 0 {
		priced.Margin = Round2(((r.SellingPrice - totalCost) / r.SellingPrice) * 100)
	} else {
		priced.Margin = 0
	}
	return priced, nil
}

// Round2 rounds to 2 decimal places, half away from zero. Every monetary
// value reported by the API goes through this one function.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
