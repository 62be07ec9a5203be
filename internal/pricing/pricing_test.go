package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MauroGaravito/emilio-cogs/internal/model"
)

// ── Fixture catalog ───────────────────────────────────────────────────────────

func fixtureCatalog(ingredients ...model.Ingredient) Lookup {
	byName := make(map[string]model.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		if _, ok := byName[ing.Name]; !ok { // first match wins
			byName[ing.Name] = ing
		}
	}
	return func(_ context.Context, name string) (*model.Ingredient, error) {
		ing, ok := byName[name]
		if !ok {
			return nil, nil
		}
		return &ing, nil
	}
}

func ing(name, unit string, unitCost float64) model.Ingredient {
	return model.Ingredient{Name: name, Unit: unit, UnitCost: decimal.NewFromFloat(unitCost)}
}

// demoCatalog matches the seed data: Tomato 3.50/kg, Pasta 2.20/kg, Parmesan 12.00/kg.
func demoCatalog() Lookup {
	return fixtureCatalog(
		ing("Tomato", "kg", 3.5),
		ing("Pasta", "kg", 2.2),
		ing("Parmesan", "kg", 12.0),
	)
}

func pomodoro() model.Recipe {
	return model.Recipe{
		Name:     "Spaghetti Pomodoro",
		Category: "Pasta",
		Yield:    4,
		Ingredients: model.RecipeLines{
			{Name: "Tomato", Qty: 0.8, Unit: "kg"},
			{Name: "Pasta", Qty: 0.5, Unit: "kg"},
			{Name: "Parmesan", Qty: 0.1, Unit: "kg"},
		},
		LaborCost:    5,
		SellingPrice: 28,
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestPriceRecipe_DemoScenario(t *testing.T) {
	priced, err := PriceRecipe(context.Background(), pomodoro(), demoCatalog())
	require.NoError(t, err)

	assert.InDelta(t, 2.80, priced.Ingredients[0].Cost, 1e-9)
	assert.InDelta(t, 1.10, priced.Ingredients[1].Cost, 1e-9)
	assert.InDelta(t, 1.20, priced.Ingredients[2].Cost, 1e-9)
	assert.Equal(t, 10.10, priced.TotalCost)
	assert.Equal(t, 63.93, priced.Margin)
}

func TestPriceRecipe_ZeroSellingPrice_MarginIsZero(t *testing.T) {
	r := pomodoro()
	r.SellingPrice = 0

	priced, err := PriceRecipe(context.Background(), r, demoCatalog())
	require.NoError(t, err)

	assert.Equal(t, 10.10, priced.TotalCost)
	assert.Equal(t, 0.0, priced.Margin)
}

func TestPriceRecipe_NegativeSellingPrice_MarginIsZero(t *testing.T) {
	r := pomodoro()
	r.SellingPrice = -3

	priced, err := PriceRecipe(context.Background(), r, demoCatalog())
	require.NoError(t, err)
	assert.Equal(t, 0.0, priced.Margin)
}

func TestPriceRecipe_UnknownIngredient_DefaultsToZero(t *testing.T) {
	r := model.Recipe{
		Name:        "Mystery Soup",
		Ingredients: model.RecipeLines{{Name: "Unobtainium", Qty: 2, Unit: "kg"}},
	}

	priced, err := PriceRecipe(context.Background(), r, demoCatalog())
	require.NoError(t, err)

	assert.Equal(t, 0.0, priced.Ingredients[0].Cost)
	assert.Equal(t, 0.0, priced.TotalCost)
}

func TestPriceRecipe_UnknownIngredient_KeepsManualCost(t *testing.T) {
	r := model.Recipe{
		Name:        "Imported Truffle Pasta",
		Ingredients: model.RecipeLines{{Name: "Truffle", Qty: 0.05, Unit: "kg", Cost: 9.90}},
		LaborCost:   2,
	}

	priced, err := PriceRecipe(context.Background(), r, demoCatalog())
	require.NoError(t, err)

	assert.Equal(t, 9.90, priced.Ingredients[0].Cost)
	assert.Equal(t, 11.90, priced.TotalCost)
}

func TestPriceRecipe_CatalogOverridesManualCost(t *testing.T) {
	// A stale snapshot cost on a resolvable line is replaced, not kept.
	r := model.Recipe{
		Name:        "Tomato Salad",
		Ingredients: model.RecipeLines{{Name: "Tomato", Qty: 1, Unit: "kg", Cost: 99}},
	}

	priced, err := PriceRecipe(context.Background(), r, demoCatalog())
	require.NoError(t, err)
	assert.InDelta(t, 3.50, priced.Ingredients[0].Cost, 1e-9)
}

func TestPriceRecipe_UnitInheritance(t *testing.T) {
	r := model.Recipe{
		Name: "Units",
		Ingredients: model.RecipeLines{
			{Name: "Tomato", Qty: 1},              // empty unit → inherits "kg"
			{Name: "Pasta", Qty: 1, Unit: "box"},  // explicit unit wins
			{Name: "Unknown", Qty: 1, Unit: "pc"}, // unresolved → untouched
		},
	}

	priced, err := PriceRecipe(context.Background(), r, demoCatalog())
	require.NoError(t, err)

	assert.Equal(t, "kg", priced.Ingredients[0].Unit)
	assert.Equal(t, "box", priced.Ingredients[1].Unit)
	assert.Equal(t, "pc", priced.Ingredients[2].Unit)
}

func TestPriceRecipe_NoLines_LaborOnly(t *testing.T) {
	r := model.Recipe{Name: "Delivery Fee", LaborCost: 7.5, SellingPrice: 10}

	priced, err := PriceRecipe(context.Background(), r, demoCatalog())
	require.NoError(t, err)

	assert.Equal(t, 7.5, priced.TotalCost)
	assert.Equal(t, 25.0, priced.Margin)
}

func TestPriceRecipe_Idempotent(t *testing.T) {
	first, err := PriceRecipe(context.Background(), pomodoro(), demoCatalog())
	require.NoError(t, err)

	second, err := PriceRecipe(context.Background(), first, demoCatalog())
	require.NoError(t, err)

	assert.Equal(t, first.TotalCost, second.TotalCost)
	assert.Equal(t, first.Margin, second.Margin)
	assert.Equal(t, first.Ingredients, second.Ingredients)
}

func TestPriceRecipe_DoesNotMutateInput(t *testing.T) {
	r := pomodoro()
	_, err := PriceRecipe(context.Background(), r, demoCatalog())
	require.NoError(t, err)

	assert.Equal(t, 0.0, r.Ingredients[0].Cost)
	assert.Equal(t, 0.0, r.TotalCost)
	assert.Equal(t, 0.0, r.Margin)
}

func TestPriceRecipe_LookupErrorPropagates(t *testing.T) {
	broken := func(context.Context, string) (*model.Ingredient, error) {
		return nil, errors.New("catalog unavailable")
	}

	_, err := PriceRecipe(context.Background(), pomodoro(), broken)
	assert.EqualError(t, err, "catalog unavailable")
}

func TestPriceRecipe_ExactNameMatch(t *testing.T) {
	// Matching is case- and whitespace-sensitive on purpose.
	r := model.Recipe{
		Name: "Case Test",
		Ingredients: model.RecipeLines{
			{Name: "tomato", Qty: 1},
			{Name: "Tomato ", Qty: 1},
		},
	}

	priced, err := PriceRecipe(context.Background(), r, demoCatalog())
	require.NoError(t, err)
	assert.Equal(t, 0.0, priced.Ingredients[0].Cost)
	assert.Equal(t, 0.0, priced.Ingredients[1].Cost)
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 2.01, Round2(2.005))
	assert.Equal(t, -2.01, Round2(-2.005))
	assert.Equal(t, 0.33, Round2(1.0/3.0))
	assert.Equal(t, 10.1, Round2(10.100000000000001))
}
