package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MauroGaravito/emilio-cogs/internal/dto"
	"github.com/MauroGaravito/emilio-cogs/internal/model"
	"github.com/MauroGaravito/emilio-cogs/internal/service"
)

// ── In-memory repository stubs ───────────────────────────────────────────────

type memIngredientRepo struct {
	byName map[string]model.Ingredient
}

func (r *memIngredientRepo) Create(_ context.Context, ing *model.Ingredient) error {
	ing.ID = uuid.New()
	r.byName[ing.Name] = *ing
	return nil
}

func (r *memIngredientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ingredient, error) {
	for _, ing := range r.byName {
		if ing.ID == id {
			return &ing, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memIngredientRepo) FindByName(_ context.Context, name string) (*model.Ingredient, error) {
	ing, ok := r.byName[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ing, nil
}

func (r *memIngredientRepo) List(_ context.Context) ([]model.Ingredient, error) {
	list := make([]model.Ingredient, 0, len(r.byName))
	for _, ing := range r.byName {
		list = append(list, ing)
	}
	return list, nil
}

func (r *memIngredientRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byName)), nil
}

func (r *memIngredientRepo) Update(_ context.Context, ing *model.Ingredient) error {
	r.byName[ing.Name] = *ing
	return nil
}

func (r *memIngredientRepo) Delete(_ context.Context, id uuid.UUID) error {
	for name, ing := range r.byName {
		if ing.ID == id {
			delete(r.byName, name)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type memRecipeRepo struct {
	byID map[uuid.UUID]model.Recipe
}

func (r *memRecipeRepo) Create(_ context.Context, rec *model.Recipe) error {
	rec.ID = uuid.New()
	r.byID[rec.ID] = *rec
	return nil
}

func (r *memRecipeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Recipe, error) {
	rec, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &rec, nil
}

func (r *memRecipeRepo) List(_ context.Context) ([]model.Recipe, error) {
	list := make([]model.Recipe, 0, len(r.byID))
	for _, rec := range r.byID {
		list = append(list, rec)
	}
	return list, nil
}

func (r *memRecipeRepo) Update(_ context.Context, rec *model.Recipe) error {
	r.byID[rec.ID] = *rec
	return nil
}

func (r *memRecipeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func newRecipesRouter() (*gin.Engine, *memRecipeRepo) {
	gin.SetMode(gin.TestMode)

	ingredients := &memIngredientRepo{byName: map[string]model.Ingredient{
		"Tomato":   {ID: uuid.New(), Name: "Tomato", Unit: "kg", UnitCost: decimal.NewFromFloat(3.5)},
		"Pasta":    {ID: uuid.New(), Name: "Pasta", Unit: "kg", UnitCost: decimal.NewFromFloat(2.2)},
		"Parmesan": {ID: uuid.New(), Name: "Parmesan", Unit: "kg", UnitCost: decimal.NewFromFloat(12.0)},
	}}
	recipes := &memRecipeRepo{byID: make(map[uuid.UUID]model.Recipe)}

	svc := service.NewRecipeService(recipes, ingredients, nil)
	h := NewRecipesHandler(svc)

	r := gin.New()
	r.GET("/recipes", h.List)
	r.GET("/recipes/:id", h.Get)
	r.POST("/recipes", h.Create)
	r.PUT("/recipes/:id", h.Update)
	r.DELETE("/recipes/:id", h.Delete)
	return r, recipes
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(b)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateRecipe_ReturnsPricedRecipe(t *testing.T) {
	r, _ := newRecipesRouter()

	w := doJSON(t, r, http.MethodPost, "/recipes", dto.CreateRecipeRequest{
		Name:     "Spaghetti Pomodoro",
		Category: "Pasta",
		Yield:    4,
		Ingredients: []dto.RecipeLineRequest{
			{Name: "Tomato", Qty: 0.8, Unit: "kg"},
			{Name: "Pasta", Qty: 0.5, Unit: "kg"},
			{Name: "Parmesan", Qty: 0.1, Unit: "kg"},
		},
		LaborCost:    5,
		SellingPrice: 28,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10.10, resp.TotalCost)
	assert.Equal(t, 63.93, resp.Margin)
}

func TestCreateRecipe_MissingName_Returns422(t *testing.T) {
	r, repo := newRecipesRouter()

	w := doJSON(t, r, http.MethodPost, "/recipes", map[string]interface{}{
		"sellingPrice": 10,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, repo.byID)
}

func TestCreateRecipe_UnknownIngredient_Saves(t *testing.T) {
	r, repo := newRecipesRouter()

	w := doJSON(t, r, http.MethodPost, "/recipes", dto.CreateRecipeRequest{
		Name: "Mystery Soup",
		Ingredients: []dto.RecipeLineRequest{
			{Name: "Unobtainium", Qty: 1, Unit: "kg"},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, repo.byID, 1)
}

func TestGetRecipe_InvalidID(t *testing.T) {
	r, _ := newRecipesRouter()

	w := doJSON(t, r, http.MethodGet, "/recipes/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRecipe_NotFound(t *testing.T) {
	r, _ := newRecipesRouter()

	w := doJSON(t, r, http.MethodGet, "/recipes/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateRecipe_RepricesWithNewSellingPrice(t *testing.T) {
	r, _ := newRecipesRouter()

	w := doJSON(t, r, http.MethodPost, "/recipes", dto.CreateRecipeRequest{
		Name: "Tomato Salad",
		Ingredients: []dto.RecipeLineRequest{
			{Name: "Tomato", Qty: 0.5, Unit: "kg"},
		},
		LaborCost:    2,
		SellingPrice: 10,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 3.75, created.TotalCost)

	w = doJSON(t, r, http.MethodPut, "/recipes/"+created.ID, map[string]interface{}{
		"sellingPrice": 15,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated dto.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))

	// ((15 - 3.75) / 15) * 100 = 75.00
	assert.Equal(t, 75.0, updated.Margin)
}

func TestDeleteRecipe_Succeeds(t *testing.T) {
	r, repo := newRecipesRouter()

	w := doJSON(t, r, http.MethodPost, "/recipes", dto.CreateRecipeRequest{Name: "Gone"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodDelete, "/recipes/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.byID)
}
