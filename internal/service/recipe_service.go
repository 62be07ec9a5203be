package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/MauroGaravito/emilio-cogs/internal/dto"
	"github.com/MauroGaravito/emilio-cogs/internal/model"
	"github.com/MauroGaravito/emilio-cogs/internal/pricing"
	"github.com/MauroGaravito/emilio-cogs/internal/repository"
	"github.com/MauroGaravito/emilio-cogs/internal/worker"
)

// RecipeService owns the recipe lifecycle. Create and Update both run the
// shared pricing routine against the live catalog before persisting, so
// TotalCost and Margin are always consistent with the saved lines.
type RecipeService interface {
	Create(ctx context.Context, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.RecipeResponse, error)
	List(ctx context.Context) ([]dto.RecipeResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateRecipeRequest) (*dto.RecipeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type recipeService struct {
	repo       repository.RecipeRepository
	catalog    pricing.Lookup
	dispatcher *worker.Dispatcher
}

func NewRecipeService(repo repository.RecipeRepository, ingredients repository.IngredientRepository, dispatcher *worker.Dispatcher) RecipeService {
	return &recipeService{
		repo:       repo,
		catalog:    repository.CatalogLookup(ingredients),
		dispatcher: dispatcher,
	}
}

func (s *recipeService) Create(ctx context.Context, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	draft := model.Recipe{
		Name:         req.Name,
		Category:     req.Category,
		Yield:        req.Yield,
		Ingredients:  linesFromRequest(req.Ingredients),
		LaborCost:    req.LaborCost,
		SellingPrice: req.SellingPrice,
	}
	if draft.Yield == 0 {
		draft.Yield = 1
	}

	priced, err := pricing.PriceRecipe(ctx, draft, s.catalog)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &priced); err != nil {
		return nil, err
	}
	s.refreshDashboard(ctx)
	resp := mapRecipe(&priced)
	return &resp, nil
}

func (s *recipeService) Get(ctx context.Context, id uuid.UUID) (*dto.RecipeResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("recipe not found")
		}
		return nil, err
	}
	resp := mapRecipe(rec)
	return &resp, nil
}

func (s *recipeService) List(ctx context.Context) ([]dto.RecipeResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RecipeResponse, 0, len(list))
	for i := range list {
		resp = append(resp, mapRecipe(&list[i]))
	}
	return resp, nil
}

func (s *recipeService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("recipe not found")
		}
		return nil, err
	}

	// Merge caller-supplied overrides, then re-price the whole recipe.
	if req.Name != nil {
		rec.Name = *req.Name
	}
	if req.Category != nil {
		rec.Category = *req.Category
	}
	if req.Yield != nil {
		rec.Yield = *req.Yield
	}
	if req.Ingredients != nil {
		rec.Ingredients = linesFromRequest(*req.Ingredients)
	}
	if req.LaborCost != nil {
		rec.LaborCost = *req.LaborCost
	}
	if req.SellingPrice != nil {
		rec.SellingPrice = *req.SellingPrice
	}

	priced, err := pricing.PriceRecipe(ctx, *rec, s.catalog)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &priced); err != nil {
		return nil, err
	}
	s.refreshDashboard(ctx)
	resp := mapRecipe(&priced)
	return &resp, nil
}

func (s *recipeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("recipe not found")
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshDashboard(ctx)
	return nil
}

func (s *recipeService) refreshDashboard(ctx context.Context) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.EnqueueDashboardRefresh(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to enqueue dashboard refresh")
	}
}

func linesFromRequest(in []dto.RecipeLineRequest) model.RecipeLines {
	lines := make(model.RecipeLines, 0, len(in))
	for _, l := range in {
		lines = append(lines, model.RecipeLine{Name: l.Name, Qty: l.Qty, Unit: l.Unit, Cost: l.Cost})
	}
	return lines
}

func mapRecipe(r *model.Recipe) dto.RecipeResponse {
	lines := make([]dto.RecipeLineResponse, 0, len(r.Ingredients))
	for _, l := range r.Ingredients {
		lines = append(lines, dto.RecipeLineResponse{Name: l.Name, Qty: l.Qty, Unit: l.Unit, Cost: l.Cost})
	}
	return dto.RecipeResponse{
		ID:           r.ID.String(),
		Name:         r.Name,
		Category:     r.Category,
		Yield:        r.Yield,
		Ingredients:  lines,
		LaborCost:    r.LaborCost,
		TotalCost:    r.TotalCost,
		SellingPrice: r.SellingPrice,
		Margin:       r.Margin,
		CreatedAt:    r.CreatedAt,
	}
}
