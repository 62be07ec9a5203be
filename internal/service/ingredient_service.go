package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/MauroGaravito/emilio-cogs/internal/dto"
	"github.com/MauroGaravito/emilio-cogs/internal/model"
	"github.com/MauroGaravito/emilio-cogs/internal/repository"
	"github.com/MauroGaravito/emilio-cogs/internal/worker"
)

// IngredientService defines business operations for the purchasing catalog.
// Catalog edits never rewrite previously saved recipes — those keep the cost
// snapshot taken when they were last priced.
type IngredientService interface {
	Create(ctx context.Context, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error)
	List(ctx context.Context) ([]dto.IngredientResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ingredientService struct {
	repo       repository.IngredientRepository
	dispatcher *worker.Dispatcher
}

func NewIngredientService(repo repository.IngredientRepository, dispatcher *worker.Dispatcher) IngredientService {
	return &ingredientService{repo: repo, dispatcher: dispatcher}
}

func mapIngredient(ing *model.Ingredient) dto.IngredientResponse {
	return dto.IngredientResponse{
		ID:          ing.ID.String(),
		Name:        ing.Name,
		Unit:        ing.Unit,
		UnitCost:    ing.UnitCost,
		Supplier:    ing.Supplier,
		LastUpdated: ing.LastUpdated,
	}
}

func (s *ingredientService) Create(ctx context.Context, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	ing := &model.Ingredient{
		Name:        req.Name,
		Unit:        req.Unit,
		UnitCost:    req.UnitCost,
		Supplier:    req.Supplier,
		LastUpdated: time.Now(),
	}
	if err := s.repo.Create(ctx, ing); err != nil {
		return nil, err
	}
	s.refreshDashboard(ctx)
	resp := mapIngredient(ing)
	return &resp, nil
}

func (s *ingredientService) List(ctx context.Context) ([]dto.IngredientResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.IngredientResponse, 0, len(list))
	for i := range list {
		resp = append(resp, mapIngredient(&list[i]))
	}
	return resp, nil
}

func (s *ingredientService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("ingredient not found")
		}
		return nil, err
	}

	if req.Name != nil {
		ing.Name = *req.Name
	}
	if req.Unit != nil {
		ing.Unit = *req.Unit
	}
	if req.UnitCost != nil {
		ing.UnitCost = *req.UnitCost
	}
	if req.Supplier != nil {
		ing.Supplier = req.Supplier
	}
	ing.LastUpdated = time.Now()

	if err := s.repo.Update(ctx, ing); err != nil {
		return nil, err
	}
	s.refreshDashboard(ctx)
	resp := mapIngredient(ing)
	return &resp, nil
}

func (s *ingredientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("ingredient not found")
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshDashboard(ctx)
	return nil
}

// refreshDashboard enqueues a summary cache refresh — best effort, the next
// dashboard read recomputes on a cache miss anyway.
func (s *ingredientService) refreshDashboard(ctx context.Context) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.EnqueueDashboardRefresh(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to enqueue dashboard refresh")
	}
}
