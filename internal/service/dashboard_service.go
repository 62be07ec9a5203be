package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MauroGaravito/emilio-cogs/internal/dto"
	"github.com/MauroGaravito/emilio-cogs/internal/pricing"
	"github.com/MauroGaravito/emilio-cogs/internal/repository"
)

const (
	summaryCacheKey = "dashboard:summary"
	summaryCacheTTL = 10 * time.Minute
)

// DashboardService serves the landing-page aggregates. Reads go through a
// Redis cache; the worker pool calls Refresh after every write so the cache
// is usually warm.
type DashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardSummary, error)
	Refresh(ctx context.Context) error
}

type dashboardService struct {
	recipes     repository.RecipeRepository
	ingredients repository.IngredientRepository
	rdb         *redis.Client
}

func NewDashboardService(recipes repository.RecipeRepository, ingredients repository.IngredientRepository, rdb *redis.Client) DashboardService {
	return &dashboardService{recipes: recipes, ingredients: ingredients, rdb: rdb}
}

func (s *dashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, summaryCacheKey).Bytes(); err == nil {
			var summary dto.DashboardSummary
			if jsonErr := json.Unmarshal(cached, &summary); jsonErr == nil {
				return &summary, nil
			}
		}
	}

	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, summary)
	return summary, nil
}

// Refresh recomputes the summary and rewrites the cache. Invoked by the
// worker pool after recipe/ingredient mutations.
func (s *dashboardService) Refresh(ctx context.Context) error {
	summary, err := s.compute(ctx)
	if err != nil {
		return err
	}
	s.cache(ctx, summary)
	return nil
}

func (s *dashboardService) compute(ctx context.Context) (*dto.DashboardSummary, error) {
	recipes, err := s.recipes.List(ctx)
	if err != nil {
		return nil, err
	}
	nIngredients, err := s.ingredients.Count(ctx)
	if err != nil {
		return nil, err
	}

	var marginSum, costSum float64
	for _, r := range recipes {
		marginSum += r.Margin
		costSum += r.TotalCost
	}

	summary := &dto.DashboardSummary{
		TotalRecipes:     int64(len(recipes)),
		TotalIngredients: nIngredients,
		TotalCost:        pricing.Round2(costSum),
	}
	if len(recipes) > 0 {
		summary.AvgMargin = pricing.Round2(marginSum / float64(len(recipes)))
	}
	return summary, nil
}

// cache is best effort — a failed write just means the next read recomputes.
func (s *dashboardService) cache(ctx context.Context, summary *dto.DashboardSummary) {
	if s.rdb == nil {
		return
	}
	if b, err := json.Marshal(summary); err == nil {
		_ = s.rdb.Set(ctx, summaryCacheKey, b, summaryCacheTTL).Err()
	}
}
