package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MauroGaravito/emilio-cogs/internal/model"
)

// IngredientRepository defines the data access contract for the catalog.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type IngredientRepository interface {
	Create(ctx context.Context, ing *model.Ingredient) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error)
	// FindByName performs an exact-match lookup; when several catalog rows
	// share a name the oldest row wins.
	FindByName(ctx context.Context, name string) (*model.Ingredient, error)
	List(ctx context.Context) ([]model.Ingredient, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, ing *model.Ingredient) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ingredientRepo struct{ db *gorm.DB }

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepo{db: db}
}

func (r *ingredientRepo) Create(ctx context.Context, ing *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(ing).Error
}

func (r *ingredientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	var ing model.Ingredient
	err := r.db.WithContext(ctx).First(&ing, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepo) FindByName(ctx context.Context, name string) (*model.Ingredient, error) {
	var ing model.Ingredient
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("created_at ASC").
		First(&ing).Error
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepo) List(ctx context.Context) ([]model.Ingredient, error) {
	var list []model.Ingredient
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *ingredientRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Ingredient{}).Count(&n).Error
	return n, err
}

func (r *ingredientRepo) Update(ctx context.Context, ing *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(ing).Error
}

func (r *ingredientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Ingredient{}, "id = ?", id).Error
}
