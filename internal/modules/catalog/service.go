package catalog

import (
	"context"
	"errors"

	"recipebook/internal/domain"
	"recipebook/internal/repository"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

// Service exposes the read-only reference data: tags and ingredients.
type Service struct {
	tags        *repository.TagRepository
	ingredients *repository.IngredientRepository
}

func NewService(tags *repository.TagRepository, ingredients *repository.IngredientRepository) *Service {
	return &Service{tags: tags, ingredients: ingredients}
}

func (s *Service) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

func (s *Service) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return tag, err
}

// ListIngredients filters by a case-insensitive name prefix when namePrefix
// is non-empty.
func (s *Service) ListIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	return s.ingredients.List(ctx, namePrefix)
}

func (s *Service) GetIngredient(ctx context.Context, id int64) (*domain.Ingredient, error) {
	ing, err := s.ingredients.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return ing, err
}
