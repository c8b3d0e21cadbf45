package recipe

import (
	"context"

	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

type RecipeRepository interface {
	Create(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, items []domain.RecipeIngredient) error
	Update(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, items []domain.RecipeIngredient, replaceTags, replaceItems bool) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	List(ctx context.Context, f repository.RecipeFilters) ([]domain.Recipe, int64, error)
}

type TagRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error)
}

type IngredientRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error)
}

// ToggleRepository is the shared contract of the favorite and shopping-list
// stores: constraint-backed add, remove-or-not-found, and membership lookup.
type ToggleRepository interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
	RecipeIDs(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error)
}

type FollowRepository interface {
	AuthorIDs(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error)
}

// ImageStore persists a base64 image payload and returns its public path.
// Remove is best effort; the recipe row stays authoritative.
type ImageStore interface {
	Save(payload string) (string, error)
	Remove(rel string) error
}
