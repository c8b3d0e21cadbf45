package shoppinglist

import (
	"context"

	"recipebook/internal/repository"
)

type ShoppingListRepository interface {
	AggregateIngredients(ctx context.Context, userID int64) ([]repository.IngredientTotal, error)
}

// Renderer produces the downloadable document body.
type Renderer interface {
	Render(items []repository.IngredientTotal) ([]byte, error)
}

type Service struct {
	repo     ShoppingListRepository
	renderer Renderer
}

func NewService(repo ShoppingListRepository, renderer Renderer) *Service {
	return &Service{repo: repo, renderer: renderer}
}

// Download aggregates the user's shopping list and renders it. An empty
// list still yields a valid document with only the title.
func (s *Service) Download(ctx context.Context, userID int64) ([]byte, error) {
	items, err := s.repo.AggregateIngredients(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(items)
}
