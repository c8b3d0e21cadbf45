package users

import (
	"context"
	"errors"

	"recipebook/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	users   UserRepository
	follows FollowRepository
	recipes RecipeReader
}

func NewService(users UserRepository, follows FollowRepository, recipes RecipeReader) *Service {
	return &Service{users: users, follows: follows, recipes: recipes}
}

// List returns profiles with is_subscribed computed against currentUserID
// (always false for anonymous readers, currentUserID == 0).
func (s *Service) List(ctx context.Context, currentUserID int64, limit, offset int) ([]UserResponse, int64, error) {
	list, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(list))
	for i, u := range list {
		ids[i] = u.ID
	}
	followed, err := s.follows.AuthorIDs(ctx, currentUserID, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]UserResponse, len(list))
	for i, u := range list {
		out[i] = ToUserResponse(&u, followed[u.ID])
	}
	return out, total, nil
}

func (s *Service) Get(ctx context.Context, currentUserID, id int64) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	isSubscribed := false
	if currentUserID != 0 && currentUserID != id {
		isSubscribed, err = s.follows.Exists(ctx, currentUserID, id)
		if err != nil {
			return nil, err
		}
	}

	resp := ToUserResponse(user, isSubscribed)
	return &resp, nil
}

// Follow subscribes userID to authorID and returns the author payload with
// recipe previews. Duplicate subscriptions are rejected by the store's
// unique index, not by a pre-check.
func (s *Service) Follow(ctx context.Context, userID, authorID int64, recipesLimit int) (*AuthorResponse, error) {
	if userID == authorID {
		return nil, ErrSelfFollow
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.follows.Add(ctx, userID, authorID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}

	return s.authorPayload(ctx, author, recipesLimit)
}

func (s *Service) Unfollow(ctx context.Context, userID, authorID int64) error {
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.follows.Remove(ctx, userID, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFollowing
		}
		return err
	}
	return nil
}

// Subscriptions lists the authors userID follows, each with recipe previews
// bounded by recipesLimit (0 = unbounded) and a total recipe count.
func (s *Service) Subscriptions(ctx context.Context, userID int64, limit, offset, recipesLimit int) ([]AuthorResponse, int64, error) {
	authors, total, err := s.follows.ListAuthors(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	out := make([]AuthorResponse, 0, len(authors))
	for i := range authors {
		payload, err := s.authorPayload(ctx, &authors[i], recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *payload)
	}
	return out, total, nil
}

func (s *Service) authorPayload(ctx context.Context, author *domain.User, recipesLimit int) (*AuthorResponse, error) {
	recipes, err := s.recipes.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipes.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	return &AuthorResponse{
		UserResponse: ToUserResponse(author, true),
		Recipes:      ToRecipeShorts(recipes),
		RecipesCount: count,
	}, nil
}
