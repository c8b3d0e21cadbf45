package repository

import (
	"context"

	"recipebook/internal/domain"

	"gorm.io/gorm"
)

// The toggle repositories insert directly and let the unique index arbitrate:
// a concurrent duplicate add loses at the constraint, never at an
// application-level pre-check. Duplicate adds come back as
// gorm.ErrDuplicatedKey, removes of absent rows as gorm.ErrRecordNotFound.

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, recipeID int64) error {
	err := r.db.WithContext(ctx).Create(&domain.Favorite{UserID: userID, RecipeID: recipeID}).Error
	if IsUniqueViolation(err) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RecipeIDs reports which of the given recipes the user has favorited.
func (r *FavoriteRepository) RecipeIDs(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	return markedRecipeIDs(ctx, r.db, &domain.Favorite{}, userID, recipeIDs)
}

type ShoppingListRepository struct {
	db *gorm.DB
}

func NewShoppingListRepository(db *gorm.DB) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

func (r *ShoppingListRepository) Add(ctx context.Context, userID, recipeID int64) error {
	err := r.db.WithContext(ctx).Create(&domain.ShoppingListEntry{UserID: userID, RecipeID: recipeID}).Error
	if IsUniqueViolation(err) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

func (r *ShoppingListRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.ShoppingListEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ShoppingListRepository) RecipeIDs(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	return markedRecipeIDs(ctx, r.db, &domain.ShoppingListEntry{}, userID, recipeIDs)
}

// IngredientTotal is one aggregated row of the shopping-list report.
type IngredientTotal struct {
	Name            string `gorm:"column:name"`
	MeasurementUnit string `gorm:"column:measurement_unit"`
	Total           int    `gorm:"column:total"`
}

// AggregateIngredients sums line-item amounts across every recipe on the
// user's shopping list, grouped by the ingredient's natural key
// (name, measurement_unit) rather than its row id, ordered by name.
func (r *ShoppingListRepository) AggregateIngredients(ctx context.Context, userID int64) ([]IngredientTotal, error) {
	var totals []IngredientTotal
	err := r.db.WithContext(ctx).
		Model(&domain.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_list_entries ON shopping_list_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_list_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Add(ctx context.Context, userID, authorID int64) error {
	err := r.db.WithContext(ctx).Create(&domain.Follow{UserID: userID, AuthorID: authorID}).Error
	if IsUniqueViolation(err) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

func (r *FollowRepository) Remove(ctx context.Context, userID, authorID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&domain.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *FollowRepository) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&n).Error
	return n > 0, err
}

// ListAuthors returns the users this user follows, oldest subscription first.
func (r *FollowRepository) ListAuthors(ctx context.Context, userID int64, limit, offset int) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.created_at, follows.id")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var authors []domain.User
	if err := q.Find(&authors).Error; err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

// AuthorIDs reports which of the given users the user follows.
func (r *FollowRepository) AuthorIDs(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error) {
	if userID == 0 || len(authorIDs) == 0 {
		return map[int64]bool{}, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	marked := make(map[int64]bool, len(ids))
	for _, id := range ids {
		marked[id] = true
	}
	return marked, nil
}

func markedRecipeIDs(ctx context.Context, db *gorm.DB, model any, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	if userID == 0 || len(recipeIDs) == 0 {
		return map[int64]bool{}, nil
	}
	var ids []int64
	err := db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	marked := make(map[int64]bool, len(ids))
	for _, id := range ids {
		marked[id] = true
	}
	return marked, nil
}
