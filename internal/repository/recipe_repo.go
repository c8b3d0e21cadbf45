package repository

import (
	"context"

	"recipebook/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeFilters narrows the recipe listing. Zero values switch a filter off.
type RecipeFilters struct {
	TagSlugs         []string // OR within the set
	AuthorID         int64
	FavoritedBy      int64 // user id whose favorites to restrict to
	InShoppingListOf int64 // user id whose shopping list to restrict to
	Limit            int
	Offset           int
}

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create persists the recipe row, its tag links and its line items in one
// transaction. items must already carry validated amounts.
func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, items []domain.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		for i := range items {
			items[i].RecipeID = recipe.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update writes changed scalar fields and, when requested, replaces the tag
// set and the full line-item set. Line items are never patched individually:
// the old set is deleted and the new one inserted in the same transaction.
func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, items []domain.RecipeIngredient, replaceTags, replaceItems bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"name":         recipe.Name,
			"image":        recipe.Image,
			"text":         recipe.Text,
			"cooking_time": recipe.CookingTime,
		}
		if err := tx.Model(&domain.Recipe{ID: recipe.ID}).Updates(updates).Error; err != nil {
			return err
		}

		if replaceTags {
			if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}

		if replaceItems {
			if err := tx.Where("recipe_id = ?", recipe.ID).
				Delete(&domain.RecipeIngredient{}).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].ID = 0
				items[i].RecipeID = recipe.ID
			}
			if len(items) > 0 {
				if err := tx.Create(&items).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// Delete removes the recipe and everything it owns or is referenced by.
// Dependent rows go first so the delete also works on backends without
// enforced FK cascades.
func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.ShoppingListEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Recipe{}, id).Error
	})
}

func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns recipes newest first with the filter set applied.
func (r *RecipeRepository) List(ctx context.Context, f RecipeFilters) ([]domain.Recipe, int64, error) {
	var recipes []domain.Recipe
	var total int64

	base := r.db.WithContext(ctx).Model(&domain.Recipe{})

	if len(f.TagSlugs) > 0 {
		// Subquery keeps the OR-union semantics without duplicating rows
		// for recipes matching several of the requested slugs.
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
		base = base.Where("recipes.id IN (?)", tagged)
	}
	if f.AuthorID > 0 {
		base = base.Where("recipes.author_id = ?", f.AuthorID)
	}
	if f.FavoritedBy > 0 {
		base = base.Joins(
			"JOIN favorites ON favorites.recipe_id = recipes.id AND favorites.user_id = ?",
			f.FavoritedBy,
		)
	}
	if f.InShoppingListOf > 0 {
		base = base.Joins(
			"JOIN shopping_list_entries ON shopping_list_entries.recipe_id = recipes.id AND shopping_list_entries.user_id = ?",
			f.InShoppingListOf,
		)
	}

	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.pub_date DESC, recipes.id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

// ListByAuthor returns an author's recipes newest first, for subscription
// previews. limit <= 0 means no bound.
func (r *RecipeRepository) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var recipes []domain.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *RecipeRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&n).Error
	return n, err
}
