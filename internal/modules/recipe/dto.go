package recipe

import (
	"time"

	"recipebook/internal/domain"
)

// IngredientSpec is one requested line item: an ingredient row id plus the
// amount used by the recipe.
type IngredientSpec struct {
	ID     int64 `json:"id" binding:"required"`
	Amount int   `json:"amount" binding:"required"`
}

type CreateRecipeRequest struct {
	Name        string           `json:"name" binding:"required,max=100"`
	Text        string           `json:"text" binding:"required,max=500"`
	CookingTime int              `json:"cooking_time" binding:"required"`
	Image       string           `json:"image" binding:"required"`
	TagIDs      []int64          `json:"tags"`
	Ingredients []IngredientSpec `json:"ingredients" binding:"required"`
}

// UpdateRecipeRequest carries only the fields the caller wants changed.
// A present Ingredients slice replaces the entire line-item set; a present
// TagIDs slice replaces the tag set.
type UpdateRecipeRequest struct {
	Name        *string           `json:"name" validate:"omitempty,max=100"`
	Text        *string           `json:"text" validate:"omitempty,max=500"`
	CookingTime *int              `json:"cooking_time"`
	Image       *string           `json:"image"`
	TagIDs      *[]int64          `json:"tags"`
	Ingredients *[]IngredientSpec `json:"ingredients"`
}

type AuthorResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type IngredientResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeResponse struct {
	ID               int64                `json:"id"`
	Tags             []domain.Tag         `json:"tags"`
	Author           AuthorResponse       `json:"author"`
	Ingredients      []IngredientResponse `json:"ingredients"`
	IsFavorited      bool                 `json:"is_favorited"`
	IsInShoppingCart bool                 `json:"is_in_shopping_cart"`
	Name             string               `json:"name"`
	Image            string               `json:"image"`
	Text             string               `json:"text"`
	CookingTime      int                  `json:"cooking_time"`
	PubDate          time.Time            `json:"pub_date"`
}

// ShortResponse is the compact form returned by the toggle endpoints.
type ShortResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func toShortResponse(r *domain.Recipe) ShortResponse {
	return ShortResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

func toRecipeResponse(r *domain.Recipe, isFavorited, inCart, isSubscribed bool) RecipeResponse {
	resp := RecipeResponse{
		ID:               r.ID,
		Tags:             r.Tags,
		Ingredients:      make([]IngredientResponse, 0, len(r.Ingredients)),
		IsFavorited:      isFavorited,
		IsInShoppingCart: inCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		PubDate:          r.PubDate,
	}
	if resp.Tags == nil {
		resp.Tags = []domain.Tag{}
	}

	if r.Author != nil {
		resp.Author = AuthorResponse{
			ID:           r.Author.ID,
			Email:        r.Author.Email,
			Username:     r.Author.Username,
			FirstName:    r.Author.FirstName,
			LastName:     r.Author.LastName,
			IsSubscribed: isSubscribed,
		}
	}

	for _, item := range r.Ingredients {
		ir := IngredientResponse{
			ID:     item.IngredientID,
			Amount: item.Amount,
		}
		if item.Ingredient != nil {
			ir.Name = item.Ingredient.Name
			ir.MeasurementUnit = item.Ingredient.MeasurementUnit
		}
		resp.Ingredients = append(resp.Ingredients, ir)
	}

	return resp
}
