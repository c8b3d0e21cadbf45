package recipe

import "errors"

var (
	ErrEmptyIngredients    = errors.New("recipe needs at least one ingredient")
	ErrDuplicateIngredient = errors.New("ingredient listed more than once")
	ErrAmountTooSmall      = errors.New("ingredient amount below minimum")
	ErrCookingTimeTooSmall = errors.New("cooking time below minimum")
	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrTagNotFound         = errors.New("tag not found")
	ErrInvalidImage        = errors.New("invalid image")

	ErrNotFound  = errors.New("recipe not found")
	ErrForbidden = errors.New("only the author may modify this recipe")

	ErrAlreadyFavorited      = errors.New("recipe already in favorites")
	ErrNotFavorited          = errors.New("recipe not in favorites")
	ErrAlreadyInShoppingList = errors.New("recipe already in shopping list")
	ErrNotInShoppingList     = errors.New("recipe not in shopping list")
)
