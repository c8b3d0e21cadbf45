package recipe

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"recipebook/internal/middleware"
	"recipebook/internal/pkg/response"
	pkgvalidator "recipebook/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the recipe endpoints. Reads go on the public group
// (optional auth so personal flags can still be annotated), writes and
// toggles on the authenticated group.
func (h *Handler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/recipes", h.List)
	public.GET("/recipes/:id", h.Get)

	authed.POST("/recipes", h.Create)
	authed.PUT("/recipes/:id", h.Update)
	authed.PATCH("/recipes/:id", h.Update)
	authed.DELETE("/recipes/:id", h.Delete)

	authed.POST("/recipes/:id/favorite", h.Favorite)
	authed.DELETE("/recipes/:id/favorite", h.Unfavorite)
	authed.POST("/recipes/:id/shopping_cart", h.AddToShoppingList)
	authed.DELETE("/recipes/:id/shopping_cart", h.RemoveFromShoppingList)
}

func (h *Handler) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	page, perPage := pagination(c)
	q := ListQuery{
		TagSlugs:         c.QueryArray("tags"),
		IsFavorited:      boolQuery(c, "is_favorited"),
		IsInShoppingCart: boolQuery(c, "is_in_shopping_cart"),
		Limit:            perPage,
		Offset:           (page - 1) * perPage,
	}
	if raw := c.Query("author"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid author id")
			return
		}
		q.AuthorID = id
	}

	recipes, total, err := h.service.List(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list recipes")
		return
	}

	response.Paginated(c, http.StatusOK, "recipes", recipes, total, page, perPage)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	r, err := h.service.Get(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"recipe": r})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	r, err := h.service.Create(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"recipe": r})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	// Partial updates carry no binding tags, so field rules run here.
	if fields := pkgvalidator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", fields)
		return
	}

	r, err := h.service.Update(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"recipe": r})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Favorite(c *gin.Context) {
	h.addToggle(c, h.service.Favorite)
}

func (h *Handler) Unfavorite(c *gin.Context) {
	h.removeToggle(c, h.service.Unfavorite)
}

func (h *Handler) AddToShoppingList(c *gin.Context) {
	h.addToggle(c, h.service.AddToShoppingList)
}

func (h *Handler) RemoveFromShoppingList(c *gin.Context) {
	h.removeToggle(c, h.service.RemoveFromShoppingList)
}

func (h *Handler) addToggle(c *gin.Context, fn func(ctx context.Context, userID, recipeID int64) (*ShortResponse, error)) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	short, err := fn(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"recipe": short})
}

func (h *Handler) removeToggle(c *gin.Context, fn func(ctx context.Context, userID, recipeID int64) error) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := fn(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrNotFavorited),
		errors.Is(err, ErrNotInShoppingList):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrAlreadyFavorited),
		errors.Is(err, ErrAlreadyInShoppingList):
		response.Error(c, http.StatusBadRequest, "ALREADY_EXISTS", err.Error())
	case errors.Is(err, ErrEmptyIngredients),
		errors.Is(err, ErrDuplicateIngredient),
		errors.Is(err, ErrAmountTooSmall),
		errors.Is(err, ErrCookingTimeTooSmall),
		errors.Is(err, ErrIngredientNotFound),
		errors.Is(err, ErrTagNotFound),
		errors.Is(err, ErrInvalidImage):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func recipeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid recipe id")
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return page, perPage
}

func boolQuery(c *gin.Context, key string) bool {
	switch c.Query(key) {
	case "1", "true", "True":
		return true
	}
	return false
}
