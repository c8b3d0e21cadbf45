package users

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recipebook/internal/middleware"
	"recipebook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the user endpoints. public carries OptionalAuth so
// is_subscribed resolves for signed-in readers; authed requires a token.
// Static segments are registered before the :id routes.
func (h *Handler) RegisterRoutes(public, authed *gin.RouterGroup) {
	authed.GET("/users/me", h.Me)
	authed.GET("/users/subscriptions", h.Subscriptions)
	authed.POST("/users/:id/subscribe", h.Subscribe)
	authed.DELETE("/users/:id/subscribe", h.Unsubscribe)
	public.GET("/users", h.List)
	public.GET("/users/:id", h.Get)
}

func (h *Handler) List(c *gin.Context) {
	page, perPage := pagination(c)
	list, total, err := h.service.List(c.Request.Context(), middleware.CurrentUserID(c), perPage, (page-1)*perPage)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list users")
		return
	}
	response.Paginated(c, http.StatusOK, "users", list, total, page, perPage)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user id")
		return
	}

	user, err := h.service.Get(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get user")
		}
		return
	}

	response.Success(c, http.StatusOK, user)
}

func (h *Handler) Me(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	user, err := h.service.Get(c.Request.Context(), userID, userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get profile")
		return
	}
	response.Success(c, http.StatusOK, user)
}

func (h *Handler) Subscribe(c *gin.Context) {
	authorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user id")
		return
	}

	author, err := h.service.Follow(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		authorID,
		recipesLimit(c),
	)
	if err != nil {
		switch err {
		case ErrSelfFollow:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case ErrAlreadyFollowing:
			response.Error(c, http.StatusBadRequest, "ALREADY_EXISTS", err.Error())
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to subscribe")
		}
		return
	}

	response.Success(c, http.StatusCreated, author)
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	authorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user id")
		return
	}

	err = h.service.Unfollow(c.Request.Context(), middleware.CurrentUserID(c), authorID)
	if err != nil {
		switch err {
		case ErrNotFollowing, ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to unsubscribe")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Subscriptions(c *gin.Context) {
	page, perPage := pagination(c)
	authors, total, err := h.service.Subscriptions(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		perPage,
		(page-1)*perPage,
		recipesLimit(c),
	)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list subscriptions")
		return
	}
	response.Paginated(c, http.StatusOK, "authors", authors, total, page, perPage)
}

func pagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}

func recipesLimit(c *gin.Context) int {
	n, _ := strconv.Atoi(c.Query("recipes_limit"))
	if n < 0 {
		return 0
	}
	return n
}
