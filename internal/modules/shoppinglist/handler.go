package shoppinglist

import (
	"net/http"

	"recipebook/internal/middleware"
	"recipebook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.GET("/recipes/download_shopping_cart", h.Download)
}

func (h *Handler) Download(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	pdf, err := h.service.Download(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to build shopping list")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
