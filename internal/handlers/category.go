package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/shopcore-backend/internal/platform/logger"
	"github.com/yungbote/shopcore-backend/internal/services"
)

type CategoryHandler struct {
	log             *logger.Logger
	categoryService services.CategoryService
}

func NewCategoryHandler(log *logger.Logger, categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		log:             log.With("handler", "CategoryHandler"),
		categoryService: categoryService,
	}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req services.CreateCategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, gin.H{"category": category})
}

type addCategoryItemRequest struct {
	ItemID uuid.UUID `json:"item_id"`
}

func (h *CategoryHandler) AddItem(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_category_id", err)
		return
	}
	var req addCategoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.categoryService.AddItem(c.Request.Context(), categoryID, req.ItemID); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"linked": true})
}

func (h *CategoryHandler) ListChildren(c *gin.Context) {
	parentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_category_id", err)
		return
	}
	children, err := h.categoryService.ListChildren(c.Request.Context(), parentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"categories": children})
}

func (h *CategoryHandler) ListItems(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_category_id", err)
		return
	}
	items, err := h.categoryService.ListItems(c.Request.Context(), categoryID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": items})
}
