package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/shopcore-backend/internal/platform/logger"
	"github.com/yungbote/shopcore-backend/internal/services"
)

type ItemHandler struct {
	log         *logger.Logger
	itemService services.ItemService
}

func NewItemHandler(log *logger.Logger, itemService services.ItemService) *ItemHandler {
	return &ItemHandler{
		log:         log.With("handler", "ItemHandler"),
		itemService: itemService,
	}
}

func (h *ItemHandler) Create(c *gin.Context) {
	var req services.CreateItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	item, err := h.itemService.Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, gin.H{"item": item})
}

func (h *ItemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	var req services.UpdateItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	item, err := h.itemService.Update(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"item": item})
}

func (h *ItemHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	item, err := h.itemService.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"item": item})
}

func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.itemService.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": items})
}
