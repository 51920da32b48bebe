package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/shopcore-backend/internal/data/query"
	"github.com/yungbote/shopcore-backend/internal/domain"
	domainagg "github.com/yungbote/shopcore-backend/internal/domain/aggregates"
	"github.com/yungbote/shopcore-backend/internal/platform/logger"
	"github.com/yungbote/shopcore-backend/internal/services"
)

type OrderHandler struct {
	log          *logger.Logger
	orderService services.OrderService
}

func NewOrderHandler(log *logger.Logger, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		log:          log.With("handler", "OrderHandler"),
		orderService: orderService,
	}
}

type placeOrderLineRequest struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

type placeOrderRequest struct {
	MemberID uuid.UUID `json:"member_id"`

	// Single-line shorthand; ignored when lines is present.
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`

	Lines []placeOrderLineRequest `json:"lines"`
}

func (h *OrderHandler) Place(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	in := domainagg.PlaceOrderInput{MemberID: req.MemberID}
	if len(req.Lines) > 0 {
		for _, line := range req.Lines {
			in.Lines = append(in.Lines, domainagg.OrderLineSpec{ItemID: line.ItemID, Quantity: line.Quantity})
		}
	} else {
		in.Lines = []domainagg.OrderLineSpec{{ItemID: req.ItemID, Quantity: req.Quantity}}
	}

	out, err := h.orderService.Place(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, gin.H{"order": out})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_order_id", err)
		return
	}
	out, err := h.orderService.Cancel(c.Request.Context(), orderID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"order": out})
}

func (h *OrderHandler) CompleteDelivery(c *gin.Context) {
	deliveryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_delivery_id", err)
		return
	}
	out, err := h.orderService.CompleteDelivery(c.Request.Context(), deliveryID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"delivery": out})
}

func (h *OrderHandler) Search(c *gin.Context) {
	search := query.OrderSearch{
		Status:     domain.OrderStatus(c.Query("status")),
		MemberName: c.Query("member_name"),
	}
	orders, err := h.orderService.Search(c.Request.Context(), search)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"orders": orders})
}

func (h *OrderHandler) ListViews(c *gin.Context) {
	strategy, ok := query.ParseStrategy(c.DefaultQuery("strategy", string(query.StrategyBatchedLines)))
	if !ok {
		RespondError(c, http.StatusBadRequest, "invalid_strategy", nil)
		return
	}

	var page *query.Page
	offsetRaw, hasOffset := c.GetQuery("offset")
	limitRaw, hasLimit := c.GetQuery("limit")
	if hasOffset || hasLimit {
		page = &query.Page{}
		if hasOffset {
			offset, err := strconv.Atoi(offsetRaw)
			if err != nil {
				RespondError(c, http.StatusBadRequest, "invalid_offset", err)
				return
			}
			page.Offset = offset
		}
		if hasLimit {
			limit, err := strconv.Atoi(limitRaw)
			if err != nil {
				RespondError(c, http.StatusBadRequest, "invalid_limit", err)
				return
			}
			page.Limit = limit
		}
	}

	views, err := h.orderService.ListViews(c.Request.Context(), strategy, page)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"orders": views, "strategy": strategy})
}
