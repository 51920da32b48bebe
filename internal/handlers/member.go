package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/shopcore-backend/internal/platform/logger"
	"github.com/yungbote/shopcore-backend/internal/services"
)

type MemberHandler struct {
	log           *logger.Logger
	memberService services.MemberService
}

func NewMemberHandler(log *logger.Logger, memberService services.MemberService) *MemberHandler {
	return &MemberHandler{
		log:           log.With("handler", "MemberHandler"),
		memberService: memberService,
	}
}

func (h *MemberHandler) Register(c *gin.Context) {
	var req services.RegisterMemberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	member, err := h.memberService.Register(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, gin.H{"member": member})
}

func (h *MemberHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_member_id", err)
		return
	}
	member, err := h.memberService.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"member": member})
}

func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.memberService.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"members": members})
}
