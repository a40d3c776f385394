package handler

import (
	partnerapp "github.com/abstratium/partner/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// PartnerTypeHandler handles partner classification codes
type PartnerTypeHandler struct {
	BaseHandler
	typeService *partnerapp.PartnerTypeService
}

// NewPartnerTypeHandler creates a new PartnerTypeHandler
func NewPartnerTypeHandler(typeService *partnerapp.PartnerTypeService) *PartnerTypeHandler {
	return &PartnerTypeHandler{typeService: typeService}
}

// List godoc
// @ID           listPartnerTypes
// @Summary      List partner types
// @Tags         partner-types
// @Produce      json
// @Success      200 {object} APIResponse[[]partnerapp.PartnerTypeResponse]
// @Router       /partner-type [get]
func (h *PartnerTypeHandler) List(c *gin.Context) {
	types, err := h.typeService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, types)
}

// Create godoc
// @ID           createPartnerType
// @Summary      Create a partner type
// @Tags         partner-types
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.PartnerTypeRequest true "Partner type"
// @Success      201 {object} APIResponse[partnerapp.PartnerTypeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /partner-type [post]
func (h *PartnerTypeHandler) Create(c *gin.Context) {
	var req partnerapp.PartnerTypeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	pt, err := h.typeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, pt)
}
