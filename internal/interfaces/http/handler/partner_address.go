package handler

import (
	partnerapp "github.com/abstratium/partner/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// PartnerAddressHandler links addresses to partners
type PartnerAddressHandler struct {
	BaseHandler
	detailService *partnerapp.AddressDetailService
}

// NewPartnerAddressHandler creates a new PartnerAddressHandler
func NewPartnerAddressHandler(detailService *partnerapp.AddressDetailService) *PartnerAddressHandler {
	return &PartnerAddressHandler{detailService: detailService}
}

// List godoc
// @ID           listPartnerAddresses
// @Summary      List a partner's addresses
// @Description  Primary address first
// @Tags         partner-addresses
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Success      200 {object} APIResponse[[]partnerapp.AddressDetailResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/address [get]
func (h *PartnerAddressHandler) List(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	details, err := h.detailService.ListByPartner(c.Request.Context(), partnerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, details)
}

// Create godoc
// @ID           addPartnerAddress
// @Summary      Link an address to a partner
// @Description  A new primary address demotes the partner's other addresses
// @Tags         partner-addresses
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        addressId query string true "Address ID" format(uuid)
// @Param        request body partnerapp.AddressDetailRequest true "Address usage"
// @Success      201 {object} APIResponse[partnerapp.AddressDetailResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/address [post]
func (h *PartnerAddressHandler) Create(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	addressID, ok := h.uuidQuery(c, "addressId", "address")
	if !ok {
		return
	}
	var req partnerapp.AddressDetailRequest
	if !h.bindJSON(c, &req) {
		return
	}
	detail, err := h.detailService.Create(c.Request.Context(), partnerID, addressID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, detail)
}

// Update godoc
// @ID           updatePartnerAddress
// @Summary      Update a partner's address usage
// @Tags         partner-addresses
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        detailId path string true "Address detail ID" format(uuid)
// @Param        request body partnerapp.AddressDetailRequest true "Address usage"
// @Success      200 {object} APIResponse[partnerapp.AddressDetailResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/address/{detailId} [put]
func (h *PartnerAddressHandler) Update(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	detailID, ok := h.uuidParam(c, "detailId", "address detail")
	if !ok {
		return
	}
	var req partnerapp.AddressDetailRequest
	if !h.bindJSON(c, &req) {
		return
	}
	detail, err := h.detailService.Update(c.Request.Context(), partnerID, detailID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, detail)
}

// Delete godoc
// @ID           removePartnerAddress
// @Summary      Unlink an address from a partner
// @Tags         partner-addresses
// @Param        id path string true "Partner ID" format(uuid)
// @Param        detailId path string true "Address detail ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/address/{detailId} [delete]
func (h *PartnerAddressHandler) Delete(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	detailID, ok := h.uuidParam(c, "detailId", "address detail")
	if !ok {
		return
	}
	if err := h.detailService.Delete(c.Request.Context(), partnerID, detailID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
