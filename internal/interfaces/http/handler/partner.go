package handler

import (
	partnerapp "github.com/abstratium/partner/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// PartnerHandler handles partner-related API endpoints
type PartnerHandler struct {
	BaseHandler
	partnerService *partnerapp.PartnerService
	exportService  *partnerapp.PartnerExportService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partnerService *partnerapp.PartnerService, exportService *partnerapp.PartnerExportService) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
		exportService:  exportService,
	}
}

// Search godoc
// @ID           searchPartners
// @Summary      Search partners
// @Description  Lists partners ordered by partner number with their preferred address, contacts and tags.
// @Description  The search term matches names, notes and the partner number.
// @Tags         partners
// @Produce      json
// @Param        search query string false "Search term"
// @Success      200 {object} APIResponse[[]partnerapp.PartnerSearchResult]
// @Failure      500 {object} ErrorResponse
// @Router       /partner [get]
func (h *PartnerHandler) Search(c *gin.Context) {
	results, err := h.partnerService.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, results)
}

// GetByID godoc
// @ID           getPartnerById
// @Summary      Get partner by ID
// @Tags         partners
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.PartnerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id} [get]
func (h *PartnerHandler) GetByID(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	p, err := h.partnerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, p)
}

// Create godoc
// @ID           createPartner
// @Summary      Create a partner
// @Description  Creates a natural person when firstName or lastName is given, otherwise a legal entity.
// @Description  The next partner number is assigned.
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.PartnerRequest true "Partner"
// @Success      201 {object} APIResponse[partnerapp.PartnerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner [post]
func (h *PartnerHandler) Create(c *gin.Context) {
	var req partnerapp.PartnerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.partnerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, p)
}

// Update godoc
// @ID           updatePartner
// @Summary      Update a partner
// @Description  Replaces the partner profile. The partner number never changes.
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        request body partnerapp.PartnerRequest true "Partner"
// @Success      200 {object} APIResponse[partnerapp.PartnerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id} [put]
func (h *PartnerHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	var req partnerapp.PartnerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.partnerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, p)
}

// Delete godoc
// @ID           deletePartner
// @Summary      Delete a partner
// @Description  Deletes the partner with its addresses, contacts, tags and relationships
// @Tags         partners
// @Param        id path string true "Partner ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id} [delete]
func (h *PartnerHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	if err := h.partnerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Export godoc
// @ID           exportPartners
// @Summary      Export partners
// @Description  Writes one "<partner number> <display name>" line per partner to the configured sink
// @Tags         partners
// @Produce      json
// @Success      200 {object} APIResponse[partnerapp.ExportResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /partner/export [post]
func (h *PartnerHandler) Export(c *gin.Context) {
	resp, err := h.exportService.Export(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
