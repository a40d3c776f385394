package handler

import (
	partnerapp "github.com/abstratium/partner/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// SMERelationshipHandler handles the commercial relationship records of a partner
type SMERelationshipHandler struct {
	BaseHandler
	smeService *partnerapp.SMERelationshipService
}

// NewSMERelationshipHandler creates a new SMERelationshipHandler
func NewSMERelationshipHandler(smeService *partnerapp.SMERelationshipService) *SMERelationshipHandler {
	return &SMERelationshipHandler{smeService: smeService}
}

// List godoc
// @ID           listSmeRelationships
// @Summary      List a partner's SME relationships
// @Tags         sme-relationships
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Success      200 {object} APIResponse[[]partnerapp.SMERelationshipResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/sme-relationship [get]
func (h *SMERelationshipHandler) List(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	records, err := h.smeService.ListByPartner(c.Request.Context(), partnerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, records)
}

// GetByID godoc
// @ID           getSmeRelationship
// @Summary      Get an SME relationship
// @Tags         sme-relationships
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        smeId path string true "SME relationship ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.SMERelationshipResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/sme-relationship/{smeId} [get]
func (h *SMERelationshipHandler) GetByID(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	smeID, ok := h.uuidParam(c, "smeId", "SME relationship")
	if !ok {
		return
	}
	record, err := h.smeService.GetByID(c.Request.Context(), partnerID, smeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, record)
}

// Create godoc
// @ID           createSmeRelationship
// @Summary      Record an SME relationship
// @Tags         sme-relationships
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        request body partnerapp.SMERelationshipRequest true "SME relationship"
// @Success      201 {object} APIResponse[partnerapp.SMERelationshipResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/sme-relationship [post]
func (h *SMERelationshipHandler) Create(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	var req partnerapp.SMERelationshipRequest
	if !h.bindJSON(c, &req) {
		return
	}
	record, err := h.smeService.Create(c.Request.Context(), partnerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, record)
}

// Update godoc
// @ID           updateSmeRelationship
// @Summary      Update an SME relationship
// @Tags         sme-relationships
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        smeId path string true "SME relationship ID" format(uuid)
// @Param        request body partnerapp.SMERelationshipRequest true "SME relationship"
// @Success      200 {object} APIResponse[partnerapp.SMERelationshipResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/sme-relationship/{smeId} [put]
func (h *SMERelationshipHandler) Update(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	smeID, ok := h.uuidParam(c, "smeId", "SME relationship")
	if !ok {
		return
	}
	var req partnerapp.SMERelationshipRequest
	if !h.bindJSON(c, &req) {
		return
	}
	record, err := h.smeService.Update(c.Request.Context(), partnerID, smeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, record)
}

// Delete godoc
// @ID           deleteSmeRelationship
// @Summary      Delete an SME relationship
// @Tags         sme-relationships
// @Param        id path string true "Partner ID" format(uuid)
// @Param        smeId path string true "SME relationship ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/sme-relationship/{smeId} [delete]
func (h *SMERelationshipHandler) Delete(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	smeID, ok := h.uuidParam(c, "smeId", "SME relationship")
	if !ok {
		return
	}
	if err := h.smeService.Delete(c.Request.Context(), partnerID, smeID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
