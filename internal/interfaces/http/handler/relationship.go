package handler

import (
	"strconv"

	partnerapp "github.com/abstratium/partner/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// RelationshipHandler handles relationship types and partner relationships
type RelationshipHandler struct {
	BaseHandler
	typeService         *partnerapp.RelationshipTypeService
	relationshipService *partnerapp.PartnerRelationshipService
}

// NewRelationshipHandler creates a new RelationshipHandler
func NewRelationshipHandler(
	typeService *partnerapp.RelationshipTypeService,
	relationshipService *partnerapp.PartnerRelationshipService,
) *RelationshipHandler {
	return &RelationshipHandler{
		typeService:         typeService,
		relationshipService: relationshipService,
	}
}

// ListTypes godoc
// @ID           listRelationshipTypes
// @Summary      List relationship types
// @Tags         relationship-types
// @Produce      json
// @Param        search query string false "Matches name and description"
// @Param        activeOnly query bool false "Only active types"
// @Success      200 {object} APIResponse[[]partnerapp.RelationshipTypeResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /relationship-type [get]
func (h *RelationshipHandler) ListTypes(c *gin.Context) {
	activeOnly := false
	if raw := c.Query("activeOnly"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.BadRequest(c, "activeOnly must be true or false")
			return
		}
		activeOnly = v
	}
	types, err := h.typeService.List(c.Request.Context(), c.Query("search"), activeOnly)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, types)
}

// GetType godoc
// @ID           getRelationshipType
// @Summary      Get a relationship type
// @Tags         relationship-types
// @Produce      json
// @Param        id path string true "Relationship type ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.RelationshipTypeResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /relationship-type/{id} [get]
func (h *RelationshipHandler) GetType(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "relationship type")
	if !ok {
		return
	}
	rt, err := h.typeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, rt)
}

// GetTypeByName godoc
// @ID           getRelationshipTypeByName
// @Summary      Get a relationship type by name
// @Tags         relationship-types
// @Produce      json
// @Param        name path string true "Type name"
// @Success      200 {object} APIResponse[partnerapp.RelationshipTypeResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /relationship-type/name/{name} [get]
func (h *RelationshipHandler) GetTypeByName(c *gin.Context) {
	rt, err := h.typeService.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, rt)
}

// CreateType godoc
// @ID           createRelationshipType
// @Summary      Create a relationship type
// @Tags         relationship-types
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.RelationshipTypeRequest true "Relationship type"
// @Success      201 {object} APIResponse[partnerapp.RelationshipTypeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /relationship-type [post]
func (h *RelationshipHandler) CreateType(c *gin.Context) {
	var req partnerapp.RelationshipTypeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	rt, err := h.typeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, rt)
}

// UpdateType godoc
// @ID           updateRelationshipType
// @Summary      Update a relationship type
// @Tags         relationship-types
// @Accept       json
// @Produce      json
// @Param        id path string true "Relationship type ID" format(uuid)
// @Param        request body partnerapp.RelationshipTypeRequest true "Relationship type"
// @Success      200 {object} APIResponse[partnerapp.RelationshipTypeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /relationship-type/{id} [put]
func (h *RelationshipHandler) UpdateType(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "relationship type")
	if !ok {
		return
	}
	var req partnerapp.RelationshipTypeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	rt, err := h.typeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, rt)
}

// DeleteType godoc
// @ID           deleteRelationshipType
// @Summary      Delete a relationship type
// @Description  Types used by a relationship cannot be deleted
// @Tags         relationship-types
// @Param        id path string true "Relationship type ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /relationship-type/{id} [delete]
func (h *RelationshipHandler) DeleteType(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "relationship type")
	if !ok {
		return
	}
	if err := h.typeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// List godoc
// @ID           listPartnerRelationships
// @Summary      List a partner's relationships
// @Description  Relationships from or to the partner, newest first
// @Tags         relationships
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Success      200 {object} APIResponse[[]partnerapp.RelationshipResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/relationship [get]
func (h *RelationshipHandler) List(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	rels, err := h.relationshipService.ListByPartner(c.Request.Context(), partnerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, rels)
}

// Create godoc
// @ID           createPartnerRelationship
// @Summary      Relate two partners
// @Tags         relationships
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        relatedPartnerId query string true "Related partner ID" format(uuid)
// @Param        request body partnerapp.RelationshipRequest true "Relationship"
// @Success      201 {object} APIResponse[partnerapp.RelationshipResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/relationship [post]
func (h *RelationshipHandler) Create(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	relatedID, ok := h.uuidQuery(c, "relatedPartnerId", "related partner")
	if !ok {
		return
	}
	var req partnerapp.RelationshipRequest
	if !h.bindJSON(c, &req) {
		return
	}
	rel, err := h.relationshipService.Create(c.Request.Context(), partnerID, relatedID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, rel)
}

// Delete godoc
// @ID           deletePartnerRelationship
// @Summary      Delete a partner relationship
// @Tags         relationships
// @Param        id path string true "Partner ID" format(uuid)
// @Param        relId path string true "Relationship ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/relationship/{relId} [delete]
func (h *RelationshipHandler) Delete(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	relID, ok := h.uuidParam(c, "relId", "relationship")
	if !ok {
		return
	}
	if err := h.relationshipService.Delete(c.Request.Context(), partnerID, relID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
