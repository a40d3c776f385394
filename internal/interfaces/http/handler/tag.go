package handler

import (
	partnerapp "github.com/abstratium/partner/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// TagHandler handles the tag catalogue and tag assignments
type TagHandler struct {
	BaseHandler
	tagService        *partnerapp.TagService
	partnerTagService *partnerapp.PartnerTagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService *partnerapp.TagService, partnerTagService *partnerapp.PartnerTagService) *TagHandler {
	return &TagHandler{
		tagService:        tagService,
		partnerTagService: partnerTagService,
	}
}

// List godoc
// @ID           listTags
// @Summary      List tags
// @Description  Ordered by name. Without a search term the list is served from cache.
// @Tags         tags
// @Produce      json
// @Param        search query string false "Matches name and description"
// @Success      200 {object} APIResponse[[]partnerapp.TagResponse]
// @Router       /tag [get]
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tags)
}

// GetByID godoc
// @ID           getTag
// @Summary      Get a tag
// @Tags         tags
// @Produce      json
// @Param        id path string true "Tag ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.TagResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /tag/{id} [get]
func (h *TagHandler) GetByID(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "tag")
	if !ok {
		return
	}
	tag, err := h.tagService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tag)
}

// GetByName godoc
// @ID           getTagByName
// @Summary      Get a tag by name
// @Tags         tags
// @Produce      json
// @Param        name path string true "Tag name"
// @Success      200 {object} APIResponse[partnerapp.TagResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /tag/name/{name} [get]
func (h *TagHandler) GetByName(c *gin.Context) {
	tag, err := h.tagService.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tag)
}

// Create godoc
// @ID           createTag
// @Summary      Create a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.TagRequest true "Tag"
// @Success      201 {object} APIResponse[partnerapp.TagResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /tag [post]
func (h *TagHandler) Create(c *gin.Context) {
	var req partnerapp.TagRequest
	if !h.bindJSON(c, &req) {
		return
	}
	tag, err := h.tagService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, tag)
}

// Update godoc
// @ID           updateTag
// @Summary      Update a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id path string true "Tag ID" format(uuid)
// @Param        request body partnerapp.TagRequest true "Tag"
// @Success      200 {object} APIResponse[partnerapp.TagResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /tag/{id} [put]
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "tag")
	if !ok {
		return
	}
	var req partnerapp.TagRequest
	if !h.bindJSON(c, &req) {
		return
	}
	tag, err := h.tagService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tag)
}

// Delete godoc
// @ID           deleteTag
// @Summary      Delete a tag
// @Description  Tags still assigned to partners cannot be deleted
// @Tags         tags
// @Param        id path string true "Tag ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /tag/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "tag")
	if !ok {
		return
	}
	if err := h.tagService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// ListForPartner godoc
// @ID           listPartnerTags
// @Summary      List a partner's tags
// @Tags         tags
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Success      200 {object} APIResponse[[]partnerapp.PartnerTagResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/tag [get]
func (h *TagHandler) ListForPartner(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	tags, err := h.partnerTagService.TagsForPartner(c.Request.Context(), partnerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tags)
}

// Assign godoc
// @ID           assignPartnerTag
// @Summary      Tag a partner
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        tagId path string true "Tag ID" format(uuid)
// @Param        request body partnerapp.AssignTagRequest false "Who tagged the partner"
// @Success      201 {object} APIResponse[partnerapp.PartnerTagResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /partner/{id}/tag/{tagId} [post]
func (h *TagHandler) Assign(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	tagID, ok := h.uuidParam(c, "tagId", "tag")
	if !ok {
		return
	}
	var req partnerapp.AssignTagRequest
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}
	assignment, err := h.partnerTagService.Assign(c.Request.Context(), partnerID, tagID, req.TaggedBy)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, assignment)
}

// Unassign godoc
// @ID           unassignPartnerTag
// @Summary      Remove a tag from a partner
// @Tags         tags
// @Param        id path string true "Partner ID" format(uuid)
// @Param        tagId path string true "Tag ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/tag/{tagId} [delete]
func (h *TagHandler) Unassign(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	tagID, ok := h.uuidParam(c, "tagId", "tag")
	if !ok {
		return
	}
	if err := h.partnerTagService.Unassign(c.Request.Context(), partnerID, tagID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
