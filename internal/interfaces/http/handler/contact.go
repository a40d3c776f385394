package handler

import (
	partnerapp "github.com/abstratium/partner/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// ContactHandler handles partner contact details
type ContactHandler struct {
	BaseHandler
	contactService *partnerapp.ContactDetailService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *partnerapp.ContactDetailService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Search godoc
// @ID           searchContacts
// @Summary      Search contact details across partners
// @Tags         contacts
// @Produce      json
// @Param        search query string false "Matches value and label"
// @Success      200 {object} APIResponse[[]partnerapp.ContactDetailResponse]
// @Router       /contact [get]
func (h *ContactHandler) Search(c *gin.Context) {
	contacts, err := h.contactService.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, contacts)
}

// List godoc
// @ID           listPartnerContacts
// @Summary      List a partner's contact details
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Success      200 {object} APIResponse[[]partnerapp.ContactDetailResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/contact [get]
func (h *ContactHandler) List(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	contacts, err := h.contactService.ListByPartner(c.Request.Context(), partnerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, contacts)
}

// ListByType godoc
// @ID           listPartnerContactsByType
// @Summary      List a partner's contact details of one type
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        type path string true "Contact type" Enums(EMAIL, PHONE, MOBILE, FAX, WEBSITE, OTHER)
// @Success      200 {object} APIResponse[[]partnerapp.ContactDetailResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/contact/type/{type} [get]
func (h *ContactHandler) ListByType(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	contacts, err := h.contactService.ListByPartnerAndType(c.Request.Context(), partnerID, c.Param("type"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, contacts)
}

// Primary godoc
// @ID           getPartnerPrimaryContact
// @Summary      Get a partner's primary contact of one type
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        type path string true "Contact type"
// @Success      200 {object} APIResponse[partnerapp.ContactDetailResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/contact/type/{type}/primary [get]
func (h *ContactHandler) Primary(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	contact, err := h.contactService.PrimaryFor(c.Request.Context(), partnerID, c.Param("type"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, contact)
}

// GetByID godoc
// @ID           getPartnerContact
// @Summary      Get one of a partner's contact details
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        contactId path string true "Contact ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.ContactDetailResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/contact/{contactId} [get]
func (h *ContactHandler) GetByID(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	contactID, ok := h.uuidParam(c, "contactId", "contact")
	if !ok {
		return
	}
	contact, err := h.contactService.GetByID(c.Request.Context(), partnerID, contactID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, contact)
}

// Create godoc
// @ID           addPartnerContact
// @Summary      Add a contact detail to a partner
// @Description  A new primary contact demotes the partner's other contacts of the same type
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        request body partnerapp.ContactDetailRequest true "Contact"
// @Success      201 {object} APIResponse[partnerapp.ContactDetailResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/contact [post]
func (h *ContactHandler) Create(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	var req partnerapp.ContactDetailRequest
	if !h.bindJSON(c, &req) {
		return
	}
	contact, err := h.contactService.Create(c.Request.Context(), partnerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, contact)
}

// Update godoc
// @ID           updatePartnerContact
// @Summary      Update a partner's contact detail
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        contactId path string true "Contact ID" format(uuid)
// @Param        request body partnerapp.ContactDetailRequest true "Contact"
// @Success      200 {object} APIResponse[partnerapp.ContactDetailResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/contact/{contactId} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	contactID, ok := h.uuidParam(c, "contactId", "contact")
	if !ok {
		return
	}
	var req partnerapp.ContactDetailRequest
	if !h.bindJSON(c, &req) {
		return
	}
	contact, err := h.contactService.Update(c.Request.Context(), partnerID, contactID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, contact)
}

// Delete godoc
// @ID           deletePartnerContact
// @Summary      Delete a partner's contact detail
// @Tags         contacts
// @Param        id path string true "Partner ID" format(uuid)
// @Param        contactId path string true "Contact ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /partner/{id}/contact/{contactId} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	partnerID, ok := h.uuidParam(c, "id", "partner")
	if !ok {
		return
	}
	contactID, ok := h.uuidParam(c, "contactId", "contact")
	if !ok {
		return
	}
	if err := h.contactService.Delete(c.Request.Context(), partnerID, contactID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
