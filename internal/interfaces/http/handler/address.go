package handler

import (
	partnerapp "github.com/abstratium/partner/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// AddressHandler handles the shared address book
type AddressHandler struct {
	BaseHandler
	addressService *partnerapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addressService *partnerapp.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// List godoc
// @ID           listAddresses
// @Summary      List addresses
// @Tags         addresses
// @Produce      json
// @Param        search query string false "Matches street, city and postal code"
// @Success      200 {object} APIResponse[[]partnerapp.AddressResponse]
// @Router       /address [get]
func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.addressService.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, addresses)
}

// Countries godoc
// @ID           listCountries
// @Summary      List ISO 3166-1 countries
// @Description  Country codes with English names, sorted by name
// @Tags         addresses
// @Produce      json
// @Success      200 {object} APIResponse[[]partnerapp.CountryResponse]
// @Router       /address/countries [get]
func (h *AddressHandler) Countries(c *gin.Context) {
	h.Success(c, h.addressService.Countries())
}

// GetByID godoc
// @ID           getAddress
// @Summary      Get an address
// @Tags         addresses
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.AddressResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /address/{id} [get]
func (h *AddressHandler) GetByID(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "address")
	if !ok {
		return
	}
	address, err := h.addressService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, address)
}

// Create godoc
// @ID           createAddress
// @Summary      Create an address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.AddressRequest true "Address"
// @Success      201 {object} APIResponse[partnerapp.AddressResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /address [post]
func (h *AddressHandler) Create(c *gin.Context) {
	var req partnerapp.AddressRequest
	if !h.bindJSON(c, &req) {
		return
	}
	address, err := h.addressService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, address)
}

// Update godoc
// @ID           updateAddress
// @Summary      Update an address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Param        request body partnerapp.AddressRequest true "Address"
// @Success      200 {object} APIResponse[partnerapp.AddressResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /address/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "address")
	if !ok {
		return
	}
	var req partnerapp.AddressRequest
	if !h.bindJSON(c, &req) {
		return
	}
	address, err := h.addressService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, address)
}

// Delete godoc
// @ID           deleteAddress
// @Summary      Delete an address
// @Description  Addresses linked to a partner cannot be deleted
// @Tags         addresses
// @Param        id path string true "Address ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /address/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "address")
	if !ok {
		return
	}
	if err := h.addressService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
