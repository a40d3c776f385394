package router

import (
	"github.com/abstratium/partner/internal/interfaces/http/handler"
)

// Handlers holds every resource handler exposed under the base path
type Handlers struct {
	Partner         *handler.PartnerHandler
	PartnerAddress  *handler.PartnerAddressHandler
	Contact         *handler.ContactHandler
	Tag             *handler.TagHandler
	Relationship    *handler.RelationshipHandler
	SMERelationship *handler.SMERelationshipHandler
	Address         *handler.AddressHandler
	PartnerType     *handler.PartnerTypeHandler
}

// PartnerRoutes builds the route groups of the partner API
func PartnerRoutes(h Handlers) []*Resource {
	partners := NewResource("partner", "/partner")
	partners.GET("", h.Partner.Search)
	partners.POST("", h.Partner.Create)
	partners.POST("/export", h.Partner.Export)
	partners.GET("/:id", h.Partner.GetByID)
	partners.PUT("/:id", h.Partner.Update)
	partners.DELETE("/:id", h.Partner.Delete)

	partners.Nest("partner-address", "/:id/address").
		GET("", h.PartnerAddress.List).
		POST("", h.PartnerAddress.Create).
		PUT("/:detailId", h.PartnerAddress.Update).
		DELETE("/:detailId", h.PartnerAddress.Delete)

	partners.Nest("partner-contact", "/:id/contact").
		GET("", h.Contact.List).
		POST("", h.Contact.Create).
		GET("/type/:type", h.Contact.ListByType).
		GET("/type/:type/primary", h.Contact.Primary).
		GET("/:contactId", h.Contact.GetByID).
		PUT("/:contactId", h.Contact.Update).
		DELETE("/:contactId", h.Contact.Delete)

	partners.Nest("partner-tag", "/:id/tag").
		GET("", h.Tag.ListForPartner).
		POST("/:tagId", h.Tag.Assign).
		DELETE("/:tagId", h.Tag.Unassign)

	partners.Nest("partner-relationship", "/:id/relationship").
		GET("", h.Relationship.List).
		POST("", h.Relationship.Create).
		DELETE("/:relId", h.Relationship.Delete)

	partners.Nest("partner-sme-relationship", "/:id/sme-relationship").
		GET("", h.SMERelationship.List).
		POST("", h.SMERelationship.Create).
		GET("/:smeId", h.SMERelationship.GetByID).
		PUT("/:smeId", h.SMERelationship.Update).
		DELETE("/:smeId", h.SMERelationship.Delete)

	addresses := NewResource("address", "/address").
		GET("", h.Address.List).
		POST("", h.Address.Create).
		GET("/countries", h.Address.Countries).
		GET("/:id", h.Address.GetByID).
		PUT("/:id", h.Address.Update).
		DELETE("/:id", h.Address.Delete)

	tags := NewResource("tag", "/tag").
		GET("", h.Tag.List).
		POST("", h.Tag.Create).
		GET("/name/:name", h.Tag.GetByName).
		GET("/:id", h.Tag.GetByID).
		PUT("/:id", h.Tag.Update).
		DELETE("/:id", h.Tag.Delete)

	contacts := NewResource("contact", "/contact").
		GET("", h.Contact.Search)

	relationshipTypes := NewResource("relationship-type", "/relationship-type").
		GET("", h.Relationship.ListTypes).
		POST("", h.Relationship.CreateType).
		GET("/name/:name", h.Relationship.GetTypeByName).
		GET("/:id", h.Relationship.GetType).
		PUT("/:id", h.Relationship.UpdateType).
		DELETE("/:id", h.Relationship.DeleteType)

	partnerTypes := NewResource("partner-type", "/partner-type").
		GET("", h.PartnerType.List).
		POST("", h.PartnerType.Create)

	return []*Resource{partners, addresses, tags, contacts, relationshipTypes, partnerTypes}
}
