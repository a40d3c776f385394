// Package bootstrap assembles repositories, services and handlers so the
// server, the CLI and the API tests share one composition.
package bootstrap

import (
	partnerapp "github.com/abstratium/partner/internal/application/partner"
	"github.com/abstratium/partner/internal/infrastructure/persistence"
	"github.com/abstratium/partner/internal/interfaces/http/handler"
	"github.com/abstratium/partner/internal/interfaces/http/router"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services holds every application service of the partner API
type Services struct {
	Partner          *partnerapp.PartnerService
	Export           *partnerapp.PartnerExportService
	Address          *partnerapp.AddressService
	AddressDetail    *partnerapp.AddressDetailService
	Contact          *partnerapp.ContactDetailService
	Tag              *partnerapp.TagService
	PartnerTag       *partnerapp.PartnerTagService
	RelationshipType *partnerapp.RelationshipTypeService
	Relationship     *partnerapp.PartnerRelationshipService
	SMERelationship  *partnerapp.SMERelationshipService
	PartnerType      *partnerapp.PartnerTypeService
}

// NewServices builds the repositories on db and the services on top of them.
// Reference lists are served through cache.
func NewServices(db *gorm.DB, cache partnerapp.ListCache, sink partnerapp.ExportSink, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}

	partnerRepo := persistence.NewGormPartnerRepository(db)
	partnerTypeRepo := persistence.NewGormPartnerTypeRepository(db)
	addressRepo := persistence.NewGormAddressRepository(db)
	addressDetailRepo := persistence.NewGormAddressDetailRepository(db)
	contactRepo := persistence.NewGormContactDetailRepository(db)
	tagRepo := persistence.NewGormTagRepository(db)
	partnerTagRepo := persistence.NewGormPartnerTagRepository(db)
	relationshipTypeRepo := persistence.NewGormRelationshipTypeRepository(db)
	relationshipRepo := persistence.NewGormRelationshipRepository(db)
	smeRepo := persistence.NewGormSMERelationshipRepository(db)

	partnerService := partnerapp.NewPartnerService(
		partnerRepo, partnerTypeRepo, addressDetailRepo, contactRepo, partnerTagRepo, logger)

	return &Services{
		Partner:          partnerService,
		Export:           partnerapp.NewPartnerExportService(partnerRepo, sink, logger),
		Address:          partnerapp.NewAddressService(addressRepo, logger),
		AddressDetail:    partnerapp.NewAddressDetailService(addressDetailRepo, partnerRepo, addressRepo),
		Contact:          partnerapp.NewContactDetailService(contactRepo, partnerRepo),
		Tag:              partnerapp.NewTagService(tagRepo, cache, logger),
		PartnerTag:       partnerapp.NewPartnerTagService(partnerTagRepo, partnerRepo, tagRepo),
		RelationshipType: partnerapp.NewRelationshipTypeService(relationshipTypeRepo, cache, logger),
		Relationship:     partnerapp.NewPartnerRelationshipService(relationshipRepo, relationshipTypeRepo, partnerRepo),
		SMERelationship:  partnerapp.NewSMERelationshipService(smeRepo, partnerRepo),
		PartnerType:      partnerapp.NewPartnerTypeService(partnerTypeRepo, cache, logger),
	}
}

// Handlers creates the HTTP handlers for the services
func (s *Services) Handlers() router.Handlers {
	return router.Handlers{
		Partner:         handler.NewPartnerHandler(s.Partner, s.Export),
		PartnerAddress:  handler.NewPartnerAddressHandler(s.AddressDetail),
		Contact:         handler.NewContactHandler(s.Contact),
		Tag:             handler.NewTagHandler(s.Tag, s.PartnerTag),
		Relationship:    handler.NewRelationshipHandler(s.RelationshipType, s.Relationship),
		SMERelationship: handler.NewSMERelationshipHandler(s.SMERelationship),
		Address:         handler.NewAddressHandler(s.Address),
		PartnerType:     handler.NewPartnerTypeHandler(s.PartnerType),
	}
}
