package partner

import (
	"context"
	"errors"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/abstratium/partner/internal/infrastructure/logger"
	"github.com/abstratium/partner/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// PartnerService handles partner-related business operations
type PartnerService struct {
	partnerRepo     partner.PartnerRepository
	partnerTypeRepo partner.PartnerTypeRepository
	addressRepo     partner.AddressDetailRepository
	contactRepo     partner.ContactDetailRepository
	tagRepo         partner.PartnerTagRepository
	logger          *zap.Logger
	metrics         *telemetry.PartnerMetrics
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(
	partnerRepo partner.PartnerRepository,
	partnerTypeRepo partner.PartnerTypeRepository,
	addressRepo partner.AddressDetailRepository,
	contactRepo partner.ContactDetailRepository,
	tagRepo partner.PartnerTagRepository,
	logger *zap.Logger,
) *PartnerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartnerService{
		partnerRepo:     partnerRepo,
		partnerTypeRepo: partnerTypeRepo,
		addressRepo:     addressRepo,
		contactRepo:     contactRepo,
		tagRepo:         tagRepo,
		logger:          logger,
	}
}

// SetMetrics sets the partner metrics recorder (optional)
func (s *PartnerService) SetMetrics(m *telemetry.PartnerMetrics) {
	s.metrics = m
}

// List returns partners matching search ordered by partner number
func (s *PartnerService) List(ctx context.Context, search string) ([]PartnerResponse, error) {
	partners, err := s.partnerRepo.FindAll(ctx, shared.NewSearchFilter(search))
	if err != nil {
		return nil, err
	}
	return ToPartnerResponses(partners), nil
}

// Search returns the partner listing enriched with the preferred address,
// the preferred email, phone and website, and the partner's tags
func (s *PartnerService) Search(ctx context.Context, search string) ([]PartnerSearchResult, error) {
	partners, err := s.partnerRepo.FindAll(ctx, shared.NewSearchFilter(search))
	if err != nil {
		return nil, err
	}
	if len(partners) == 0 {
		return []PartnerSearchResult{}, nil
	}

	ids := make([]uuid.UUID, len(partners))
	for i, p := range partners {
		ids[i] = p.ID
	}
	addresses, err := s.addressRepo.FindByPartners(ctx, ids)
	if err != nil {
		return nil, err
	}
	contacts, err := s.contactRepo.FindByPartners(ctx, ids)
	if err != nil {
		return nil, err
	}
	tags, err := s.tagRepo.FindByPartners(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]PartnerSearchResult, len(partners))
	for i, p := range partners {
		results[i] = toSearchResult(p, addresses[p.ID], contacts[p.ID], tags[p.ID])
	}
	return results, nil
}

func toSearchResult(p *partner.Partner, addresses []*partner.AddressDetail, contacts []*partner.ContactDetail, tags []*partner.PartnerTag) PartnerSearchResult {
	r := PartnerSearchResult{
		ID:            p.ID,
		PartnerNumber: p.Number(),
		PartnerType:   string(p.Kind),
		Active:        p.Active,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		AddressLine:   partner.PreferredAddressLine(addresses),
		Email:         partner.PreferredContactValue(contacts, partner.ContactTypeEmail),
		Phone:         partner.PreferredContactValue(contacts, partner.ContactTypePhone),
		Website:       partner.PreferredContactValue(contacts, partner.ContactTypeWebsite),
		Tags:          make([]TagResponse, 0, len(tags)),
	}
	if np := p.Person; np != nil {
		r.FirstName = np.FirstName
		r.LastName = np.LastName
		r.DateOfBirth = formatDate(np.DateOfBirth)
	}
	if le := p.Entity; le != nil {
		r.LegalName = le.LegalName
		r.Jurisdiction = le.Jurisdiction
		r.RegistrationNumber = le.RegistrationNumber
		r.IncorporationDate = formatDate(le.IncorporationDate)
	}
	for _, pt := range tags {
		if pt.Tag != nil {
			r.Tags = append(r.Tags, ToTagResponse(pt.Tag))
		}
	}
	return r
}

// GetByID returns a partner by ID
func (s *PartnerService) GetByID(ctx context.Context, id uuid.UUID) (*PartnerResponse, error) {
	p, err := s.partnerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPartnerResponse(p)
	return &resp, nil
}

// Create creates a partner of the kind detected from the request and assigns
// the next partner number
func (s *PartnerService) Create(ctx context.Context, req PartnerRequest) (_ *PartnerResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "partner", "create")
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	kind, err := partner.DetectKind(req.FirstName, req.LastName, req.LegalName)
	if err != nil {
		return nil, err
	}

	var p *partner.Partner
	switch kind {
	case partner.KindNaturalPerson:
		person, err := naturalPersonFrom(req)
		if err != nil {
			return nil, err
		}
		p, err = partner.NewNaturalPerson(person, req.Notes)
		if err != nil {
			return nil, err
		}
	default:
		entity, err := legalEntityFrom(req)
		if err != nil {
			return nil, err
		}
		p, err = partner.NewLegalEntity(entity, req.Notes)
		if err != nil {
			return nil, err
		}
	}

	if err := s.applyPartnerType(ctx, p, req.PartnerTypeID); err != nil {
		return nil, err
	}

	if err := s.partnerRepo.Create(ctx, p); err != nil {
		logger.For(ctx, s.logger).Error("Failed to create partner", zap.Error(err))
		return nil, err
	}
	logger.For(ctx, s.logger).Info("Partner created",
		zap.String("partner_id", p.ID.String()),
		zap.String("partner_number", p.Number()),
		zap.String("kind", string(p.Kind)))
	span.SetAttributes(
		attribute.String(telemetry.SpanAttrPartnerID, p.ID.String()),
		attribute.String(telemetry.SpanAttrPartnerNumber, p.Number()),
		attribute.String(telemetry.SpanAttrPartnerKind, string(p.Kind)),
	)
	s.metrics.RecordCreated(ctx, string(p.Kind))

	resp := ToPartnerResponse(p)
	return &resp, nil
}

// Update replaces the partner's profile. The kind may change; number and
// creation time are kept.
func (s *PartnerService) Update(ctx context.Context, id uuid.UUID, req PartnerRequest) (*PartnerResponse, error) {
	p, err := s.partnerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	kind, err := partner.DetectKind(req.FirstName, req.LastName, req.LegalName)
	if err != nil {
		return nil, err
	}
	switch kind {
	case partner.KindNaturalPerson:
		person, err := naturalPersonFrom(req)
		if err != nil {
			return nil, err
		}
		if err := p.BecomeNaturalPerson(person); err != nil {
			return nil, err
		}
	default:
		entity, err := legalEntityFrom(req)
		if err != nil {
			return nil, err
		}
		if err := p.BecomeLegalEntity(entity); err != nil {
			return nil, err
		}
	}

	p.SetNotes(req.Notes)
	if req.Active != nil {
		p.SetActive(*req.Active)
	}
	if err := s.applyPartnerType(ctx, p, req.PartnerTypeID); err != nil {
		return nil, err
	}

	if err := s.partnerRepo.Save(ctx, p); err != nil {
		logger.For(ctx, s.logger).Error("Failed to update partner", zap.String("partner_id", id.String()), zap.Error(err))
		return nil, err
	}

	resp := ToPartnerResponse(p)
	return &resp, nil
}

// Delete removes a partner and everything it owns
func (s *PartnerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.partnerRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.For(ctx, s.logger).Info("Partner deleted", zap.String("partner_id", id.String()))
	s.metrics.RecordDeleted(ctx)
	return nil
}

// requirePartner returns NOT_FOUND unless the partner exists
func requirePartner(ctx context.Context, repo partner.PartnerRepository, id uuid.UUID) error {
	exists, err := repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NotFoundf("Partner not found with id: %s", id)
	}
	return nil
}

func (s *PartnerService) applyPartnerType(ctx context.Context, p *partner.Partner, typeID *uuid.UUID) error {
	if typeID == nil || *typeID == uuid.Nil {
		p.AssignType(nil)
		return nil
	}
	pt, err := s.partnerTypeRepo.FindByID(ctx, *typeID)
	if err != nil {
		if isNotFound(err) {
			return shared.NotFoundf("Partner type not found with id: %s", *typeID)
		}
		return err
	}
	p.AssignType(pt)
	return nil
}

func naturalPersonFrom(req PartnerRequest) (partner.NaturalPerson, error) {
	dob, err := parseDate("dateOfBirth", req.DateOfBirth)
	if err != nil {
		return partner.NaturalPerson{}, err
	}
	return partner.NaturalPerson{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		MiddleName:        req.MiddleName,
		Title:             req.Title,
		DateOfBirth:       dob,
		TaxID:             req.TaxID,
		PreferredLanguage: req.PreferredLanguage,
	}, nil
}

func legalEntityFrom(req PartnerRequest) (partner.LegalEntity, error) {
	incorporated, err := parseDate("incorporationDate", req.IncorporationDate)
	if err != nil {
		return partner.LegalEntity{}, err
	}
	return partner.LegalEntity{
		LegalName:          req.LegalName,
		TradingName:        req.TradingName,
		RegistrationNumber: req.RegistrationNumber,
		TaxID:              req.TaxID,
		LegalForm:          req.LegalForm,
		IncorporationDate:  incorporated,
		Jurisdiction:       req.Jurisdiction,
	}, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
