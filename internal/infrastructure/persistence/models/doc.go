// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities are free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. ToDomain / FromDomain convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: BaseModel and the model registry
// - partner.go: partners (single table, partner_kind discriminator), partner types, sequence
// - address.go: addresses and partner address details
// - contact.go: contact details
// - tag.go: tags and partner tag assignments
// - relationship.go: relationship types, partner relationships, SME relationships
package models
