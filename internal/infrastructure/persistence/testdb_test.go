package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/infrastructure/config"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newTestDatabase opens a migrated in-memory sqlite database
func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		DBName:      ":memory:",
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newMockGormDB returns a GORM handle on the postgres dialector backed by sqlmock
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return gormDB, mock, mockDB
}

// createPerson inserts a natural-person partner with fake names
func createPerson(t *testing.T, repo *GormPartnerRepository) *partner.Partner {
	t.Helper()
	p, err := partner.NewNaturalPerson(partner.NaturalPerson{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

// createCompany inserts a legal-entity partner with the given name
func createCompany(t *testing.T, repo *GormPartnerRepository, legalName string) *partner.Partner {
	t.Helper()
	p, err := partner.NewLegalEntity(partner.LegalEntity{LegalName: legalName}, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}
