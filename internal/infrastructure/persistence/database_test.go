package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/abstratium/partner/internal/infrastructure/config"
	"github.com/abstratium/partner/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewDatabase_SQLite(t *testing.T) {
	db := newTestDatabase(t)

	t.Run("migrates every table", func(t *testing.T) {
		for _, m := range models.All() {
			assert.True(t, db.DB.Migrator().HasTable(m), "missing table for %T", m)
		}
	})

	t.Run("seeds the partner sequence", func(t *testing.T) {
		var seq models.PartnerSequenceModel
		require.NoError(t, db.DB.First(&seq, "name = ?", models.PartnerSequenceName).Error)
		assert.Equal(t, int64(0), seq.LastValue)
	})

	t.Run("auto migrate is idempotent", func(t *testing.T) {
		require.NoError(t, db.AutoMigrate())
		var count int64
		require.NoError(t, db.DB.Model(&models.PartnerSequenceModel{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("ping succeeds", func(t *testing.T) {
		assert.NoError(t, db.Ping(context.Background()))
	})

	t.Run("stats reflect single connection pool", func(t *testing.T) {
		stats, err := db.Stats()
		require.NoError(t, err)
		assert.Equal(t, 1, stats.MaxOpenConnections)
	})
}

func TestNewDatabase_InvalidPlugin(t *testing.T) {
	_, err := NewDatabase(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DBName: ":memory:",
	}, WithPlugins(failingPlugin{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing")
}

type failingPlugin struct{}

func (failingPlugin) Name() string { return "failing" }

func (failingPlugin) Initialize(*gorm.DB) error { return errors.New("boom") }

func TestDatabase_Transaction(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		err := db.Transaction(ctx, func(tx *gorm.DB) error {
			return tx.Create(&models.PartnerSequenceModel{Name: "commit", LastValue: 7}).Error
		})
		require.NoError(t, err)

		var seq models.PartnerSequenceModel
		require.NoError(t, db.DB.First(&seq, "name = ?", "commit").Error)
		assert.Equal(t, int64(7), seq.LastValue)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		sentinel := errors.New("abort")
		err := db.Transaction(ctx, func(tx *gorm.DB) error {
			if err := tx.Create(&models.PartnerSequenceModel{Name: "rollback"}).Error; err != nil {
				return err
			}
			return sentinel
		})
		assert.ErrorIs(t, err, sentinel)

		var count int64
		require.NoError(t, db.DB.Model(&models.PartnerSequenceModel{}).Where("name = ?", "rollback").Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestDatabase_Mock(t *testing.T) {
	t.Run("ping reaches the driver", func(t *testing.T) {
		gormDB, _, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		db := &Database{DB: gormDB}
		assert.NoError(t, db.Ping(context.Background()))
	})

	t.Run("close closes the pool", func(t *testing.T) {
		gormDB, mock, _ := newMockGormDB(t)
		mock.ExpectClose()

		db := &Database{DB: gormDB}
		require.NoError(t, db.Close())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("transaction commits through the driver", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "partner_sequences" SET "last_value"=\$1 WHERE name = \$2`).
			WithArgs(0, "partner").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		db := &Database{DB: gormDB}
		err := db.Transaction(context.Background(), func(tx *gorm.DB) error {
			return tx.Model(&models.PartnerSequenceModel{}).
				Where("name = ?", "partner").
				Update("last_value", 0).Error
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
