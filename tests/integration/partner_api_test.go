package integration

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	partnerapp "github.com/abstratium/partner/internal/application/partner"
	"github.com/abstratium/partner/internal/bootstrap"
	"github.com/abstratium/partner/internal/infrastructure/cache"
	"github.com/abstratium/partner/internal/infrastructure/config"
	"github.com/abstratium/partner/internal/infrastructure/storage"
	"github.com/abstratium/partner/internal/interfaces/http/handler"
	"github.com/abstratium/partner/internal/interfaces/http/middleware"
	"github.com/abstratium/partner/internal/interfaces/http/router"
	"github.com/abstratium/partner/tests/testutil"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
	code := m.Run()
	CleanupSharedContainer()
	os.Exit(code)
}

// PartnerTestServer wires the full HTTP stack onto a PostgreSQL database
type PartnerTestServer struct {
	DB         *TestDB
	Services   *bootstrap.Services
	Client     *testutil.Client
	ExportPath string
}

func NewPartnerTestServer(t *testing.T) *PartnerTestServer {
	t.Helper()

	testDB := NewSharedTestDB(t)
	testDB.CleanTables()

	log := zaptest.NewLogger(t)
	store := cache.NewInMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	exportPath := filepath.Join(t.TempDir(), "partners.txt")
	services := bootstrap.NewServices(testDB.DB,
		cache.NewReadThrough(store, time.Minute, log),
		storage.NewFileSink(exportPath, log),
		log,
	)

	engine, err := router.NewEngine(router.Options{
		Config:   &config.Config{},
		Logger:   log,
		System:   handler.NewSystemHandler(testDB.Database, handler.PublicConfig{DefaultCountry: "CH"}),
		Handlers: services.Handlers(),
	})
	require.NoError(t, err)

	return &PartnerTestServer{
		DB:         testDB,
		Services:   services,
		Client:     testutil.NewClient(t, engine),
		ExportPath: exportPath,
	}
}

func TestPartnerAPI_Health(t *testing.T) {
	ts := NewPartnerTestServer(t)

	w := ts.Client.MustDo(http.MethodGet, "/health", nil, http.StatusOK)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestPartnerAPI_Lifecycle(t *testing.T) {
	ts := NewPartnerTestServer(t)
	f := gofakeit.New(7)

	personBody := testutil.PersonRequest(f)
	person := testutil.Data[partnerapp.PartnerResponse](t,
		ts.Client.MustDo(http.MethodPost, "/api/partner", personBody, http.StatusCreated))
	company := testutil.Data[partnerapp.PartnerResponse](t,
		ts.Client.MustDo(http.MethodPost, "/api/partner", testutil.CompanyRequest(f), http.StatusCreated))

	assert.Equal(t, "P00000001", person.PartnerNumber)
	assert.Equal(t, "P00000002", company.PartnerNumber)
	assert.Equal(t, "NATURAL_PERSON", person.Kind)
	assert.Equal(t, "LEGAL_ENTITY", company.Kind)

	base := "/api/partner/" + person.ID.String()

	t.Run("children are stored against postgres", func(t *testing.T) {
		address := testutil.Data[partnerapp.AddressResponse](t,
			ts.Client.MustDo(http.MethodPost, "/api/address", partnerapp.AddressRequest{
				StreetLine1: f.Street(),
				City:        "Basel",
				PostalCode:  "4051",
				CountryCode: "CH",
			}, http.StatusCreated))
		ts.Client.MustDo(http.MethodPost, base+"/address?addressId="+address.ID.String(),
			partnerapp.AddressDetailRequest{AddressType: "SHIPPING", Primary: true}, http.StatusCreated)

		ts.Client.MustDo(http.MethodPost, base+"/contact", partnerapp.ContactDetailRequest{
			ContactType: "EMAIL", Value: f.Email(), Primary: true,
		}, http.StatusCreated)

		tag := testutil.Data[partnerapp.TagResponse](t,
			ts.Client.MustDo(http.MethodPost, "/api/tag", partnerapp.TagRequest{Name: "Prospect"}, http.StatusCreated))
		ts.Client.MustDo(http.MethodPost, base+"/tag/"+tag.ID.String(), partnerapp.AssignTagRequest{}, http.StatusCreated)
	})

	t.Run("search returns the enriched row", func(t *testing.T) {
		term := strings.ToLower(personBody["lastName"].(string))
		results := testutil.Data[[]partnerapp.PartnerSearchResult](t,
			ts.Client.MustDo(http.MethodGet, "/api/partner?search="+term, nil, http.StatusOK))
		var found *partnerapp.PartnerSearchResult
		for i := range results {
			if results[i].ID == person.ID {
				found = &results[i]
			}
		}
		require.NotNil(t, found, "person missing from search results")
		assert.NotEmpty(t, found.Email)
		assert.Contains(t, found.AddressLine, "Basel")
		require.Len(t, found.Tags, 1)
		assert.Equal(t, "Prospect", found.Tags[0].Name)
	})

	t.Run("export writes one line per partner", func(t *testing.T) {
		export := testutil.Data[partnerapp.ExportResponse](t,
			ts.Client.MustDo(http.MethodPost, "/api/partner/export", nil, http.StatusOK))
		assert.Equal(t, 2, export.Count)

		content, err := os.ReadFile(ts.ExportPath)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "P00000001 "))
		assert.True(t, strings.HasPrefix(lines[1], "P00000002 "))
	})

	t.Run("delete cascades to the children", func(t *testing.T) {
		ts.Client.MustDo(http.MethodDelete, base, nil, http.StatusNoContent)
		ts.Client.MustDo(http.MethodGet, base, nil, http.StatusNotFound)

		for _, table := range []string{"address_details", "contact_details", "partner_tags"} {
			var count int64
			require.NoError(t, ts.DB.DB.Table(table).Where("partner_id = ?", person.ID).Count(&count).Error)
			assert.Zero(t, count, table)
		}

		w := ts.Client.Do(http.MethodGet, "/api/partner/"+company.ID.String(), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("numbers are never reused", func(t *testing.T) {
		next := testutil.Data[partnerapp.PartnerResponse](t,
			ts.Client.MustDo(http.MethodPost, "/api/partner", testutil.PersonRequest(f), http.StatusCreated))
		assert.Equal(t, "P00000003", next.PartnerNumber)
	})
}

func TestPartnerAPI_Constraints(t *testing.T) {
	ts := NewPartnerTestServer(t)
	f := gofakeit.New(11)

	t.Run("duplicate tag names conflict", func(t *testing.T) {
		ts.Client.MustDo(http.MethodPost, "/api/tag", partnerapp.TagRequest{Name: "Key Account"}, http.StatusCreated)
		w := ts.Client.MustDo(http.MethodPost, "/api/tag", partnerapp.TagRequest{Name: "Key Account"}, http.StatusConflict)
		assert.Equal(t, "ALREADY_EXISTS", testutil.ErrorCode(t, w))
	})

	t.Run("duplicate partner types conflict", func(t *testing.T) {
		ts.Client.MustDo(http.MethodPost, "/api/partner-type", map[string]any{"typeCode": "CUSTOMER"}, http.StatusCreated)
		w := ts.Client.Do(http.MethodPost, "/api/partner-type", map[string]any{"typeCode": "CUSTOMER"})
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	t.Run("tag linked to a partner cannot be deleted", func(t *testing.T) {
		p := testutil.Data[partnerapp.PartnerResponse](t,
			ts.Client.MustDo(http.MethodPost, "/api/partner", testutil.PersonRequest(f), http.StatusCreated))
		tag := testutil.Data[partnerapp.TagResponse](t,
			ts.Client.MustDo(http.MethodPost, "/api/tag", partnerapp.TagRequest{Name: "Supplier"}, http.StatusCreated))
		ts.Client.MustDo(http.MethodPost, "/api/partner/"+p.ID.String()+"/tag/"+tag.ID.String(), partnerapp.AssignTagRequest{}, http.StatusCreated)

		w := ts.Client.MustDo(http.MethodDelete, "/api/tag/"+tag.ID.String(), nil, http.StatusUnprocessableEntity)
		assert.Equal(t, "INVALID_STATE", testutil.ErrorCode(t, w))
	})
}
