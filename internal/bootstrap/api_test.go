package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	partnerapp "github.com/abstratium/partner/internal/application/partner"
	"github.com/abstratium/partner/internal/infrastructure/cache"
	"github.com/abstratium/partner/internal/infrastructure/config"
	"github.com/abstratium/partner/internal/infrastructure/persistence"
	"github.com/abstratium/partner/internal/infrastructure/storage"
	"github.com/abstratium/partner/internal/interfaces/http/dto"
	"github.com/abstratium/partner/internal/interfaces/http/handler"
	"github.com/abstratium/partner/internal/interfaces/http/middleware"
	"github.com/abstratium/partner/internal/interfaces/http/router"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

type testAPI struct {
	t          *testing.T
	engine     *gin.Engine
	exportPath string
}

// newTestAPI serves the full API over a fresh in-memory sqlite database
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		DBName:      ":memory:",
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := cache.NewInMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	exportPath := filepath.Join(t.TempDir(), "partners.txt")
	services := NewServices(db.DB,
		cache.NewReadThrough(store, time.Minute, nil),
		storage.NewFileSink(exportPath, nil),
		nil,
	)

	engine, err := router.NewEngine(router.Options{
		Config:   &config.Config{},
		System:   handler.NewSystemHandler(db, handler.PublicConfig{DefaultCountry: "CH"}),
		Handlers: services.Handlers(),
	})
	require.NoError(t, err)

	return &testAPI{t: t, engine: engine, exportPath: exportPath}
}

func (a *testAPI) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// data decodes the envelope of a successful response into T
func data[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.True(t, envelope.Success, w.Body.String())
	return envelope.Data
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.NotNil(t, resp.Error, w.Body.String())
	return resp.Error.Code
}

func (a *testAPI) createPerson(first, last string) partnerapp.PartnerResponse {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/partner", map[string]any{"firstName": first, "lastName": last})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return data[partnerapp.PartnerResponse](a.t, w)
}

func (a *testAPI) createCompany(legalName string) partnerapp.PartnerResponse {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/partner", map[string]any{"legalName": legalName})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return data[partnerapp.PartnerResponse](a.t, w)
}

func TestAPI_System(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = api.do(http.MethodGet, "/public/config", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CH", data[handler.PublicConfig](t, w).DefaultCountry)

	w = api.do(http.MethodGet, "/swagger/index.html", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_PartnerLifecycle(t *testing.T) {
	api := newTestAPI(t)
	first, last := gofakeit.FirstName(), gofakeit.LastName()

	person := api.createPerson(first, last)
	assert.Equal(t, "P00000001", person.PartnerNumber)
	assert.Equal(t, "NATURAL_PERSON", person.Kind)
	assert.Equal(t, first+" "+last, person.DisplayName)
	assert.True(t, person.Active)

	company := api.createCompany("Acme AG")
	assert.Equal(t, "P00000002", company.PartnerNumber)
	assert.Equal(t, "LEGAL_ENTITY", company.Kind)

	t.Run("get by id", func(t *testing.T) {
		w := api.do(http.MethodGet, "/api/partner/"+person.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, person.PartnerNumber, data[partnerapp.PartnerResponse](t, w).PartnerNumber)
	})

	t.Run("search by name", func(t *testing.T) {
		w := api.do(http.MethodGet, "/api/partner?search=acme", nil)
		require.Equal(t, http.StatusOK, w.Code)
		results := data[[]partnerapp.PartnerSearchResult](t, w)
		require.Len(t, results, 1)
		assert.Equal(t, company.ID, results[0].ID)
		assert.Equal(t, "LEGAL_ENTITY", results[0].PartnerType)
		assert.NotNil(t, results[0].Tags)
	})

	t.Run("list without search returns everyone", func(t *testing.T) {
		w := api.do(http.MethodGet, "/api/partner", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, data[[]partnerapp.PartnerSearchResult](t, w), 2)
	})

	t.Run("update keeps the number", func(t *testing.T) {
		active := false
		w := api.do(http.MethodPut, "/api/partner/"+company.ID.String(), partnerapp.PartnerRequest{
			LegalName:   "Acme AG",
			TradingName: "Acme",
			Active:      &active,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		updated := data[partnerapp.PartnerResponse](t, w)
		assert.Equal(t, company.PartnerNumber, updated.PartnerNumber)
		assert.Equal(t, "Acme", updated.DisplayName)
		assert.False(t, updated.Active)
	})

	t.Run("export writes one line per partner", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/partner/export", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		export := data[partnerapp.ExportResponse](t, w)
		assert.Equal(t, 2, export.Count)
		assert.Equal(t, api.exportPath, export.Location)

		content, err := os.ReadFile(api.exportPath)
		require.NoError(t, err)
		assert.Equal(t, "P00000001 "+first+" "+last+"\nP00000002 Acme\n", string(content))
	})

	t.Run("delete then 404", func(t *testing.T) {
		w := api.do(http.MethodDelete, "/api/partner/"+person.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = api.do(http.MethodGet, "/api/partner/"+person.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, errorCode(t, w))

		w = api.do(http.MethodDelete, "/api/partner/"+person.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAPI_PartnerErrors(t *testing.T) {
	api := newTestAPI(t)

	t.Run("kind cannot be detected", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/partner", map[string]any{"notes": "nobody"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidInput, errorCode(t, w))
	})

	t.Run("bad date is a validation error", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/partner", map[string]any{"firstName": "Ann", "dateOfBirth": "31.12.1990"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))
	})

	t.Run("invalid id", func(t *testing.T) {
		w := api.do(http.MethodGet, "/api/partner/42", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown partner", func(t *testing.T) {
		w := api.do(http.MethodGet, "/api/partner/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAPI_AddressesAndContacts(t *testing.T) {
	api := newTestAPI(t)
	p := api.createPerson("Ann", "Muster")
	base := "/api/partner/" + p.ID.String()

	w := api.do(http.MethodPost, "/api/address", partnerapp.AddressRequest{
		StreetLine1: "Bahnhofstrasse 1",
		City:        "Zurich",
		PostalCode:  "8001",
		CountryCode: "CH",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	address := data[partnerapp.AddressResponse](t, w)

	t.Run("unknown country is rejected", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/address", partnerapp.AddressRequest{City: "Nowhere", CountryCode: "XX"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("countries", func(t *testing.T) {
		w := api.do(http.MethodGet, "/api/address/countries", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, data[[]partnerapp.CountryResponse](t, w))
	})

	t.Run("link address to partner", func(t *testing.T) {
		w := api.do(http.MethodPost, base+"/address", partnerapp.AddressDetailRequest{AddressType: "BILLING", Primary: true})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = api.do(http.MethodPost, base+"/address?addressId="+address.ID.String(),
			partnerapp.AddressDetailRequest{AddressType: "BILLING", Primary: true})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = api.do(http.MethodGet, base+"/address", nil)
		require.Equal(t, http.StatusOK, w.Code)
		details := data[[]partnerapp.AddressDetailResponse](t, w)
		require.Len(t, details, 1)
		assert.True(t, details[0].Primary)
	})

	t.Run("linked address cannot be deleted", func(t *testing.T) {
		w := api.do(http.MethodDelete, "/api/address/"+address.ID.String(), nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("a new primary contact demotes the old one", func(t *testing.T) {
		w := api.do(http.MethodPost, base+"/contact", partnerapp.ContactDetailRequest{
			ContactType: "EMAIL", Value: "ann@example.com", Primary: true,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		w = api.do(http.MethodPost, base+"/contact", partnerapp.ContactDetailRequest{
			ContactType: "email", Value: "ann@work.example.com", Primary: true,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = api.do(http.MethodGet, base+"/contact/type/EMAIL/primary", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ann@work.example.com", data[partnerapp.ContactDetailResponse](t, w).Value)

		w = api.do(http.MethodGet, base+"/contact/type/EMAIL", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, data[[]partnerapp.ContactDetailResponse](t, w), 2)
	})

	t.Run("unknown contact type", func(t *testing.T) {
		w := api.do(http.MethodPost, base+"/contact", partnerapp.ContactDetailRequest{ContactType: "PIGEON", Value: "coo"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("search shows preferred contact and address", func(t *testing.T) {
		w := api.do(http.MethodGet, "/api/partner?search=muster", nil)
		require.Equal(t, http.StatusOK, w.Code)
		results := data[[]partnerapp.PartnerSearchResult](t, w)
		require.Len(t, results, 1)
		assert.Equal(t, "ann@work.example.com", results[0].Email)
		assert.Contains(t, results[0].AddressLine, "Zurich")
	})

	t.Run("global contact search", func(t *testing.T) {
		w := api.do(http.MethodGet, "/api/contact?search=work.example", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, data[[]partnerapp.ContactDetailResponse](t, w), 1)
	})
}

func TestAPI_Tags(t *testing.T) {
	api := newTestAPI(t)
	p := api.createCompany("Tagged GmbH")

	w := api.do(http.MethodPost, "/api/tag", partnerapp.TagRequest{Name: "VIP", ColorHex: "#FFD700"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tag := data[partnerapp.TagResponse](t, w)

	w = api.do(http.MethodPost, "/api/tag", partnerapp.TagRequest{Name: "VIP"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrCodeAlreadyExists, errorCode(t, w))

	w = api.do(http.MethodGet, "/api/tag/name/VIP", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tag.ID, data[partnerapp.TagResponse](t, w).ID)

	tagPath := "/api/partner/" + p.ID.String() + "/tag/" + tag.ID.String()
	w = api.do(http.MethodPost, tagPath, partnerapp.AssignTagRequest{TaggedBy: "alice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodGet, "/api/partner/"+p.ID.String()+"/tag", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assigned := data[[]partnerapp.PartnerTagResponse](t, w)
	require.Len(t, assigned, 1)
	assert.Equal(t, "alice", assigned[0].TaggedBy)

	w = api.do(http.MethodDelete, "/api/tag/"+tag.ID.String(), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(http.MethodDelete, tagPath, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodDelete, "/api/tag/"+tag.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodGet, "/api/tag", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, data[[]partnerapp.TagResponse](t, w))
}

func TestAPI_Relationships(t *testing.T) {
	api := newTestAPI(t)
	a := api.createCompany("Parent AG")
	b := api.createCompany("Child GmbH")

	w := api.do(http.MethodPost, "/api/relationship-type", partnerapp.RelationshipTypeRequest{Name: "Subsidiary"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rt := data[partnerapp.RelationshipTypeResponse](t, w)
	assert.True(t, rt.Active)

	w = api.do(http.MethodGet, "/api/relationship-type?activeOnly=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	base := "/api/partner/" + a.ID.String() + "/relationship"
	req := partnerapp.RelationshipRequest{RelationshipTypeID: rt.ID}

	w = api.do(http.MethodPost, base+"?relatedPartnerId="+a.ID.String(), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, base+"?relatedPartnerId="+b.ID.String(), req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rel := data[partnerapp.RelationshipResponse](t, w)

	w = api.do(http.MethodGet, "/api/partner/"+b.ID.String()+"/relationship", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, data[[]partnerapp.RelationshipResponse](t, w), 1)

	w = api.do(http.MethodDelete, "/api/relationship-type/"+rt.ID.String(), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(http.MethodDelete, base+"/"+rel.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAPI_SMERelationships(t *testing.T) {
	api := newTestAPI(t)
	p := api.createCompany("Supplier SA")
	base := "/api/partner/" + p.ID.String() + "/sme-relationship"

	w := api.do(http.MethodPost, base, map[string]any{
		"relationshipType": "SUPPLIER",
		"status":           "ACTIVE",
		"creditLimit":      "2500.50",
		"priorityLevel":    2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sme := data[partnerapp.SMERelationshipResponse](t, w)
	assert.Equal(t, "2500.5", sme.CreditLimit.String())

	w = api.do(http.MethodGet, base+"/"+sme.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	other := api.createCompany("Other SA")
	w = api.do(http.MethodGet, "/api/partner/"+other.ID.String()+"/sme-relationship/"+sme.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodDelete, base+"/"+sme.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAPI_PartnerTypes(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/partner-type", partnerapp.PartnerTypeRequest{Code: "CUSTOMER", Description: "Buys from us"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	pt := data[partnerapp.PartnerTypeResponse](t, w)

	w = api.do(http.MethodGet, "/api/partner-type", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, data[[]partnerapp.PartnerTypeResponse](t, w), 1)

	w = api.do(http.MethodPost, "/api/partner", partnerapp.PartnerRequest{LegalName: "Typed AG", PartnerTypeID: &pt.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := data[partnerapp.PartnerResponse](t, w)
	require.NotNil(t, created.PartnerType)
	assert.Equal(t, "CUSTOMER", created.PartnerType.Code)
}
