package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jordanlanch/industrycatalog/pkg/database"
	"github.com/jordanlanch/industrycatalog/pkg/industries"
	"github.com/jordanlanch/industrycatalog/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func setupFallbackCatalog() *CatalogHandler {
	return NewCatalogHandler(industries.NewCatalogService(database.Unavailable()), industries.DefaultRegions())
}

func TestListSectors_Fallback(t *testing.T) {
	h := setupFallbackCatalog()

	c, rec := newContext(http.MethodGet, "/api/sectors", "")
	require.NoError(t, h.ListSectors(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var names []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	assert.Equal(t, []string{"Agronegócio", "Manufatura", "Mineração", "Químico", "Tecnologia", "Têxtil"}, names)
}

func TestListCountries_Fallback(t *testing.T) {
	h := setupFallbackCatalog()

	c, rec := newContext(http.MethodGet, "/api/countries", "")
	require.NoError(t, h.ListCountries(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var names []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	assert.Equal(t, []string{"Alemanha", "Brasil", "Estados Unidos", "Portugal"}, names)
}

func TestGetCatalogEntry_Fallback(t *testing.T) {
	h := setupFallbackCatalog()

	t.Run("sector", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/api/sectors/Tecnologia", "", "name", "Tecnologia")
		require.NoError(t, h.GetSector(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var sector models.Sector
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sector))
		assert.Equal(t, "Tecnologia", sector.Name)
	})

	t.Run("country carries region", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/api/countries/Portugal", "", "name", "Portugal")
		require.NoError(t, h.GetCountry(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var country models.Country
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &country))
		assert.Equal(t, "Europa", country.Region)
	})

	t.Run("unknown sector", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/api/sectors/Pesca", "", "name", "Pesca")
		require.NoError(t, h.GetSector(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown country", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/api/countries/Chile", "", "name", "Chile")
		require.NoError(t, h.GetCountry(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListRegions(t *testing.T) {
	h := setupFallbackCatalog()

	c, rec := newContext(http.MethodGet, "/api/regions", "")
	require.NoError(t, h.ListRegions(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var regions map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &regions))
	assert.Contains(t, regions["Europa"], "Portugal")
	assert.Contains(t, regions["América do Norte"], "Estados Unidos")
	assert.Len(t, regions, len(industries.DefaultRegions()))
}

func TestCatalogHandler_Store(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sectors verbatim", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.sectors", mtest.FirstBatch,
			bson.D{{Key: "name", Value: "Pesca"}},
			bson.D{{Key: "name", Value: "Energia"}},
		))

		h := NewCatalogHandler(industries.NewCatalogService(database.NewGateway(mt.DB)), industries.DefaultRegions())
		c, rec := newContext(http.MethodGet, "/api/sectors", "")
		require.NoError(mt, h.ListSectors(c))
		require.Equal(mt, http.StatusOK, rec.Code)
		assert.JSONEq(mt, `["Pesca","Energia"]`, rec.Body.String())
	})

	mt.Run("empty countries", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.countries", mtest.FirstBatch))

		h := NewCatalogHandler(industries.NewCatalogService(database.NewGateway(mt.DB)), industries.DefaultRegions())
		c, rec := newContext(http.MethodGet, "/api/countries", "")
		require.NoError(mt, h.ListCountries(c))
		require.Equal(mt, http.StatusOK, rec.Code)
		assert.JSONEq(mt, `[]`, rec.Body.String())
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized", Name: "Unauthorized"}))

		h := NewCatalogHandler(industries.NewCatalogService(database.NewGateway(mt.DB)), industries.DefaultRegions())
		c, rec := newContext(http.MethodGet, "/api/sectors", "")
		require.NoError(mt, h.ListSectors(c))
		assert.Equal(mt, http.StatusInternalServerError, rec.Code)
		assert.Equal(mt, "database_error", decodeError(mt, rec).Error)
	})
}
