package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/jordanlanch/industrycatalog/pkg/api/errors"
	"github.com/jordanlanch/industrycatalog/pkg/industries"
	"github.com/labstack/echo/v4"
)

// CatalogHandler serves sectors, countries and regions
type CatalogHandler struct {
	catalog *industries.CatalogService
	regions industries.Regions
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *industries.CatalogService, regions industries.Regions) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		regions: regions,
	}
}

// ListSectors godoc
// @Summary List sectors
// @Description Returns the sector names, sorted ascending
// @Tags Catalog
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /sectors [get]
func (h *CatalogHandler) ListSectors(c echo.Context) error {
	sectors, err := h.catalog.Sectors(c.Request().Context())
	if err != nil {
		return apierrors.DatabaseError(c, err)
	}

	names := make([]string, 0, len(sectors))
	for _, s := range sectors {
		names = append(names, s.Name)
	}
	return c.JSON(http.StatusOK, names)
}

// GetSector godoc
// @Summary Get sector
// @Tags Catalog
// @Produce json
// @Param name path string true "Sector name"
// @Success 200 {object} models.Sector
// @Failure 404 {object} models.ErrorResponse "Sector not found"
// @Router /sectors/{name} [get]
func (h *CatalogHandler) GetSector(c echo.Context) error {
	sector, err := h.catalog.SectorByName(c.Request().Context(), c.Param("name"))
	if errors.Is(err, industries.ErrNotFound) {
		return apierrors.NotFoundError(c)
	}
	if err != nil {
		return apierrors.DatabaseError(c, err)
	}
	return c.JSON(http.StatusOK, sector)
}

// ListCountries godoc
// @Summary List countries
// @Description Returns the country names, sorted ascending
// @Tags Catalog
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /countries [get]
func (h *CatalogHandler) ListCountries(c echo.Context) error {
	countries, err := h.catalog.Countries(c.Request().Context())
	if err != nil {
		return apierrors.DatabaseError(c, err)
	}

	names := make([]string, 0, len(countries))
	for _, country := range countries {
		names = append(names, country.Name)
	}
	return c.JSON(http.StatusOK, names)
}

// GetCountry godoc
// @Summary Get country
// @Tags Catalog
// @Produce json
// @Param name path string true "Country name"
// @Success 200 {object} models.Country
// @Failure 404 {object} models.ErrorResponse "Country not found"
// @Router /countries/{name} [get]
func (h *CatalogHandler) GetCountry(c echo.Context) error {
	country, err := h.catalog.CountryByName(c.Request().Context(), c.Param("name"))
	if errors.Is(err, industries.ErrNotFound) {
		return apierrors.NotFoundError(c)
	}
	if err != nil {
		return apierrors.DatabaseError(c, err)
	}
	return c.JSON(http.StatusOK, country)
}

// ListRegions godoc
// @Summary List regions
// @Description Returns the countries each search region covers
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /regions [get]
func (h *CatalogHandler) ListRegions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.regions)
}
