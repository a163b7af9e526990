package handlers

import (
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/jordanlanch/industrycatalog/pkg/api/errors"
	"github.com/jordanlanch/industrycatalog/pkg/export"
	"github.com/jordanlanch/industrycatalog/pkg/industries"
	"github.com/jordanlanch/industrycatalog/pkg/models"
	"github.com/labstack/echo/v4"
)

// IndustryHandler handles industry-related requests
type IndustryHandler struct {
	industryService *industries.Service
}

// NewIndustryHandler creates a new industry handler
func NewIndustryHandler(industryService *industries.Service) *IndustryHandler {
	return &IndustryHandler{
		industryService: industryService,
	}
}

// ListIndustries godoc
// @Summary List industries
// @Description Returns industries matching every supplied filter. Exact match on each filter.
// @Tags Industries
// @Produce json
// @Param sector query string false "Sector name"
// @Param country query string false "Country name"
// @Param status query string false "Status (e.g., available, seeking)"
// @Param limit query int false "Maximum results (default 100, max 1000)"
// @Param skip query int false "Results to skip"
// @Success 200 {object} models.IndustryListResponse
// @Failure 400 {object} models.ErrorResponse "Invalid limit or skip"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /industries [get]
func (h *IndustryHandler) ListIndustries(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return invalidParam(c, err)
	}

	filters := models.IndustryFilters{
		Sector:  c.QueryParam("sector"),
		Country: c.QueryParam("country"),
		Status:  c.QueryParam("status"),
	}

	results, err := h.industryService.GetAll(c.Request().Context(), filters, page)
	if err != nil {
		return apierrors.DatabaseError(c, err)
	}

	return c.JSON(http.StatusOK, models.IndustryListResponse{
		Count:   len(results),
		Results: results,
	})
}

// SearchIndustries godoc
// @Summary Search industries
// @Description Case-insensitive text search over name, description and products, optionally restricted to a sector and a region
// @Tags Industries
// @Produce json
// @Param q query string false "Text to search"
// @Param sector query string false "Sector name (\"Todos os setores\" for all)"
// @Param region query string false "Region name (\"Global\" for all)"
// @Param limit query int false "Maximum results (default 100, max 1000)"
// @Param skip query int false "Results to skip"
// @Success 200 {object} models.IndustryListResponse
// @Failure 400 {object} models.ErrorResponse "Invalid limit or skip"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /industries/search [get]
func (h *IndustryHandler) SearchIndustries(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return invalidParam(c, err)
	}

	query := models.SearchQuery{
		Query:  c.QueryParam("q"),
		Sector: c.QueryParam("sector"),
		Region: c.QueryParam("region"),
	}

	results, err := h.industryService.Search(c.Request().Context(), query, page)
	if err != nil {
		return apierrors.DatabaseError(c, err)
	}

	return c.JSON(http.StatusOK, models.IndustryListResponse{
		Count:   len(results),
		Results: results,
	})
}

// GetIndustry godoc
// @Summary Get industry
// @Tags Industries
// @Produce json
// @Param id path string true "Industry ID"
// @Success 200 {object} models.Industry
// @Failure 404 {object} models.ErrorResponse "Industry not found"
// @Router /industries/{id} [get]
func (h *IndustryHandler) GetIndustry(c echo.Context) error {
	ind, err := h.industryService.GetByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, industries.ErrNotFound) {
		return apierrors.NotFoundError(c)
	}
	if err != nil {
		return apierrors.DatabaseError(c, err)
	}

	return c.JSON(http.StatusOK, ind)
}

// CreateIndustry godoc
// @Summary Create industry
// @Description Creates an industry. name, sector and description are required.
// @Tags Industries
// @Accept json
// @Produce json
// @Param industry body models.Industry true "Industry"
// @Success 201 {object} models.Industry
// @Failure 400 {object} models.ErrorResponse "Missing required field or malformed body"
// @Failure 500 {object} models.ErrorResponse "Store failure or read-only mode"
// @Router /industries [post]
func (h *IndustryHandler) CreateIndustry(c echo.Context) error {
	var input models.Industry
	if err := c.Bind(&input); err != nil {
		return apierrors.ValidationError(c, err)
	}

	field, err := missingField(&input)
	if err != nil {
		return apierrors.ValidationError(c, err)
	}
	if field != "" {
		return apierrors.MissingField(c, field)
	}

	created, err := h.industryService.Create(c.Request().Context(), &input)
	if errors.Is(err, industries.ErrReadOnly) {
		return apierrors.ReadOnlyError(c)
	}
	if err != nil {
		return apierrors.DatabaseError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdateIndustry godoc
// @Summary Update industry
// @Description Partially updates an industry. Only supplied fields change.
// @Tags Industries
// @Accept json
// @Produce json
// @Param id path string true "Industry ID"
// @Param industry body models.IndustryPatch true "Fields to change"
// @Success 200 {object} models.Industry
// @Failure 400 {object} models.ErrorResponse "Malformed body"
// @Failure 404 {object} models.ErrorResponse "Industry not found"
// @Failure 500 {object} models.ErrorResponse "Store failure or read-only mode"
// @Router /industries/{id} [put]
func (h *IndustryHandler) UpdateIndustry(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var patch models.IndustryPatch
	if err := c.Bind(&patch); err != nil {
		return apierrors.ValidationError(c, err)
	}

	if _, err := h.industryService.GetByID(ctx, id); err != nil {
		if errors.Is(err, industries.ErrNotFound) {
			return apierrors.NotFoundError(c)
		}
		return apierrors.DatabaseError(c, err)
	}

	updated, err := h.industryService.Update(ctx, id, patch)
	if errors.Is(err, industries.ErrReadOnly) {
		return apierrors.ReadOnlyError(c)
	}
	if err != nil {
		return apierrors.DatabaseError(c, err)
	}
	if !updated {
		// removed between the existence check and the update
		return apierrors.NotFoundError(c)
	}

	ind, err := h.industryService.GetByID(ctx, id)
	if errors.Is(err, industries.ErrNotFound) {
		return apierrors.NotFoundError(c)
	}
	if err != nil {
		return apierrors.DatabaseError(c, err)
	}

	return c.JSON(http.StatusOK, ind)
}

// DeleteIndustry godoc
// @Summary Delete industry
// @Tags Industries
// @Produce json
// @Param id path string true "Industry ID"
// @Success 200 {object} map[string]string "Deletion message"
// @Failure 404 {object} models.ErrorResponse "Industry not found"
// @Failure 500 {object} models.ErrorResponse "Store failure or read-only mode"
// @Router /industries/{id} [delete]
func (h *IndustryHandler) DeleteIndustry(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if _, err := h.industryService.GetByID(ctx, id); err != nil {
		if errors.Is(err, industries.ErrNotFound) {
			return apierrors.NotFoundError(c)
		}
		return apierrors.DatabaseError(c, err)
	}

	deleted, err := h.industryService.Delete(ctx, id)
	if errors.Is(err, industries.ErrReadOnly) {
		return apierrors.ReadOnlyError(c)
	}
	if err != nil {
		return apierrors.DatabaseError(c, err)
	}
	if !deleted {
		return apierrors.NotFoundError(c)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "industry deleted",
	})
}

// ExportIndustries godoc
// @Summary Export industries
// @Description Downloads the industries matching the list filters as CSV or XLSX
// @Tags Industries
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv (default) or xlsx"
// @Param sector query string false "Sector name"
// @Param country query string false "Country name"
// @Param status query string false "Status"
// @Param limit query int false "Maximum rows (default 100, max 1000)"
// @Param skip query int false "Rows to skip"
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse "Invalid format, limit or skip"
// @Router /industries/export [get]
func (h *IndustryHandler) ExportIndustries(c echo.Context) error {
	format, err := export.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return apierrors.InvalidParameter(c, "format")
	}

	page, err := parsePage(c)
	if err != nil {
		return invalidParam(c, err)
	}

	filters := models.IndustryFilters{
		Sector:  c.QueryParam("sector"),
		Country: c.QueryParam("country"),
		Status:  c.QueryParam("status"),
	}

	results, err := h.industryService.GetAll(c.Request().Context(), filters, page)
	if err != nil {
		return apierrors.DatabaseError(c, err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, format.ContentType())
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", format.FileName()))
	res.WriteHeader(http.StatusOK)

	return export.Write(res, format, results)
}

func invalidParam(c echo.Context, err error) error {
	var pe *paramError
	if errors.As(err, &pe) {
		return apierrors.InvalidParameter(c, pe.name)
	}
	return apierrors.ValidationError(c, err)
}
