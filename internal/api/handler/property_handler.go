package handler

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/listing-api/internal/api/metrics"
	"github.com/estatehub/listing-api/internal/core/filter"
	"github.com/estatehub/listing-api/internal/core/ports"
	"github.com/estatehub/listing-api/internal/infrastructure/export"
)

const (
	maxImageBytes = 5 << 20
	exportMaxRows = 5000
)

// PropertyHandler handles HTTP requests for listings.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// Search handles GET /properties and GET /properties/search.
//
// @Summary      Search listings
// @Description  Every criterion is optional; an empty query lists everything. Invalid criteria reject the whole request.
// @Tags         properties
// @Produce      json
// @Param        location      query     string  false  "Substring of location, state, area or title"
// @Param        state         query     string  false  "Exact state, case-insensitive"
// @Param        area          query     string  false  "Exact area, case-insensitive"
// @Param        propertyType  query     string  false  "Property type or 'any'"
// @Param        status        query     string  false  "sale, rent or 'any'"
// @Param        minPrice      query     number  false  "Inclusive lower price bound"
// @Param        maxPrice      query     number  false  "Inclusive upper price bound"
// @Param        bedrooms      query     string  false  "Minimum bedrooms, e.g. 3 or 3+"
// @Param        bathrooms     query     string  false  "Minimum bathrooms, e.g. 2 or 2+"
// @Param        amenities     query     string  false  "Comma-separated amenities, all required"
// @Param        sort          query     string  false  "newest, oldest, price_asc, price_desc"
// @Param        page          query     int     false  "1-based page"
// @Param        limit         query     int     false  "Page size, max 100"
// @Success      200           {object}  searchResponse
// @Failure      400           {object}  ErrorBody
// @Failure      503           {object}  ErrorBody
// @Router       /properties [get]
func (h *PropertyHandler) Search(c echo.Context) error {
	q, err := filter.ParseRequest(c.QueryParams())
	if err != nil {
		metrics.SearchRejectedTotal.Inc()
		return err
	}

	res, err := h.service.Search(c.Request().Context(), q, viewerID(c))
	if err != nil {
		return err
	}
	metrics.SearchesTotal.WithLabelValues(string(q.Sort)).Inc()
	metrics.SearchMatches.Observe(float64(res.Total))

	return c.JSON(http.StatusOK, newSearchResponse(res))
}

// Featured handles GET /properties/featured.
//
// @Summary      Featured listings
// @Tags         properties
// @Produce      json
// @Success      200  {object}  listResponse
// @Router       /properties/featured [get]
func (h *PropertyHandler) Featured(c echo.Context) error {
	items, err := h.service.Featured(c.Request().Context(), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(items))
}

// Recent handles GET /properties/recent.
//
// @Summary      Newest listings
// @Tags         properties
// @Produce      json
// @Success      200  {object}  listResponse
// @Router       /properties/recent [get]
func (h *PropertyHandler) Recent(c echo.Context) error {
	items, err := h.service.Recent(c.Request().Context(), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(items))
}

// Get handles GET /properties/:id.
//
// @Summary      Get a listing
// @Tags         properties
// @Produce      json
// @Param        id   path      string  true  "Property ID"
// @Success      200  {object}  domain.Property
// @Failure      404  {object}  ErrorBody
// @Router       /properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Similar handles GET /properties/:id/similar.
//
// @Summary      Similar listings
// @Tags         properties
// @Produce      json
// @Param        id   path      string  true  "Property ID"
// @Success      200  {object}  listResponse
// @Failure      404  {object}  ErrorBody
// @Router       /properties/{id}/similar [get]
func (h *PropertyHandler) Similar(c echo.Context) error {
	items, err := h.service.Similar(c.Request().Context(), c.Param("id"), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(items))
}

// Create handles POST /properties.
//
// @Summary      Create a listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      propertyRequest  true  "Listing"
// @Success      201   {object}  domain.Property
// @Failure      400   {object}  ErrorBody
// @Failure      403   {object}  ErrorBody
// @Router       /properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	var req propertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	metrics.PropertyWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /properties/:id. The body replaces every field.
//
// @Summary      Replace a listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Property ID"
// @Param        body  body      propertyRequest  true  "Listing"
// @Success      200   {object}  domain.Property
// @Failure      400   {object}  ErrorBody
// @Failure      404   {object}  ErrorBody
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	var req propertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	metrics.PropertyWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /properties/:id.
//
// @Summary      Delete a listing
// @Tags         properties
// @Security     BearerAuth
// @Param        id   path  string  true  "Property ID"
// @Success      204
// @Failure      404  {object}  ErrorBody
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.PropertyWritesTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// UploadImage handles POST /properties/:id/image with a multipart "image" file.
//
// @Summary      Upload a listing image
// @Tags         properties
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "Property ID"
// @Param        image  formData  file    true  "Image file, at most 5 MB"
// @Success      200    {object}  domain.Property
// @Failure      400    {object}  ErrorBody
// @Failure      503    {object}  ErrorBody
// @Router       /properties/{id}/image [post]
func (h *PropertyHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	if file.Size > maxImageBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "image must be at most 5 MB")
	}
	if ct := file.Header.Get(echo.HeaderContentType); ct != "" && !strings.HasPrefix(ct, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "file must be an image")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable image")
	}
	defer src.Close()

	p, err := h.service.SetImage(c.Request().Context(), c.Param("id"), src)
	if err != nil {
		return err
	}
	metrics.PropertyWritesTotal.WithLabelValues("image").Inc()
	return c.JSON(http.StatusOK, p)
}

// Export handles GET /properties/export.xlsx. It accepts the search criteria
// and sort of Search and ignores paging.
//
// @Summary      Export a search as XLSX
// @Tags         properties
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200
// @Failure      400  {object}  ErrorBody
// @Router       /properties/export.xlsx [get]
func (h *PropertyHandler) Export(c echo.Context) error {
	params := c.Request().URL.Query()
	params.Del(filter.KeyPage)
	params.Del(filter.KeyLimit)
	q, err := filter.ParseRequest(params)
	if err != nil {
		return err
	}
	q.Page = filter.Page{Number: 1, Limit: exportMaxRows}

	res, err := h.service.Search(c.Request().Context(), q, "")
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, res.Items); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="properties.xlsx"`)
	return c.Blob(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}
