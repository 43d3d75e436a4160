package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vipulsahu063/PSMSystem/database"
	"github.com/vipulsahu063/PSMSystem/services"
)

// Display-density caps for the listing table; the stored value-map always
// keeps every field regardless.
const (
	adminColumnCap   = 6
	stationColumnCap = 4
)

type OfficerHandler struct {
	fields   services.FieldService
	officers services.OfficerService
}

func NewOfficerHandler() *OfficerHandler {
	return &OfficerHandler{
		fields:   services.NewFieldService(database.DB),
		officers: services.NewOfficerService(database.DB),
	}
}

type createOfficerPayload struct {
	StationID    string            `json:"station_id"`
	CustomFields map[string]string `json:"custom_fields"`
}

type bulkDeletePayload struct {
	IDs []uint `json:"ids"`
}

func columnCap(c echo.Context) int {
	if role, _ := c.Get("role").(string); role == "admin" {
		return adminColumnCap
	}
	return stationColumnCap
}

// GET /station/officers/form
func (h *OfficerHandler) Form(c echo.Context) error {
	stationID := effectiveStationID(c)
	if stationID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_STATION_ID"})
	}
	fields, err := h.fields.ListFields(c.Request().Context(), stationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "STORAGE_FAILURE"})
	}
	return c.JSON(http.StatusOK, services.BuildForm(fields))
}

// GET /station/officers?station_id=&q=&page=&page_size=
func (h *OfficerHandler) List(c echo.Context) error {
	stationID := effectiveStationID(c)
	if stationID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_STATION_ID"})
	}

	ctx := c.Request().Context()
	officers, err := h.officers.List(ctx, stationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "STORAGE_FAILURE"})
	}
	fields, err := h.fields.ListFields(ctx, stationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "STORAGE_FAILURE"})
	}

	filtered := services.SearchOfficers(officers, c.QueryParam("q"))
	page := atoiOr(c.QueryParam("page"), 1)
	pageSize := services.NormalizePageSize(atoiOr(c.QueryParam("page_size"), 10))
	paged, totalPages := services.PaginateOfficers(filtered, page, pageSize)

	display := fields
	if limit := columnCap(c); len(display) > limit {
		display = display[:limit]
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data":           paged,
		"display_fields": display,
		"total":          len(officers),
		"filtered":       len(filtered),
		"page":           page,
		"page_size":      pageSize,
		"total_pages":    totalPages,
	})
}

// POST /station/officers
func (h *OfficerHandler) Create(c echo.Context) error {
	var p createOfficerPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if p.StationID == "" || p.CustomFields == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FIELDS"})
	}

	role, _ := c.Get("role").(string)
	if own, _ := c.Get("station_id").(string); role == "station" && p.StationID != own {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "FORBIDDEN"})
	}

	ctx := c.Request().Context()
	fields, err := h.fields.ListFields(ctx, p.StationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "STORAGE_FAILURE"})
	}

	if missing := services.MissingRequired(fields, p.CustomFields); len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "MISSING_REQUIRED_FIELDS",
			"message": "Please fill all required fields: " + strings.Join(missing, ", "),
			"missing": missing,
		})
	}
	if err := services.ValidateOptions(fields, p.CustomFields); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "INVALID_OPTION",
			"message": err.Error(),
		})
	}

	rec, err := h.officers.Create(ctx, p.StationID, services.BuildValueMap(fields, p.CustomFields))
	switch {
	case errors.Is(err, services.ErrStationNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "STORAGE_FAILURE"})
	}

	return c.JSON(http.StatusCreated, rec)
}

// deleteScope narrows deletes to the session's own station; admins delete
// across stations.
func deleteScope(c echo.Context) string {
	if role, _ := c.Get("role").(string); role == "station" {
		own, _ := c.Get("station_id").(string)
		return own
	}
	return ""
}

// DELETE /station/officers/:id
func (h *OfficerHandler) Delete(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)
	err := h.officers.Delete(c.Request().Context(), uint(id), deleteScope(c))
	switch {
	case errors.Is(err, services.ErrOfficerNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "STORAGE_FAILURE"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "officer deleted"})
}

// POST /station/officers/bulk-delete
// Fire-and-collect: each id is deleted independently; successes stand even
// when some ids fail.
func (h *OfficerHandler) BulkDelete(c echo.Context) error {
	var p bulkDeletePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if len(p.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_IDS"})
	}
	result := h.officers.BulkDelete(c.Request().Context(), p.IDs, deleteScope(c))
	return c.JSON(http.StatusOK, result)
}
