package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vipulsahu063/PSMSystem/database"
	"github.com/vipulsahu063/PSMSystem/services"
)

type FieldHandler struct {
	fields services.FieldService
}

func NewFieldHandler() *FieldHandler {
	return &FieldHandler{fields: services.NewFieldService(database.DB)}
}

type replaceFieldsPayload struct {
	Fields []services.FieldInput `json:"fields"`
}

// GET /admin/fields/:station_id, GET /station/fields
func (h *FieldHandler) List(c echo.Context) error {
	stationID := effectiveStationID(c)
	if stationID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_STATION_ID"})
	}
	fields, err := h.fields.ListFields(c.Request().Context(), stationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "STORAGE_FAILURE"})
	}
	return c.JSON(http.StatusOK, fields)
}

// POST /admin/fields/:station_id
// Replaces the station's whole field list with the submitted one.
func (h *FieldHandler) Replace(c echo.Context) error {
	stationID := c.Param("station_id")

	var p replaceFieldsPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if p.Fields == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_FIELDS"})
	}

	err := h.fields.ReplaceFields(c.Request().Context(), stationID, p.Fields)
	switch {
	case errors.Is(err, services.ErrMissingLabel):
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"field_label": "every field needs a label"},
		})
	case errors.Is(err, services.ErrInvalidFieldType):
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"field_type": "unknown field type"},
		})
	case errors.Is(err, services.ErrStationNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "STORAGE_FAILURE"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "custom fields saved"})
}

// DELETE /admin/fields/:station_id
func (h *FieldHandler) Clear(c echo.Context) error {
	stationID := c.Param("station_id")
	if err := h.fields.ClearFields(c.Request().Context(), stationID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "STORAGE_FAILURE"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "all custom fields deleted"})
}
