package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vipulsahu063/PSMSystem/database"
	"github.com/vipulsahu063/PSMSystem/models"
	"github.com/vipulsahu063/PSMSystem/services"
)

type ExportHandler struct {
	fields   services.FieldService
	officers services.OfficerService
	export   services.ExportService
}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{
		fields:   services.NewFieldService(database.DB),
		officers: services.NewOfficerService(database.DB),
		export:   services.NewExportService(nil),
	}
}

// GET /station/officers/export?station_id=&q=&page=&page_size=
// Exports the currently filtered page as a zip of spreadsheet plus images.
func (h *ExportHandler) Export(c echo.Context) error {
	stationID := effectiveStationID(c)
	if stationID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_STATION_ID"})
	}

	ctx := c.Request().Context()

	var station models.Station
	if err := database.DB.Where("station_id = ?", stationID).First(&station).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}

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
	paged, _ := services.PaginateOfficers(filtered, page, pageSize)
	if len(paged) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "NO_OFFICERS_TO_EXPORT"})
	}

	display := fields
	if limit := columnCap(c); len(display) > limit {
		display = display[:limit]
	}

	startSerial := (page-1)*pageSize + 1
	archive, err := h.export.BuildArchive(ctx, station.StationName, display, paged, startSerial)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "EXPORT_FAILED"})
	}

	filename := fmt.Sprintf("%s_Officers_%s.zip", station.StationName, time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, "application/zip", archive)
}
