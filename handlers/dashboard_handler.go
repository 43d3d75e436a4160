package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vipulsahu063/PSMSystem/database"
	"github.com/vipulsahu063/PSMSystem/services"
)

type DashboardHandler struct {
	officers services.OfficerService
}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{officers: services.NewOfficerService(database.DB)}
}

// GET /station/dashboard?station_id=
func (h *DashboardHandler) Stats(c echo.Context) error {
	stationID := effectiveStationID(c)
	if stationID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_STATION_ID"})
	}
	stats, err := h.officers.Stats(c.Request().Context(), stationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "STORAGE_FAILURE"})
	}
	return c.JSON(http.StatusOK, stats)
}
