package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// StationScope binds station-role sessions to their own station. A station
// user may omit station_id (their own is implied) but may never name another
// station's. Admin sessions pass through and pick the station explicitly.
func StationScope() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role != "station" {
				return next(c)
			}
			own, _ := c.Get("station_id").(string)
			requested := c.QueryParam("station_id")
			if requested == "" {
				requested = c.Param("station_id")
			}
			if requested != "" && requested != own {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
			}
			return next(c)
		}
	}
}
