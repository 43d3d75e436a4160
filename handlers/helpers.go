package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// string -> int with a fallback when missing or malformed
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// effectiveStationID resolves which station a request targets: an explicit
// path/query value when present, else the session's own station.
func effectiveStationID(c echo.Context) string {
	if p := c.Param("station_id"); p != "" {
		return p
	}
	if q := c.QueryParam("station_id"); q != "" {
		return q
	}
	own, _ := c.Get("station_id").(string)
	return own
}
