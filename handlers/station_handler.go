package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vipulsahu063/PSMSystem/database"
	"github.com/vipulsahu063/PSMSystem/models"
)

type StationHandler struct{}

func NewStationHandler() *StationHandler { return &StationHandler{} }

type stationPayload struct {
	StationName string `json:"station_name"`
	StationID   string `json:"station_id"`
	Password    string `json:"password"`
}

type resetPasswordPayload struct {
	NewPassword string `json:"new_password"`
}

var (
	reStationID   = regexp.MustCompile(`^[A-Za-z0-9]{1,20}$`)
	reStationName = regexp.MustCompile(`^[A-Za-z0-9\s.,()-]{1,100}$`)
)

func validateStation(p stationPayload) map[string]string {
	errs := map[string]string{}
	if !reStationID.MatchString(strings.TrimSpace(p.StationID)) {
		errs["station_id"] = "station id must be 1-20 letters or digits"
	}
	if !reStationName.MatchString(strings.TrimSpace(p.StationName)) {
		errs["station_name"] = "station name is invalid"
	}
	if !validPassword(p.Password) {
		errs["password"] = "password must be at least 8 characters with uppercase, lowercase, number and special character"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Create godoc
// @Summary      Create a station account
// @Tags         stations
// @Accept       json
// @Produce      json
// @Param        payload body stationPayload true "station payload"
// @Success      201 {object} models.Station
// @Failure      409 {object} map[string]string
// @Router       /admin/stations [post]
func (h *StationHandler) Create(c echo.Context) error {
	var p stationPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if p.StationName == "" || p.StationID == "" || p.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FIELDS"})
	}
	if errs := validateStation(p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	stationID := strings.TrimSpace(p.StationID)
	var dup models.Station
	if err := database.DB.Where("station_id = ?", stationID).First(&dup).Error; err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "EXISTS"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "HASH_FAILED"})
	}

	s := models.Station{
		StationID:    stationID,
		StationName:  strings.TrimSpace(p.StationName),
		PasswordHash: string(hash),
	}
	if err := database.DB.Create(&s).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "STORAGE_FAILURE"})
	}
	return c.JSON(http.StatusCreated, s)
}

// GET /admin/stations
func (h *StationHandler) List(c echo.Context) error {
	var stations []models.Station
	if err := database.DB.Order("created_at DESC").Find(&stations).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "STORAGE_FAILURE"})
	}
	return c.JSON(http.StatusOK, stations)
}

// DELETE /admin/stations/:id
// Removes the station together with its officers and field definitions.
func (h *StationHandler) Delete(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)

	var s models.Station
	if err := database.DB.First(&s, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("station_id = ?", s.StationID).Delete(&models.Officer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("station_id = ?", s.StationID).Delete(&models.StationCustomField{}).Error; err != nil {
			return err
		}
		return tx.Delete(&s).Error
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "STORAGE_FAILURE"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "station deleted"})
}

// POST /admin/stations/:id/reset-password
func (h *StationHandler) ResetPassword(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)

	var p resetPasswordPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if p.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FIELDS"})
	}
	if !validPassword(p.NewPassword) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "WEAK_PASSWORD"})
	}

	var s models.Station
	if err := database.DB.First(&s, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "HASH_FAILED"})
	}
	s.PasswordHash = string(hash)
	if err := database.DB.Save(&s).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "STORAGE_FAILURE"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password reset for " + s.StationName})
}
