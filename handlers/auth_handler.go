package handlers

import (
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/vipulsahu063/PSMSystem/config"
	"github.com/vipulsahu063/PSMSystem/database"
	"github.com/vipulsahu063/PSMSystem/models"
)

/* ====================== Config & Helpers ====================== */

type AuthHandler struct {
	JWTSecret string
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{JWTSecret: cfg.JWTSecret}
}

func (h *AuthHandler) signJWT(sub uint, role, name, stationID, stationName string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"name": name,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	if stationID != "" {
		claims["station_id"] = stationID
		claims["station_name"] = stationName
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

// policy: at least 8 chars with upper, lower, digit and special character
func validPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}

/* ====================== DTOs ====================== */

type AdminLoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type StationLoginReq struct {
	StationID string `json:"station_id"`
	Password  string `json:"password"`
}

type ChangePasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

/* ====================== Handlers ====================== */

// POST /admin/login
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req AdminLoginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var a models.Admin
	if err := database.DB.Where("username = ?", username).First(&a).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}

	token, err := h.signJWT(a.ID, "admin", a.Name, "", "", 24*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"token": token,
		"user":  map[string]any{"id": a.ID, "role": "admin", "username": a.Username, "name": a.Name},
	})
}

// POST /station/login
func (h *AuthHandler) StationLogin(c echo.Context) error {
	var req StationLoginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	stationID := strings.TrimSpace(req.StationID)
	if stationID == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var s models.Station
	if err := database.DB.Where("station_id = ?", stationID).First(&s).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	if bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}

	token, err := h.signJWT(s.ID, "station", s.StationName, s.StationID, s.StationName, 24*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"token": token,
		"user": map[string]any{
			"id": s.ID, "role": "station",
			"station_id": s.StationID, "station_name": s.StationName,
		},
	})
}

// POST /auth/change-password (admin and station sessions)
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if req.NewPassword != req.ConfirmPassword {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "PASSWORD_MISMATCH"})
	}
	if !validPassword(req.NewPassword) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "WEAK_PASSWORD"})
	}

	role, _ := c.Get("role").(string)
	userID, _ := c.Get("user_id").(uint)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
	}

	switch role {
	case "admin":
		var a models.Admin
		if err := database.DB.First(&a, userID).Error; err != nil {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.CurrentPassword)) != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CURRENT_PASSWORD"})
		}
		a.PasswordHash = string(hash)
		if err := database.DB.Save(&a).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "STORAGE_FAILURE"})
		}
	case "station":
		var s models.Station
		if err := database.DB.First(&s, userID).Error; err != nil {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		if bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(req.CurrentPassword)) != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CURRENT_PASSWORD"})
		}
		s.PasswordHash = string(hash)
		if err := database.DB.Save(&s).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "STORAGE_FAILURE"})
		}
	default:
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_ROLE"})
	}

	return c.JSON(http.StatusOK, map[string]any{"message": "password updated"})
}
