package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vipulsahu063/PSMSystem/config"
)

// UploadHandler signs direct-to-host upload requests so the browser can push
// image bytes straight to the external image host. The server never receives
// the file itself, only the hosted URL stored later in the value-map.
type UploadHandler struct {
	APIKey    string
	APISecret string
}

func NewUploadHandler(cfg *config.Config) *UploadHandler {
	return &UploadHandler{APIKey: cfg.UploadAPIKey, APISecret: cfg.UploadAPISecret}
}

type signUploadPayload struct {
	Params map[string]string `json:"params"`
}

// POST /uploads/sign
func (h *UploadHandler) Sign(c echo.Context) error {
	if h.APISecret == "" {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "UPLOADS_NOT_CONFIGURED"})
	}

	var p signUploadPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if p.Params == nil {
		p.Params = map[string]string{}
	}
	if p.Params["timestamp"] == "" {
		p.Params["timestamp"] = strconv.FormatInt(time.Now().Unix(), 10)
	}

	// Host expects params sorted by key, joined k=v with &, then keyed hash.
	keys := make([]string, 0, len(p.Params))
	for k := range p.Params {
		switch k {
		case "file", "api_key", "resource_type":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+p.Params[k])
	}
	mac := hmac.New(sha1.New, []byte(h.APISecret))
	mac.Write([]byte(strings.Join(pairs, "&")))

	return c.JSON(http.StatusOK, map[string]any{
		"signature": hex.EncodeToString(mac.Sum(nil)),
		"timestamp": p.Params["timestamp"],
		"api_key":   h.APIKey,
	})
}
