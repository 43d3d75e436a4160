package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tk.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("token signing failed: %v", err)
	}
	return s
}

func runMiddleware(mw echo.MiddlewareFunc, c echo.Context) error {
	return mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
}

func newContext(e *echo.Echo, authz string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestRequireAuth_ValidToken(t *testing.T) {
	e := echo.New()
	token := signTestToken(t, jwt.MapClaims{
		"sub": 7, "role": "station", "name": "Test PS",
		"station_id": "TESTPS", "station_name": "Test PS",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	c := newContext(e, "Bearer "+token)

	if err := runMiddleware(RequireAuth(testSecret), c); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
	if role, _ := c.Get("role").(string); role != "station" {
		t.Errorf("role = %q, want station", role)
	}
	if sid, _ := c.Get("station_id").(string); sid != "TESTPS" {
		t.Errorf("station_id = %q, want TESTPS", sid)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	e := echo.New()

	cases := []struct {
		name  string
		authz string
	}{
		{"missing header", ""},
		{"not bearer", "Token abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired", "Bearer " + signTestToken(t, jwt.MapClaims{
			"sub": 1, "role": "admin",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})},
	}
	for _, tc := range cases {
		c := newContext(e, tc.authz)
		err := runMiddleware(RequireAuth(testSecret), c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %v", tc.name, err)
		}
	}
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	e := echo.New()
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 1, "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	})
	s, _ := tk.SignedString([]byte("other-secret"))
	c := newContext(e, "Bearer "+s)

	err := runMiddleware(RequireAuth(testSecret), c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong secret, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	c := newContext(e, "")
	c.Set("role", "station")
	if err := runMiddleware(RequireRole("station", "admin"), c); err != nil {
		t.Errorf("station should pass: %v", err)
	}

	c = newContext(e, "")
	c.Set("role", "station")
	err := runMiddleware(RequireRole("admin"), c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403 for role mismatch, got %v", err)
	}
}

func TestStationScope(t *testing.T) {
	e := echo.New()

	// station user touching its own station passes
	req := httptest.NewRequest(http.MethodGet, "/station/officers?station_id=TESTPS", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("role", "station")
	c.Set("station_id", "TESTPS")
	if err := runMiddleware(StationScope(), c); err != nil {
		t.Errorf("own station should pass: %v", err)
	}

	// another station's id is forbidden
	req = httptest.NewRequest(http.MethodGet, "/station/officers?station_id=OTHERPS", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	c.Set("role", "station")
	c.Set("station_id", "TESTPS")
	err := runMiddleware(StationScope(), c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403 for foreign station, got %v", err)
	}

	// admins pass through and pick stations explicitly
	req = httptest.NewRequest(http.MethodGet, "/station/officers?station_id=OTHERPS", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	c.Set("role", "admin")
	if err := runMiddleware(StationScope(), c); err != nil {
		t.Errorf("admin should pass: %v", err)
	}
}
