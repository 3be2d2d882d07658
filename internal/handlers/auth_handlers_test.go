package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sajidhasan/ecomart-golang/internal/auth"
	"github.com/sajidhasan/ecomart-golang/internal/config"
)

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler(c)
	return w
}

func testHandlers() *Handlers {
	return &Handlers{
		Auth:   auth.NewTokenManager("test-secret"),
		Config: &config.Config{Env: "development"},
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	h := testHandlers()

	cases := []string{
		`{}`,
		`{"name":"John"}`,
		`{"name":"John","email":"john@example.com"}`,
		`{"name":"John","email":"not-an-email","password":"password123"}`,
		`{"name":"John","email":"john@example.com","password":"short"}`,
	}
	for _, body := range cases {
		if w := postJSON(t, h.Register, body); w.Code != http.StatusBadRequest {
			t.Errorf("Register(%s): status = %d, want 400", body, w.Code)
		}
	}
}

func TestLoginRejectsMissingFields(t *testing.T) {
	h := testHandlers()

	cases := []string{
		`{}`,
		`{"email":"john@example.com"}`,
		`{"password":"password123"}`,
	}
	for _, body := range cases {
		if w := postJSON(t, h.Login, body); w.Code != http.StatusBadRequest {
			t.Errorf("Login(%s): status = %d, want 400", body, w.Code)
		}
	}
}

func TestVerifyTokenWithoutCookie(t *testing.T) {
	h := testHandlers()

	if w := postJSON(t, h.VerifyToken, ``); w.Code != http.StatusUnauthorized {
		t.Errorf("VerifyToken without cookie: status = %d, want 401", w.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h := testHandlers()

	w := postJSON(t, h.Logout, ``)
	if w.Code != http.StatusOK {
		t.Fatalf("Logout: status = %d, want 200", w.Code)
	}

	setCookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, "verifyToken=") {
		t.Errorf("Logout did not touch the auth cookie: %q", setCookie)
	}
	if !strings.Contains(setCookie, "Max-Age=0") {
		t.Errorf("Logout cookie is not expired: %q", setCookie)
	}
}
