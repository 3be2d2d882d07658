package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sajidhasan/ecomart-golang/internal/auth"
	"github.com/sajidhasan/ecomart-golang/internal/models"
)

func newContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestAuthenticateWithoutCookie(t *testing.T) {
	tm := auth.NewTokenManager("test-secret")
	c, w := newContext(t)

	// The cookie check runs before any DB access, so a nil DB is fine.
	Authenticate(nil, tm)(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !c.IsAborted() {
		t.Error("request was not aborted")
	}
}

func TestAuthenticateWithInvalidToken(t *testing.T) {
	tm := auth.NewTokenManager("test-secret")
	c, w := newContext(t)
	c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage-token"})

	Authenticate(nil, tm)(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAdminWithoutUser(t *testing.T) {
	c, w := newContext(t)

	RequireAdmin()(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 when Authenticate never ran", w.Code)
	}
}

func TestRequireAdminRejectsUserRole(t *testing.T) {
	c, w := newContext(t)
	c.Set(ContextUserKey, &models.User{ID: 1, Role: "user"})

	RequireAdmin()(c)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 for role 'user'", w.Code)
	}
	if !c.IsAborted() {
		t.Error("request was not aborted")
	}
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	c, _ := newContext(t)
	c.Set(ContextUserKey, &models.User{ID: 1, Role: "admin"})

	RequireAdmin()(c)

	if c.IsAborted() {
		t.Error("admin request was aborted")
	}
}

func TestCurrentUser(t *testing.T) {
	c, _ := newContext(t)

	if CurrentUser(c) != nil {
		t.Error("CurrentUser on bare context should be nil")
	}

	want := &models.User{ID: 9, Role: "user"}
	c.Set(ContextUserKey, want)
	if got := CurrentUser(c); got != want {
		t.Errorf("CurrentUser = %+v, want %+v", got, want)
	}
}
