package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sajidhasan/ecomart-golang/internal/config"
	"github.com/sajidhasan/ecomart-golang/internal/middleware"
	"github.com/sajidhasan/ecomart-golang/internal/models"
)

func TestComputeOrderTotal(t *testing.T) {
	prices := map[int64]float64{
		1: 10.00,
		2: 5.50,
	}

	items := []OrderItemInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}

	total, resolved := computeOrderTotal(items, prices)
	if total != 25.50 {
		t.Errorf("total = %v, want 25.50", total)
	}
	if len(resolved) != 2 {
		t.Errorf("resolved %d items, want 2", len(resolved))
	}
}

func TestComputeOrderTotalDropsUnknownProducts(t *testing.T) {
	prices := map[int64]float64{1: 10.00}

	items := []OrderItemInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 999, Quantity: 3}, // does not exist
	}

	total, resolved := computeOrderTotal(items, prices)
	if total != 20.00 {
		t.Errorf("total = %v, want 20.00 (unknown product must not contribute)", total)
	}
	if len(resolved) != 1 || resolved[0].ProductID != 1 {
		t.Errorf("resolved = %+v, want only product 1", resolved)
	}
}

func TestComputeOrderTotalAllUnknown(t *testing.T) {
	items := []OrderItemInput{{ProductID: 5, Quantity: 1}}

	total, resolved := computeOrderTotal(items, map[int64]float64{})
	if total != 0 {
		t.Errorf("total = %v, want 0", total)
	}
	if len(resolved) != 0 {
		t.Errorf("resolved = %+v, want empty", resolved)
	}
}

// newTestContext builds a gin context carrying a JSON body, with an
// authenticated user already attached the way the middleware would.
func newTestContext(t *testing.T, method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	c.Set(middleware.ContextUserKey, &models.User{ID: 1, Role: "user"})
	return c, w
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	h := &Handlers{Config: &config.Config{}}

	payload := `{"name":"John","address":"Street 1","city":"Dhaka","zip":"1000",
		"email":"john@example.com","phone":"123456","items":[]}`
	c, w := newTestContext(t, http.MethodPost, payload)

	h.CreateOrder(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for empty items", w.Code)
	}
}

func TestCreateOrderRejectsZeroQuantity(t *testing.T) {
	h := &Handlers{Config: &config.Config{}}

	payload := `{"name":"John","address":"Street 1","city":"Dhaka","zip":"1000",
		"email":"john@example.com","phone":"123456",
		"items":[{"productId":1,"quantity":0}]}`
	c, w := newTestContext(t, http.MethodPost, payload)

	h.CreateOrder(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for quantity 0", w.Code)
	}
}

func TestCreateOrderRejectsMissingCustomerInfo(t *testing.T) {
	h := &Handlers{Config: &config.Config{}}

	payload := `{"items":[{"productId":1,"quantity":1}]}`
	c, w := newTestContext(t, http.MethodPost, payload)

	h.CreateOrder(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing customer info", w.Code)
	}
}

func TestUpdateOrderRejectsUnknownStatus(t *testing.T) {
	h := &Handlers{Config: &config.Config{}}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"status":"SHIPPED"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "orderId", Value: "1"}}

	h.UpdateOrder(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unrecognized order status", w.Code)
	}
}

func TestUpdateOrderRejectsBadID(t *testing.T) {
	h := &Handlers{Config: &config.Config{}}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"status":"PENDING"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "orderId", Value: "abc"}}

	h.UpdateOrder(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for non-numeric order id", w.Code)
	}
}
