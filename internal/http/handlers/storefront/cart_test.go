package storefront

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ronoos/storefront/internal/http/handlers/shared"
	"github.com/ronoos/storefront/internal/models"
	"github.com/ronoos/storefront/internal/provider"
	"github.com/ronoos/storefront/internal/repository"
	"github.com/ronoos/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newCartTestEngine(t *testing.T, deviceID string) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.CartItem{}); err != nil {
		t.Fatalf("auto migrate cart item failed: %v", err)
	}

	handler := New(&provider.Container{
		CartService: service.NewCartService(repository.NewCartRepository(db)),
	})

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(shared.ContextKeyDeviceID, deviceID)
	})
	engine.GET("/cart", handler.GetCart)
	engine.POST("/cart/items", handler.AddCartItem)
	engine.PATCH("/cart/items/:line_id", handler.UpdateCartItem)
	engine.DELETE("/cart/items/:line_id", handler.RemoveCartItem)
	engine.DELETE("/cart", handler.ClearCart)
	return engine
}

type cartEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func doCartRequest(t *testing.T, engine *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, cartEnvelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, request)

	var envelope cartEnvelope
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope failed: %v, body: %s", err, recorder.Body.String())
	}
	return recorder, envelope
}

func TestAddCartItemEndpoint(t *testing.T) {
	engine := newCartTestEngine(t, "handler-device-add")

	_, envelope := doCartRequest(t, engine, http.MethodPost, "/cart/items",
		`{"kind": "standard", "product_id": 3, "unit_price": "250.00", "quantity": 2, "display_name": "Chocolate Truffle"}`)
	if envelope.StatusCode != 0 {
		t.Fatalf("expected success envelope, got %d %s", envelope.StatusCode, envelope.Msg)
	}

	var item models.CartItem
	if err := json.Unmarshal(envelope.Data, &item); err != nil {
		t.Fatalf("decode item failed: %v", err)
	}
	if item.LineID != "standard-3-novariant" {
		t.Fatalf("unexpected line id %q", item.LineID)
	}
	if item.Quantity != 2 {
		t.Fatalf("unexpected quantity %d", item.Quantity)
	}
}

func TestAddCartItemRejectsBadPayload(t *testing.T) {
	engine := newCartTestEngine(t, "handler-device-bad")

	// kind 缺失
	_, envelope := doCartRequest(t, engine, http.MethodPost, "/cart/items", `{"quantity": 1}`)
	if envelope.StatusCode != 400 {
		t.Fatalf("expected bad request code, got %d", envelope.StatusCode)
	}

	// kind 非法
	_, envelope = doCartRequest(t, engine, http.MethodPost, "/cart/items",
		`{"kind": "subscription", "product_id": 1, "quantity": 1}`)
	if envelope.StatusCode != 400 {
		t.Fatalf("expected bad request code for invalid kind, got %d", envelope.StatusCode)
	}
}

func TestUpdateCartItemReturnsFreshSummary(t *testing.T) {
	engine := newCartTestEngine(t, "handler-device-update")

	doCartRequest(t, engine, http.MethodPost, "/cart/items",
		`{"kind": "standard", "product_id": 3, "unit_price": "250.00", "quantity": 2}`)

	_, envelope := doCartRequest(t, engine, http.MethodPatch, "/cart/items/standard-3-novariant", `{"quantity": 5}`)
	if envelope.StatusCode != 0 {
		t.Fatalf("expected success envelope, got %d %s", envelope.StatusCode, envelope.Msg)
	}

	var summary service.CartSummary
	if err := json.Unmarshal(envelope.Data, &summary); err != nil {
		t.Fatalf("decode summary failed: %v", err)
	}
	if summary.TotalItems != 5 {
		t.Fatalf("expected 5 total items, got %d", summary.TotalItems)
	}
	if summary.TotalPrice.String() != "1250.00" {
		t.Fatalf("expected total 1250, got %s", summary.TotalPrice.String())
	}
}

func TestUpdateMissingCartItemNotFound(t *testing.T) {
	engine := newCartTestEngine(t, "handler-device-missing")

	_, envelope := doCartRequest(t, engine, http.MethodPatch, "/cart/items/standard-8-novariant", `{"quantity": 3}`)
	if envelope.StatusCode != 404 {
		t.Fatalf("expected not found code, got %d", envelope.StatusCode)
	}
}

func TestClearCartEndpoint(t *testing.T) {
	engine := newCartTestEngine(t, "handler-device-clear")

	doCartRequest(t, engine, http.MethodPost, "/cart/items",
		`{"kind": "standard", "product_id": 1, "unit_price": "100.00", "quantity": 1}`)
	_, envelope := doCartRequest(t, engine, http.MethodDelete, "/cart", "")
	if envelope.StatusCode != 0 {
		t.Fatalf("expected success envelope, got %d %s", envelope.StatusCode, envelope.Msg)
	}

	_, envelope = doCartRequest(t, engine, http.MethodGet, "/cart", "")
	var summary service.CartSummary
	if err := json.Unmarshal(envelope.Data, &summary); err != nil {
		t.Fatalf("decode summary failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(summary.Items))
	}
}
