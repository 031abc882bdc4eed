package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ronoos/storefront/internal/config"
	"github.com/ronoos/storefront/internal/constants"
	"github.com/ronoos/storefront/internal/models"
	"github.com/ronoos/storefront/internal/upstream"
)

// fakeBakeryAPI 模拟上游订单与地址端点，记录收到的请求
type fakeBakeryAPI struct {
	server *httptest.Server

	orderCalls     int32
	addressCalls   int32
	failAddress    bool
	lastOrderInput upstream.CreateOrderInput
	orderStatus    string
	statusPatches  int32
}

func newFakeBakeryAPI(t *testing.T) *fakeBakeryAPI {
	t.Helper()

	api := &fakeBakeryAPI{orderStatus: constants.OrderStatusPending}
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/addresses/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&api.addressCalls, 1)
		if api.failAddress {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"detail": "pincode not serviceable"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 9, "address_line1": "12 Baker Street", "city": "Mumbai", "pincode": "400001"}`)
	})
	mux.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&api.orderCalls, 1)
		if err := json.NewDecoder(r.Body).Decode(&api.lastOrderInput); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id": 42, "status": "pending", "payment_status": "pending", "final_amount": %q, "delivery_date": %q, "delivery_slot": %q}`,
			api.lastOrderInput.FinalAmount.String(), api.lastOrderInput.DeliveryDate, api.lastOrderInput.DeliverySlot)
	})
	mux.HandleFunc("/orders/42/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id": 42, "status": %q}`, api.orderStatus)
	})
	mux.HandleFunc("/orders/42/status/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&api.statusPatches, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 42, "status": "cancelled"}`)
	})

	api.server = httptest.NewServer(mux)
	t.Cleanup(api.server.Close)
	return api
}

func newCheckoutService(t *testing.T, api *fakeBakeryAPI) (*CheckoutService, *CartService) {
	t.Helper()

	client, err := upstream.NewClient(&config.UpstreamConfig{BaseURL: api.server.URL})
	if err != nil {
		t.Fatalf("create upstream client failed: %v", err)
	}
	cart := newCartService(t)
	builds := NewMemoryCakeBuildStore(time.Minute)
	svc := NewCheckoutService(cart, builds, client, nil, &config.CheckoutConfig{DeliveryFee: "50"})
	return svc, cart
}

func fillCart(t *testing.T, cart *CartService, deviceID string) {
	t.Helper()
	if _, err := cart.AddItem(AddCartItemInput{
		DeviceID:  deviceID,
		Kind:      constants.CartItemKindStandard,
		ProductID: uintPtr(1),
		UnitPrice: models.NewMoneyFromInt(250),
		Quantity:  2,
	}); err != nil {
		t.Fatalf("fill cart failed: %v", err)
	}
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 3).Format("2006-01-02")
}

func TestPlaceOrderValidation(t *testing.T) {
	api := newFakeBakeryAPI(t)
	svc, cart := newCheckoutService(t, api)
	deviceID := "device-validate"
	fillCart(t, cart, deviceID)

	cases := []struct {
		name  string
		input PlaceOrderInput
		want  error
	}{
		{
			name: "unknown slot",
			input: PlaceOrderInput{
				DeviceID: deviceID, DeliveryType: "pickup",
				DeliveryDate: futureDate(), DeliverySlot: "09:00-10:00 AM",
			},
			want: ErrDeliverySlotInvalid,
		},
		{
			name: "malformed date",
			input: PlaceOrderInput{
				DeviceID: deviceID, DeliveryType: "pickup",
				DeliveryDate: "31-12-2026", DeliverySlot: "10:00-11:00 AM",
			},
			want: ErrDeliveryDateInvalid,
		},
		{
			name: "past date",
			input: PlaceOrderInput{
				DeviceID: deviceID, DeliveryType: "pickup",
				DeliveryDate: "2020-01-01", DeliverySlot: "10:00-11:00 AM",
			},
			want: ErrDeliveryDateInvalid,
		},
		{
			name: "delivery without address",
			input: PlaceOrderInput{
				DeviceID: deviceID, DeliveryType: "delivery",
				DeliveryDate: futureDate(), DeliverySlot: "10:00-11:00 AM",
			},
			want: ErrDeliveryAddressRequired,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.PlaceOrder(context.Background(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if calls := atomic.LoadInt32(&api.orderCalls); calls != 0 {
		t.Fatalf("validation failures must not reach upstream, got %d order calls", calls)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	api := newFakeBakeryAPI(t)
	svc, _ := newCheckoutService(t, api)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		DeviceID: "device-empty", DeliveryType: "pickup",
		DeliveryDate: futureDate(), DeliverySlot: "10:00-11:00 AM",
	})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestPlaceOrderAddressFailureAbortsOrder(t *testing.T) {
	api := newFakeBakeryAPI(t)
	api.failAddress = true
	svc, cart := newCheckoutService(t, api)
	deviceID := "device-address-fail"
	fillCart(t, cart, deviceID)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		DeviceID: deviceID, DeliveryType: "delivery",
		DeliveryDate: futureDate(), DeliverySlot: "10:00-11:00 AM",
		NewAddress: &upstream.AddressInput{AddressLine1: "12 Baker Street", City: "Mumbai", Pincode: "999999"},
	})
	if upstream.ErrorDetail(err) != "pincode not serviceable" {
		t.Fatalf("expected upstream address error surfaced, got %v", err)
	}
	if calls := atomic.LoadInt32(&api.orderCalls); calls != 0 {
		t.Fatalf("address failure must abort the order, got %d order calls", calls)
	}

	// 未下单，购物车保持原样
	summary, err := cart.Summary(deviceID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("expected cart untouched, got %d lines", len(summary.Items))
	}
}

func TestPlaceOrderPickupSkipsDeliveryFee(t *testing.T) {
	api := newFakeBakeryAPI(t)
	svc, cart := newCheckoutService(t, api)
	deviceID := "device-pickup"
	fillCart(t, cart, deviceID)

	result, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		DeviceID: deviceID, DeliveryType: "pickup",
		DeliveryDate: futureDate(), DeliverySlot: "02:00-03:00 PM",
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if result.DeliveryFee.String() != "0.00" {
		t.Fatalf("pickup must not carry delivery fee, got %s", result.DeliveryFee.String())
	}
	if result.FinalAmount.String() != "500.00" {
		t.Fatalf("expected final amount 500, got %s", result.FinalAmount.String())
	}
}

func TestPlaceOrderDeliveryWithNewAddress(t *testing.T) {
	api := newFakeBakeryAPI(t)
	svc, cart := newCheckoutService(t, api)
	deviceID := "device-delivery"
	fillCart(t, cart, deviceID)

	result, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		DeviceID: deviceID, DeliveryType: "delivery",
		DeliveryDate: futureDate(), DeliverySlot: "10:00-11:00 AM",
		NewAddress: &upstream.AddressInput{AddressLine1: "12 Baker Street", City: "Mumbai", Pincode: "400001"},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if atomic.LoadInt32(&api.addressCalls) != 1 {
		t.Fatal("expected address created before order")
	}
	if api.lastOrderInput.DeliveryAddress == nil || *api.lastOrderInput.DeliveryAddress != 9 {
		t.Fatalf("expected created address id attached, got %v", api.lastOrderInput.DeliveryAddress)
	}
	if api.lastOrderInput.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("expected pending payment status, got %q", api.lastOrderInput.PaymentStatus)
	}
	// 商品 500 + 配送费 50
	if result.FinalAmount.String() != "550.00" {
		t.Fatalf("expected final amount 550, got %s", result.FinalAmount.String())
	}
	if result.Order == nil || result.Order.ID != 42 {
		t.Fatalf("unexpected created order: %+v", result.Order)
	}

	// 成功后清空购物车
	summary, err := cart.Summary(deviceID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("expected cart cleared after order, got %d lines", len(summary.Items))
	}
}

func TestPlaceOrderCustomItemPayload(t *testing.T) {
	api := newFakeBakeryAPI(t)
	svc, cart := newCheckoutService(t, api)
	deviceID := "device-custom-order"

	if _, err := cart.AddItem(AddCartItemInput{
		DeviceID:  deviceID,
		Kind:      constants.CartItemKindCustom,
		UnitPrice: models.NewMoneyFromInt(680),
		Quantity:  1,
		CustomConfig: models.JSON{
			"base": map[string]interface{}{"option_id": float64(1), "name": "Vanilla Sponge", "price": "100.00"},
		},
		MessageOnCake: "Happy Birthday",
	}); err != nil {
		t.Fatalf("add custom item failed: %v", err)
	}

	if _, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		DeviceID: deviceID, DeliveryType: "pickup",
		DeliveryDate: futureDate(), DeliverySlot: "10:00-11:00 AM",
	}); err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if len(api.lastOrderInput.Items) != 1 {
		t.Fatalf("expected one order item, got %d", len(api.lastOrderInput.Items))
	}
	item := api.lastOrderInput.Items[0]
	if item.ProductID != nil || item.ProductVariantID != nil {
		t.Fatal("custom item must not carry product references")
	}
	if item.MessageOnCake != "Happy Birthday" {
		t.Fatalf("unexpected message: %q", item.MessageOnCake)
	}
	if len(item.CustomConfig) == 0 {
		t.Fatal("expected custom config forwarded")
	}
}

func TestCancelOrderOnlyFromPending(t *testing.T) {
	api := newFakeBakeryAPI(t)
	svc, _ := newCheckoutService(t, api)
	ctx := context.Background()

	if err := svc.CancelOrder(ctx, "Bearer token", 42); err != nil {
		t.Fatalf("cancel pending order failed: %v", err)
	}
	if atomic.LoadInt32(&api.statusPatches) != 1 {
		t.Fatal("expected cancel to patch order status")
	}

	api.orderStatus = constants.OrderStatusConfirmed
	if err := svc.CancelOrder(ctx, "Bearer token", 42); !errors.Is(err, ErrOrderNotCancellable) {
		t.Fatalf("expected ErrOrderNotCancellable, got %v", err)
	}
	if atomic.LoadInt32(&api.statusPatches) != 1 {
		t.Fatal("non-cancellable order must not be patched")
	}
}
