package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ronoos/storefront/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.UpstreamConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("create client failed: %v", err)
	}
	return client
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(nil); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for nil config, got %v", err)
	}
	if _, err := NewClient(&config.UpstreamConfig{BaseURL: "  "}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for blank base url, got %v", err)
	}
}

func TestProxyJSONForwardsAuthAndBody(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody []byte
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"token": "abc"}`)
	}))

	out, err := client.ProxyJSON(context.Background(), http.MethodPost, "/auth/login/", "Bearer token-1", json.RawMessage(`{"email":"a@b.c"}`))
	if err != nil {
		t.Fatalf("proxy failed: %v", err)
	}
	if gotAuth != "Bearer token-1" {
		t.Fatalf("expected auth header forwarded, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected json content type, got %q", gotContentType)
	}
	if string(gotBody) != `{"email":"a@b.c"}` {
		t.Fatalf("expected raw body forwarded, got %s", gotBody)
	}
	if string(out) != `{"token": "abc"}` {
		t.Fatalf("expected raw response returned, got %s", out)
	}
}

func TestAPIErrorDetailExtraction(t *testing.T) {
	cases := []struct {
		name       string
		statusCode int
		body       string
		wantDetail string
	}{
		{"detail field", http.StatusBadRequest, `{"detail": "invalid credentials"}`, "invalid credentials"},
		{"error field", http.StatusConflict, `{"error": "duplicate order"}`, "duplicate order"},
		{"non json body", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				fmt.Fprint(w, tc.body)
			}))

			_, err := client.ProxyJSON(context.Background(), http.MethodGet, "/orders/", "", nil)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.StatusCode != tc.statusCode {
				t.Fatalf("expected status %d, got %d", tc.statusCode, apiErr.StatusCode)
			}
			if apiErr.Detail != tc.wantDetail {
				t.Fatalf("expected detail %q, got %q", tc.wantDetail, apiErr.Detail)
			}
			if ErrorDetail(err) != tc.wantDetail {
				t.Fatalf("ErrorDetail mismatch: %q", ErrorDetail(err))
			}
		})
	}
}

func TestErrorClassifiers(t *testing.T) {
	notFound := &APIError{StatusCode: http.StatusNotFound}
	if !IsNotFound(notFound) {
		t.Fatal("expected IsNotFound true for 404")
	}
	if IsNotFound(&APIError{StatusCode: http.StatusBadRequest}) {
		t.Fatal("expected IsNotFound false for 400")
	}
	if !IsUnauthorized(&APIError{StatusCode: http.StatusUnauthorized}) {
		t.Fatal("expected IsUnauthorized true for 401")
	}
	if IsNotFound(errors.New("plain")) || IsUnauthorized(nil) {
		t.Fatal("classifiers must ignore non-api errors")
	}
}

func TestRequestFailureWrapsSentinel(t *testing.T) {
	client, err := NewClient(&config.UpstreamConfig{BaseURL: "http://127.0.0.1:1", TimeoutSeconds: 1})
	if err != nil {
		t.Fatalf("create client failed: %v", err)
	}
	_, err = client.ProxyJSON(context.Background(), http.MethodGet, "/catalog/products/", "", nil)
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}

func TestGetOrderStatusParsesStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/7/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 7, "status": "in_kitchen", "payment_status": "paid"}`)
	}))

	status, err := client.GetOrderStatus(context.Background(), "Bearer token", 7)
	if err != nil {
		t.Fatalf("get order status failed: %v", err)
	}
	if status != "in_kitchen" {
		t.Fatalf("expected in_kitchen, got %q", status)
	}
}
