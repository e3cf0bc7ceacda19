package tests

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "pointofsale/internal/api/http"
	"pointofsale/internal/domain"
	"pointofsale/internal/mocks"
)

type handlerMocks struct {
	catalog    *mocks.CatalogServiceInterface
	sessions   *mocks.SessionServiceInterface
	orders     *mocks.OrderServiceInterface
	checkout   *mocks.CheckoutServiceInterface
	promotions *mocks.PromotionServiceInterface
}

func setupTestRouter(t *testing.T) (*mux.Router, handlerMocks) {
	m := handlerMocks{
		catalog:    mocks.NewCatalogServiceInterface(t),
		sessions:   mocks.NewSessionServiceInterface(t),
		orders:     mocks.NewOrderServiceInterface(t),
		checkout:   mocks.NewCheckoutServiceInterface(t),
		promotions: mocks.NewPromotionServiceInterface(t),
	}
	handler := httpapi.NewHandler(m.catalog, m.sessions, m.orders, m.checkout, m.promotions)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, m
}

func doRequest(router *mux.Router, method, path, body string, withScope bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if withScope {
		req.Header.Set("X-Organization-ID", "org-1")
		req.Header.Set("X-Branch-ID", "branch-1")
		req.Header.Set("X-User-ID", "user-1")
		req.Header.Set("X-User-Role", "waiter")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_createOrder(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		withScope    bool
		prepareMocks func(m handlerMocks)
		expectedCode int
	}{
		{
			name:      "success",
			payload:   `{"items":[{"product_id":"prod-1","quantity":2,"selections":{"Spice Level":"Hot"}}]}`,
			withScope: true,
			prepareMocks: func(m handlerMocks) {
				m.orders.On("Create", mock.Anything, mock.Anything, mock.Anything).
					Return(openOrder(), nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "missing_tenant_headers",
			payload:      `{"items":[]}`,
			withScope:    false,
			prepareMocks: func(m handlerMocks) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:      "empty_order_maps_to_400",
			payload:   `{"items":[]}`,
			withScope: true,
			prepareMocks: func(m handlerMocks) {
				m.orders.On("Create", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, domain.ErrEmptyOrder).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:      "closed_session_maps_to_400",
			payload:   `{"session_token":"tok","items":[{"product_id":"p","quantity":1}]}`,
			withScope: true,
			prepareMocks: func(m handlerMocks) {
				m.orders.On("Create", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, domain.ErrSessionClosed).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid_json",
			payload:      `not json`,
			withScope:    true,
			prepareMocks: func(m handlerMocks) {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)
			rec := doRequest(router, http.MethodPost, "/api/orders", testCase.payload, testCase.withScope)
			assert.Equal(t, testCase.expectedCode, rec.Code)
		})
	}
}

func TestHandler_updateOrderStatus(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		prepareMocks func(m handlerMocks)
		expectedCode int
	}{
		{
			name:    "success",
			payload: `{"status":"CONFIRMED"}`,
			prepareMocks: func(m handlerMocks) {
				m.orders.On("UpdateStatus", mock.Anything, mock.Anything, "order-1", domain.StatusConfirmed).
					Return(openOrder(), nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "unknown_status_rejected_at_boundary",
			payload:      `{"status":"SHIPPED"}`,
			prepareMocks: func(m handlerMocks) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "invalid_transition_maps_to_409",
			payload: `{"status":"READY"}`,
			prepareMocks: func(m handlerMocks) {
				m.orders.On("UpdateStatus", mock.Anything, mock.Anything, "order-1", domain.StatusReady).
					Return(nil, domain.ErrInvalidTransition).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:    "finalized_maps_to_409",
			payload: `{"status":"CANCELLED"}`,
			prepareMocks: func(m handlerMocks) {
				m.orders.On("UpdateStatus", mock.Anything, mock.Anything, "order-1", domain.StatusCancelled).
					Return(nil, domain.ErrAlreadyFinalized).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:    "not_found_maps_to_404",
			payload: `{"status":"CONFIRMED"}`,
			prepareMocks: func(m handlerMocks) {
				m.orders.On("UpdateStatus", mock.Anything, mock.Anything, "order-1", domain.StatusConfirmed).
					Return(nil, domain.ErrNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)
			rec := doRequest(router, http.MethodPut, "/api/orders/order-1/status", testCase.payload, true)
			assert.Equal(t, testCase.expectedCode, rec.Code)
		})
	}
}

func TestHandler_checkout(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.checkout.On("Checkout", mock.Anything, mock.Anything, mock.Anything).
			Return(completedPayment(), paidOrder(), nil).Once()

		rec := doRequest(router, http.MethodPost, "/api/payments/checkout",
			`{"order_id":"order-1","payment_method":"CASH","idempotency_key":"key-1"}`, true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"pay-1"`)
	})

	t.Run("already_finalized_maps_to_409", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.checkout.On("Checkout", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, nil, domain.ErrAlreadyFinalized).Once()

		rec := doRequest(router, http.MethodPost, "/api/payments/checkout",
			`{"order_id":"order-1","payment_method":"CASH","idempotency_key":"key-2"}`, true)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing_key_maps_to_400", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.checkout.On("Checkout", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, nil, domain.ErrValidation).Once()

		rec := doRequest(router, http.MethodPost, "/api/payments/checkout",
			`{"order_id":"order-1","payment_method":"CASH"}`, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_sessions(t *testing.T) {
	t.Run("resolve_token_needs_no_tenant_headers", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.sessions.On("ResolveToken", mock.Anything, "tok-1").
			Return(&domain.TableSession{ID: "sess-1", Token: "tok-1", IsActive: true}, nil).Once()

		rec := doRequest(router, http.MethodGet, "/api/qr-sessions/token/tok-1", "", false)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("duplicate_session_maps_to_409", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.sessions.On("Open", mock.Anything, mock.Anything, 4).
			Return(nil, domain.ErrConflict).Once()

		rec := doRequest(router, http.MethodPost, "/api/qr-sessions", `{"table_number":4}`, true)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("qrcode_returns_png", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.sessions.On("QRCodePNG", mock.Anything, mock.Anything, "sess-1").
			Return([]byte{0x89, 0x50, 0x4e, 0x47}, nil).Once()

		rec := doRequest(router, http.MethodGet, "/api/qr-sessions/sess-1/qrcode", "", true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	})
}

func TestHandler_productRoleGate(t *testing.T) {
	router, m := setupTestRouter(t)
	m.catalog.On("CreateProduct", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ErrUnauthorized).Once()

	rec := doRequest(router, http.MethodPost, "/api/products", `{"name":"Pad Thai","price":"60.00"}`, true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
