package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"pointofsale/internal/domain"
	"pointofsale/internal/service"
)

type Handler struct {
	Catalog    service.CatalogServiceInterface
	Sessions   service.SessionServiceInterface
	Orders     service.OrderServiceInterface
	Checkout   service.CheckoutServiceInterface
	Promotions service.PromotionServiceInterface
}

func NewHandler(catalog service.CatalogServiceInterface, sessions service.SessionServiceInterface,
	orders service.OrderServiceInterface, checkout service.CheckoutServiceInterface,
	promotions service.PromotionServiceInterface) *Handler {
	return &Handler{
		Catalog:    catalog,
		Sessions:   sessions,
		Orders:     orders,
		Checkout:   checkout,
		Promotions: promotions,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.health).Methods("GET")

	r.HandleFunc("/api/products", h.createProduct).Methods("POST")
	r.HandleFunc("/api/products", h.listProducts).Methods("GET")
	r.HandleFunc("/api/products/{id}", h.getProduct).Methods("GET")
	r.HandleFunc("/api/products/{id}", h.updateProduct).Methods("PUT")
	r.HandleFunc("/api/products/{id}", h.deleteProduct).Methods("DELETE")

	r.HandleFunc("/api/qr-sessions", h.openSession).Methods("POST")
	r.HandleFunc("/api/qr-sessions", h.listSessions).Methods("GET")
	r.HandleFunc("/api/qr-sessions/token/{token}", h.resolveSessionToken).Methods("GET")
	r.HandleFunc("/api/qr-sessions/{id}/close", h.closeSession).Methods("PUT")
	r.HandleFunc("/api/qr-sessions/{id}/qrcode", h.sessionQRCode).Methods("GET")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.updateOrderStatus).Methods("PUT")
	r.HandleFunc("/api/orders/{id}/items", h.addOrderItems).Methods("POST")
	r.HandleFunc("/api/orders/{id}/items/{itemId}", h.removeOrderItem).Methods("DELETE")
	r.HandleFunc("/api/orders/{id}/items/{itemId}/status", h.updateItemStatus).Methods("PUT")

	r.HandleFunc("/api/payments/checkout", h.checkout).Methods("POST")
	r.HandleFunc("/api/payments/{id}", h.getPayment).Methods("GET")

	r.HandleFunc("/api/promotions", h.createPromotion).Methods("POST")
	r.HandleFunc("/api/promotions", h.listPromotions).Methods("GET")
	r.HandleFunc("/api/promotions/evaluate", h.evaluatePromotion).Methods("POST")
	r.HandleFunc("/api/promotions/{id}", h.getPromotion).Methods("GET")
	r.HandleFunc("/api/promotions/{id}", h.updatePromotion).Methods("PUT")
	r.HandleFunc("/api/promotions/{id}", h.deletePromotion).Methods("DELETE")
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// scopeFrom reads the tenant headers the gateway injects after
// authentication. Organization and branch are mandatory for staff routes.
func scopeFrom(r *http.Request) (domain.Scope, error) {
	scope := domain.Scope{
		OrganizationID: r.Header.Get("X-Organization-ID"),
		BranchID:       r.Header.Get("X-Branch-ID"),
		UserID:         r.Header.Get("X-User-ID"),
		Role:           r.Header.Get("X-User-Role"),
	}
	if scope.OrganizationID == "" || scope.BranchID == "" {
		return scope, errors.New("missing X-Organization-ID or X-Branch-ID header")
	}
	return scope, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrAlreadyFinalized):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidSelection),
		errors.Is(err, domain.ErrInvalidPricing),
		errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrSessionClosed),
		errors.Is(err, domain.ErrPromotionInvalid),
		errors.Is(err, domain.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
