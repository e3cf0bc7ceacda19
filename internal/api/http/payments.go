package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"pointofsale/internal/service"
)

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var payload struct {
		OrderID        string `json:"order_id"`
		PaymentMethod  string `json:"payment_method"`
		IdempotencyKey string `json:"idempotency_key"`
		PromotionCode  string `json:"promotion_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	payment, order, err := h.Checkout.Checkout(r.Context(), scope, service.CheckoutInput{
		OrderID:        payload.OrderID,
		PaymentMethod:  payload.PaymentMethod,
		IdempotencyKey: payload.IdempotencyKey,
		PromotionCode:  payload.PromotionCode,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"payment": payment,
		"order":   order,
	})
}

func (h *Handler) getPayment(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payment, err := h.Checkout.GetPayment(r.Context(), scope, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}
