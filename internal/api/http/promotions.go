package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"pointofsale/internal/domain"
)

func (h *Handler) createPromotion(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var promo domain.Promotion
	if err := json.NewDecoder(r.Body).Decode(&promo); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if err := h.Promotions.Create(r.Context(), scope, &promo); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, promo)
}

func (h *Handler) getPromotion(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	promo, err := h.Promotions.Get(r.Context(), scope, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, promo)
}

func (h *Handler) listPromotions(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	promos, err := h.Promotions.List(r.Context(), scope)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, promos)
}

func (h *Handler) updatePromotion(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var promo domain.Promotion
	if err := json.NewDecoder(r.Body).Decode(&promo); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	promo.ID = mux.Vars(r)["id"]

	if err := h.Promotions.Update(r.Context(), scope, &promo); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, promo)
}

func (h *Handler) deletePromotion(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Promotions.Delete(r.Context(), scope, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// evaluatePromotion previews a code against a subtotal without consuming
// usage; checkout applies it for real.
func (h *Handler) evaluatePromotion(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var payload struct {
		Code     string          `json:"code"`
		Subtotal decimal.Decimal `json:"subtotal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	promo, discount, err := h.Promotions.Evaluate(r.Context(), scope, payload.Code, payload.Subtotal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"promotion":       promo,
		"discount_amount": discount,
	})
}
