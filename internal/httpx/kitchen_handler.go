package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ERA5758/Paguyuban/internal/auth"
	kafkax "github.com/ERA5758/Paguyuban/internal/kafka"
	"github.com/ERA5758/Paguyuban/internal/pujasera"
)

type KitchenStore interface {
	ActiveTransactions(ctx context.Context, pujaseraID string) ([]*pujasera.Transaction, error)
	MarkTenantReady(ctx context.Context, pujaseraID, transactionID, tenantID string) error
}

type KitchenHandler struct {
	Store    KitchenStore
	Verifier auth.Verifier
	Producer EventPublisher
	Service  string
}

func (h *KitchenHandler) Register(r *chi.Mux) {
	r.Get("/api/kitchen/board", h.board)
	r.Post("/api/kitchen/update-status", h.updateStatus)
}

func bearerToken(r *http.Request) string {
	v := r.Header.Get("Authorization")
	if len(v) > 7 && strings.EqualFold(v[:7], "Bearer ") {
		return strings.TrimSpace(v[7:])
	}
	return ""
}

func (h *KitchenHandler) verify(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	token := bearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": pujasera.ErrUnauthorized.Error()})
		return auth.Claims{}, false
	}
	claims, err := h.Verifier.Verify(r.Context(), token)
	if errors.Is(err, pujasera.ErrUnauthorized) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return auth.Claims{}, false
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return auth.Claims{}, false
	}
	return claims, true
}

// board: proyeksi murni transaksi aktif -> slice per-tenant viewer,
// dihitung ulang tiap request (tanpa cache, status harus selalu terkini).
func (h *KitchenHandler) board(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.verify(w, r)
	if !ok {
		return
	}
	pujaseraID := r.URL.Query().Get("pujaseraId")
	if pujaseraID == "" {
		err := fmt.Errorf("%w: pujaseraId diperlukan", pujasera.ErrMissingParams)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	txs, err := h.Store.ActiveTransactions(ctx, pujaseraID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	viewer := pujasera.Viewer{
		Role:      claims.Role,
		StoreID:   claims.StoreID,
		StoreName: claims.StoreName,
	}
	writeJSON(w, http.StatusOK, pujasera.GroupSlices(pujasera.Slice(txs, viewer)))
}

type updateStatusReq struct {
	TenantID            string `json:"tenantId"`
	PujaseraID          string `json:"pujaseraId"`
	ParentTransactionID string `json:"parentTransactionId"`
}

func (h *KitchenHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	_, ok := h.verify(w, r)
	if !ok {
		return
	}

	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.TenantID == "" || req.PujaseraID == "" || req.ParentTransactionID == "" {
		err := fmt.Errorf("%w: tenantId, pujaseraId, dan parentTransactionId diperlukan", pujasera.ErrMissingParams)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.Store.MarkTenantReady(ctx, req.PujaseraID, req.ParentTransactionID, req.TenantID)
	if errors.Is(err, pujasera.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	ev := pujasera.NewEnvelope(pujasera.EventTenantOrderReady, h.Service,
		r.Header.Get("X-Request-Id"), req.ParentTransactionID)
	ev.Payload = kafkax.MustMarshal(pujasera.TenantOrderReadyPayload{
		TransactionID: req.ParentTransactionID,
		PujaseraID:    req.PujaseraID,
		TenantStoreID: req.TenantID,
		Status:        pujasera.TenantSiapDiambil,
	})
	h.Producer.Publish(pujasera.PartitionKey(req.ParentTransactionID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(pujasera.EventTenantOrderReady)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Status pesanan tenant diperbarui.",
	})
}
