package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ERA5758/Paguyuban/internal/kafka"
	"github.com/ERA5758/Paguyuban/internal/pujasera"
	"github.com/ERA5758/Paguyuban/internal/queue"
	"github.com/ERA5758/Paguyuban/internal/redisx"
)

type QueueWriter interface {
	Enqueue(ctx context.Context, item queue.WorkItem) (string, error)
}

type CustomerStore interface {
	CustomerHistory(ctx context.Context, groupSlug, customerID string, limit int) ([]*pujasera.Transaction, error)
	UpdateCustomerAddress(ctx context.Context, storeID, customerID, address string) error
}

type EventPublisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type OrdersHandler struct {
	Queue    QueueWriter
	Store    CustomerStore
	Producer EventPublisher
	Redis    *redis.Client
	Service  string
	Dispatch string // mode default dari config
}

type CreateOrderReq struct {
	pujasera.OrderPayload
	// Override mode dispatch per request; kosong = default service.
	Dispatch string `json:"dispatch,omitempty"`
}

type CreateOrderResp struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	QueueID    string `json:"queueId"`
	Idempotent bool   `json:"idempotent,omitempty"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/api/catalog/order", h.createOrder)
	r.Get("/api/customer-orders", h.customerOrders)
	r.Post("/api/customer-profile", h.updateCustomerProfile)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	dispatch := h.Dispatch
	if req.Dispatch != "" {
		dispatch = req.Dispatch
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Fast-path idempotency via Redis bila klien mengirim externalId.
	idemKey := ""
	if req.ExternalID != "" {
		idemKey = fmt.Sprintf(redisx.KeyIdemCatalogOrder, req.ExternalID)
		if id, err := h.Redis.Get(ctx, idemKey).Result(); err == nil && id != "" {
			writeJSON(w, http.StatusOK, CreateOrderResp{
				Success:    true,
				Message:    intakeMessage(queue.TypeFor(dispatch), req.PaymentMethod),
				QueueID:    id,
				Idempotent: true,
			})
			return
		}
	}

	item := queue.NewWorkItem(dispatch, req.OrderPayload)
	queueID, err := h.Queue.Enqueue(ctx, item)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if idemKey != "" {
		_ = h.Redis.Set(ctx, idemKey, queueID, redisx.TTLIdempotency).Err()
	}

	ev := pujasera.NewEnvelope(pujasera.EventOrderQueued, h.Service,
		r.Header.Get("X-Request-Id"), queueID)
	ev.Payload = kafkax.MustMarshal(pujasera.OrderQueuedPayload{
		QueueID:        queueID,
		QueueType:      item.Type,
		PujaseraID:     req.StoreID,
		CustomerID:     req.Customer.ID,
		ItemCount:      len(req.Cart),
		TenantStoreIDs: req.TenantStoreIDs(),
	})
	h.Producer.Publish(pujasera.PartitionKey(queueID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(pujasera.EventOrderQueued)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)

	writeJSON(w, http.StatusOK, CreateOrderResp{
		Success: true,
		Message: intakeMessage(item.Type, req.PaymentMethod),
		QueueID: queueID,
	})
}

// Pesan sukses: dispatch individual selalu sama; dispatch aggregate
// tergantung metode pembayaran.
func intakeMessage(queueType string, pm pujasera.PaymentMethod) string {
	if queueType == queue.TypeOrderIndividual {
		return "Pesanan Anda telah berhasil dikirim ke masing-masing tenant."
	}
	if pm == pujasera.PaymentQRIS {
		return "Pesanan diterima. Silakan selesaikan pembayaran melalui QRIS."
	}
	return "Pesanan diterima. Silakan lakukan pembayaran di kasir tenant."
}

func (h *OrdersHandler) customerOrders(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customerId")
	groupSlug := r.URL.Query().Get("pujaseraGroupSlug")
	if customerID == "" || groupSlug == "" {
		err := fmt.Errorf("%w: customerId dan pujaseraGroupSlug diperlukan", pujasera.ErrMissingParams)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	txs, err := h.Store.CustomerHistory(ctx, groupSlug, customerID, 20)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if txs == nil {
		txs = []*pujasera.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

type updateProfileReq struct {
	StoreID    string `json:"storeId"`
	CustomerID string `json:"customerId"`
	// RawMessage: alamat wajib string JSON (boleh kosong untuk menghapus);
	// tipe lain ditolak, tidak di-coerce.
	Address json.RawMessage `json:"address"`
}

func (h *OrdersHandler) updateCustomerProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.StoreID == "" || req.CustomerID == "" {
		err := fmt.Errorf("%w: storeId dan customerId diperlukan", pujasera.ErrMissingParams)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	// json.Unmarshal membiarkan null lolos ke string; tolak eksplisit.
	var address string
	if req.Address == nil || string(req.Address) == "null" ||
		json.Unmarshal(req.Address, &address) != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": pujasera.ErrInvalidAddress.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// Error storage (termasuk pelanggan tidak ditemukan) diteruskan apa adanya.
	if err := h.Store.UpdateCustomerAddress(ctx, req.StoreID, req.CustomerID, address); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Alamat pelanggan berhasil diperbarui.",
	})
}
