package pujasera

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderQueued      = "PujaseraOrderQueued"
	EventTenantOrderReady = "TenantOrderReady"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "pujasera-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // id antrean / transaksi
	Payload       json.RawMessage `json:"payload"`
}

// Payload diisi pemanggil setelah konstruksi (lihat pemakaian di httpx).
func NewEnvelope(eventType, producer, traceID, correlationID string) Envelope {
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		TraceID:       traceID,
		CorrelationID: correlationID,
	}
}

// ---- Payload tipe per event ----

type OrderQueuedPayload struct {
	QueueID        string   `json:"queue_id"`
	QueueType      string   `json:"queue_type"` // pujasera-order | pujasera-order-individual
	PujaseraID     string   `json:"pujasera_id"`
	CustomerID     string   `json:"customer_id"`
	ItemCount      int      `json:"item_count"`
	TenantStoreIDs []string `json:"tenant_store_ids"`
}

type TenantOrderReadyPayload struct {
	TransactionID string       `json:"transaction_id"`
	PujaseraID    string       `json:"pujasera_id"`
	TenantStoreID string       `json:"tenant_store_id"`
	Status        TenantStatus `json:"status"`
}
