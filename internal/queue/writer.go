package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ERA5758/Paguyuban/internal/pujasera"
)

// Mode dispatch order katalog.
const (
	DispatchIndividual = "individual" // tiap tenant diproses terpisah
	DispatchAggregate  = "aggregate"  // satu pesanan utuh untuk kasir pujasera
)

// Discriminator item antrean; dibaca worker eksternal.
const (
	TypeOrderAggregate  = "pujasera-order"
	TypeOrderIndividual = "pujasera-order-individual"
)

// Nama collection per mode dispatch.
const (
	collAggregate  = "PujaseraQueue"
	collIndividual = "PujaseraIndividualQueue"
)

// WorkItem membungkus satu order untuk dikonsumsi worker eksternal.
// Insert-only; lifecycle setelah itu milik worker.
type WorkItem struct {
	ID        string                `bson:"_id,omitempty" json:"id"`
	Type      string                `bson:"type" json:"type"`
	Payload   pujasera.OrderPayload `bson:"payload" json:"payload"`
	CreatedAt time.Time             `bson:"createdAt" json:"createdAt"`
}

func TypeFor(dispatch string) string {
	if dispatch == DispatchAggregate {
		return TypeOrderAggregate
	}
	return TypeOrderIndividual
}

func collectionFor(typ string) string {
	if typ == TypeOrderAggregate {
		return collAggregate
	}
	return collIndividual
}

// NewWorkItem menandai payload sebagai order katalog dan memberi id baru.
// CreatedAt diisi Enqueue (timestamp server, bukan dari klien).
func NewWorkItem(dispatch string, p pujasera.OrderPayload) WorkItem {
	p.IsFromCatalog = true
	return WorkItem{
		ID:      uuid.NewString(),
		Type:    TypeFor(dispatch),
		Payload: p,
	}
}

type Writer struct{ db *mongo.Database }

func NewWriter(db *mongo.Database) *Writer { return &Writer{db: db} }

// Enqueue: pure insert, tanpa read-modify-write. Gagal storage -> ErrStorage,
// tanpa partial write.
func (w *Writer) Enqueue(ctx context.Context, item WorkItem) (string, error) {
	item.CreatedAt = time.Now().UTC()
	if _, err := w.db.Collection(collectionFor(item.Type)).InsertOne(ctx, item); err != nil {
		return "", fmt.Errorf("%w: %v", pujasera.ErrStorage, err)
	}
	return item.ID, nil
}
