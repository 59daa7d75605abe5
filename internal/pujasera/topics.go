package pujasera

const (
	TopicOrderQueued = "pujasera.order.queued"
	TopicTenantReady = "pujasera.tenant.ready"
)

// Partition key = id antrean/transaksi, supaya event 1 order maintain urutan.
func PartitionKey(id string) []byte { return []byte(id) }
