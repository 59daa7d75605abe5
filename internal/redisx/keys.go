package redisx

import "time"

const (
	// Idempotency enqueue order katalog: idem:catalog:order:{external_id} -> queue doc id
	KeyIdemCatalogOrder = "idem:catalog:order:%s"

	// Cache hasil verifikasi bearer token: authtoken:{sha} -> claims JSON
	KeyAuthToken = "authtoken:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLAuthToken   = 5 * time.Minute
)
