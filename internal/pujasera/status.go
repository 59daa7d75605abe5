package pujasera

// Status transaksi keseluruhan. Hanya Diproses yang masih aktif di dapur;
// status terminal (Selesai, Dibatalkan) tidak menghasilkan slice.
type TransactionStatus string

const (
	StatusDiproses   TransactionStatus = "Diproses"
	StatusSelesai    TransactionStatus = "Selesai"
	StatusDibatalkan TransactionStatus = "Dibatalkan"
)

func (s TransactionStatus) Active() bool { return s == StatusDiproses }

// Status per-tenant dalam satu transaksi (lihat itemsStatus di models.go).
type TenantStatus string

const (
	TenantDiproses    TenantStatus = "Diproses"
	TenantSiapDiambil TenantStatus = "Siap Diambil"
)

var validNext = map[TenantStatus]map[TenantStatus]bool{
	TenantDiproses: {TenantSiapDiambil: true},
	// re-mark siap -> siap diizinkan: handler harus idempotent
	TenantSiapDiambil: {TenantSiapDiambil: true},
}

func CanTransition(from, to TenantStatus) bool {
	return validNext[from][to]
}

type PaymentMethod string

const (
	PaymentKasir PaymentMethod = "kasir"
	PaymentQRIS  PaymentMethod = "qris"
)

type DeliveryOption string

const (
	DeliveryPickup   DeliveryOption = "pickup"
	DeliveryDelivery DeliveryOption = "delivery"
)
