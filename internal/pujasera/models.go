package pujasera

import "time"

type Customer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CartItem selalu anak dari satu order/transaksi; tidak pernah disimpan sendiri.
type CartItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	StoreID     string `json:"storeId"` // tenant pemilik item
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
	Price       int    `json:"price"` // harga satuan, rupiah
}

// OrderPayload adalah submission pelanggan dari katalog.
// Immutable setelah masuk antrean; worker eksternal yang memecahnya
// menjadi transaksi per-tenant.
type OrderPayload struct {
	StoreID           string         `json:"storeId"` // id pujasera (parent)
	PujaseraGroupSlug string         `json:"pujaseraGroupSlug,omitempty"`
	Customer          *Customer      `json:"customer"`
	Cart              []CartItem     `json:"cart"`
	PaymentMethod     PaymentMethod  `json:"paymentMethod"`
	DeliveryOption    DeliveryOption `json:"deliveryOption"`
	DeliveryAddress   string         `json:"deliveryAddress,omitempty"`
	TableID           string         `json:"tableId,omitempty"`
	// ExternalID opsional dari klien untuk idempotency resubmit.
	ExternalID    string `json:"externalId,omitempty"`
	IsFromCatalog bool   `json:"isFromCatalog,omitempty"`
}

// Transaction adalah bentuk order setelah diproses worker.
// ItemsStatus dimutasi satu entri tenant per panggilan; entri tenant lain
// dan Status keseluruhan tidak boleh ikut tertimpa.
type Transaction struct {
	ID                string                  `json:"id"`
	PujaseraID        string                  `json:"pujaseraId"`
	PujaseraGroupSlug string                  `json:"pujaseraGroupSlug"`
	ReceiptNumber     int                     `json:"receiptNumber"`
	CustomerID        string                  `json:"customerId"`
	CustomerName      string                  `json:"customerName"`
	TableID           *string                 `json:"tableId,omitempty"`
	Status            TransactionStatus       `json:"status"`
	Items             []CartItem              `json:"items"`
	ItemsStatus       map[string]TenantStatus `json:"itemsStatus,omitempty"`
	CreatedAt         time.Time               `json:"createdAt"`
}

// TenantItemStatus mengembalikan status tenant di transaksi ini,
// default Diproses bila worker belum menulis entrinya.
func (t *Transaction) TenantItemStatus(storeID string) TenantStatus {
	if st, ok := t.ItemsStatus[storeID]; ok {
		return st
	}
	return TenantDiproses
}
