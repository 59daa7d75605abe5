package pujasera

import (
	"fmt"
	"strings"
)

// Validate memeriksa kelengkapan submission sebelum masuk antrean.
func (p *OrderPayload) Validate() error {
	if p.StoreID == "" || p.Customer == nil || p.Customer.ID == "" ||
		p.PaymentMethod == "" || p.DeliveryOption == "" {
		return fmt.Errorf("%w: storeId, customer, paymentMethod, dan deliveryOption diperlukan", ErrInvalidOrder)
	}
	if len(p.Cart) == 0 {
		return fmt.Errorf("%w: keranjang kosong", ErrInvalidOrder)
	}
	if p.DeliveryOption == DeliveryDelivery && strings.TrimSpace(p.DeliveryAddress) == "" {
		return fmt.Errorf("%w: alamat pengiriman diperlukan untuk opsi pengiriman", ErrInvalidOrder)
	}
	return nil
}

// TenantStoreIDs mengembalikan daftar tenant unik di keranjang, urut kemunculan.
func (p *OrderPayload) TenantStoreIDs() []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range p.Cart {
		if it.StoreID == "" || seen[it.StoreID] {
			continue
		}
		seen[it.StoreID] = true
		out = append(out, it.StoreID)
	}
	return out
}
