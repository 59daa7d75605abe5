package pujasera

// Role pengguna dashboard. Enumerasi tertutup supaya kebijakan akses
// dapur bisa diaudit, bukan sekadar perbandingan string.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleKitchen Role = "kitchen"
	RoleKasir   Role = "kasir"
	RoleOwner   Role = "owner"
)

// CanViewKitchenSlices: hanya admin dan kitchen yang melihat tampilan dapur.
// Owner sengaja tidak termasuk (keputusan produk, lihat DESIGN.md).
func (r Role) CanViewKitchenSlices() bool {
	switch r {
	case RoleAdmin, RoleKitchen:
		return true
	}
	return false
}
