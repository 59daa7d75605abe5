package pujasera

import "sort"

// Viewer: siapa yang melihat tampilan dapur (dari claims token).
type Viewer struct {
	Role      Role
	StoreID   string // tenant store afiliasi viewer
	StoreName string
}

// TenantOrderSlice: potongan satu transaksi pujasera untuk satu dapur tenant.
// View turunan murni — dihitung ulang tiap pembacaan, tidak pernah disimpan.
type TenantOrderSlice struct {
	Parent          *Transaction `json:"parentTransaction"`
	TenantStoreID   string       `json:"tenantStoreId"`
	TenantStoreName string       `json:"tenantStoreName,omitempty"`
	Items           []CartItem   `json:"items"`
	Status          TenantStatus `json:"status"`
}

// Slice menghitung slice yang boleh dilihat viewer:
//  1. hanya transaksi berstatus Diproses;
//  2. hanya role dengan akses dapur, dibatasi item milik store viewer;
//  3. subset item kosong -> tidak ada slice;
//  4. status slice dari itemsStatus, default Diproses;
//  5. urut naik berdasarkan createdAt transaksi induk (FIFO dapur).
func Slice(txs []*Transaction, v Viewer) []TenantOrderSlice {
	if !v.Role.CanViewKitchenSlices() {
		return nil
	}

	var slices []TenantOrderSlice
	for _, tx := range txs {
		if !tx.Status.Active() {
			continue
		}
		var items []CartItem
		for _, it := range tx.Items {
			if it.StoreID == v.StoreID {
				items = append(items, it)
			}
		}
		if len(items) == 0 {
			continue
		}
		slices = append(slices, TenantOrderSlice{
			Parent:          tx,
			TenantStoreID:   v.StoreID,
			TenantStoreName: v.StoreName,
			Items:           items,
			Status:          tx.TenantItemStatus(v.StoreID),
		})
	}

	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Parent.CreatedAt.Before(slices[j].Parent.CreatedAt)
	})
	return slices
}

// KitchenBoard: slice terbagi dua tab dengan hitungan masing-masing.
type KitchenBoard struct {
	Diproses         []TenantOrderSlice `json:"diproses"`
	SiapDiambil      []TenantOrderSlice `json:"siapDiambil"`
	CountDiproses    int                `json:"countDiproses"`
	CountSiapDiambil int                `json:"countSiapDiambil"`
}

func GroupSlices(slices []TenantOrderSlice) KitchenBoard {
	b := KitchenBoard{
		Diproses:    []TenantOrderSlice{},
		SiapDiambil: []TenantOrderSlice{},
	}
	for _, s := range slices {
		switch s.Status {
		case TenantSiapDiambil:
			b.SiapDiambil = append(b.SiapDiambil, s)
		default:
			b.Diproses = append(b.Diproses, s)
		}
	}
	b.CountDiproses = len(b.Diproses)
	b.CountSiapDiambil = len(b.SiapDiambil)
	return b
}
