package pujasera

import (
	"testing"
	"time"
)

func tx(id string, status TransactionStatus, createdAt time.Time, items []CartItem, itemsStatus map[string]TenantStatus) *Transaction {
	return &Transaction{
		ID:          id,
		PujaseraID:  "pj-1",
		Status:      status,
		Items:       items,
		ItemsStatus: itemsStatus,
		CreatedAt:   createdAt,
	}
}

func TestSliceRestrictsToViewerStore(t *testing.T) {
	now := time.Now()
	txs := []*Transaction{
		tx("tx-1", StatusDiproses, now, []CartItem{
			{ProductID: "p1", StoreID: "tenant-a", Quantity: 2},
			{ProductID: "p2", StoreID: "tenant-b", Quantity: 1},
		}, nil),
	}

	slices := Slice(txs, Viewer{Role: RoleKitchen, StoreID: "tenant-a"})
	if len(slices) != 1 {
		t.Fatalf("slices = %d, want 1", len(slices))
	}
	s := slices[0]
	if s.TenantStoreID != "tenant-a" {
		t.Errorf("tenant = %q, want tenant-a", s.TenantStoreID)
	}
	if len(s.Items) != 1 || s.Items[0].StoreID != "tenant-a" || s.Items[0].Quantity != 2 {
		t.Errorf("items = %+v, want hanya item tenant-a qty 2", s.Items)
	}
	if s.Status != TenantDiproses {
		t.Errorf("status = %q, want default Diproses", s.Status)
	}

	// Tenant B melihat potongannya sendiri.
	slices = Slice(txs, Viewer{Role: RoleKitchen, StoreID: "tenant-b"})
	if len(slices) != 1 || len(slices[0].Items) != 1 || slices[0].Items[0].Quantity != 1 {
		t.Fatalf("slice tenant-b = %+v, want satu item qty 1", slices)
	}
}

func TestSliceSkipsTerminalTransactions(t *testing.T) {
	now := time.Now()
	items := []CartItem{{ProductID: "p1", StoreID: "tenant-a", Quantity: 1}}
	for _, status := range []TransactionStatus{StatusSelesai, StatusDibatalkan} {
		txs := []*Transaction{tx("tx-1", status, now, items, nil)}
		if got := Slice(txs, Viewer{Role: RoleAdmin, StoreID: "tenant-a"}); len(got) != 0 {
			t.Errorf("status %q menghasilkan %d slice, want 0", status, len(got))
		}
	}
}

func TestSliceSkipsEmptySubset(t *testing.T) {
	txs := []*Transaction{
		tx("tx-1", StatusDiproses, time.Now(), []CartItem{{ProductID: "p1", StoreID: "tenant-b"}}, nil),
	}
	if got := Slice(txs, Viewer{Role: RoleKitchen, StoreID: "tenant-a"}); len(got) != 0 {
		t.Fatalf("slices = %d, want 0 (tidak ada item tenant-a)", len(got))
	}
}

func TestSliceRoleCapability(t *testing.T) {
	txs := []*Transaction{
		tx("tx-1", StatusDiproses, time.Now(), []CartItem{{ProductID: "p1", StoreID: "tenant-a"}}, nil),
	}
	for _, role := range []Role{RoleKasir, RoleOwner, Role("")} {
		if got := Slice(txs, Viewer{Role: role, StoreID: "tenant-a"}); got != nil {
			t.Errorf("role %q mendapat slice, want nil", role)
		}
	}
	for _, role := range []Role{RoleAdmin, RoleKitchen} {
		if got := Slice(txs, Viewer{Role: role, StoreID: "tenant-a"}); len(got) != 1 {
			t.Errorf("role %q mendapat %d slice, want 1", role, len(got))
		}
	}
}

func TestSliceFIFOOrdering(t *testing.T) {
	base := time.Now()
	items := []CartItem{{ProductID: "p1", StoreID: "tenant-a"}}
	txs := []*Transaction{
		tx("baru", StatusDiproses, base.Add(2*time.Minute), items, nil),
		tx("lama", StatusDiproses, base, items, nil),
		tx("tengah", StatusDiproses, base.Add(time.Minute), items, nil),
	}
	slices := Slice(txs, Viewer{Role: RoleKitchen, StoreID: "tenant-a"})
	if len(slices) != 3 {
		t.Fatalf("slices = %d, want 3", len(slices))
	}
	want := []string{"lama", "tengah", "baru"}
	for i, id := range want {
		if slices[i].Parent.ID != id {
			t.Errorf("urutan[%d] = %s, want %s", i, slices[i].Parent.ID, id)
		}
	}
}

func TestSliceReadsTenantStatus(t *testing.T) {
	txs := []*Transaction{
		tx("tx-1", StatusDiproses, time.Now(),
			[]CartItem{{ProductID: "p1", StoreID: "tenant-a"}, {ProductID: "p2", StoreID: "tenant-b"}},
			map[string]TenantStatus{"tenant-a": TenantSiapDiambil}),
	}
	slices := Slice(txs, Viewer{Role: RoleKitchen, StoreID: "tenant-a"})
	if len(slices) != 1 || slices[0].Status != TenantSiapDiambil {
		t.Fatalf("slice = %+v, want status Siap Diambil", slices)
	}
	// Entri tenant-b tidak ada di map -> default Diproses.
	slices = Slice(txs, Viewer{Role: RoleKitchen, StoreID: "tenant-b"})
	if len(slices) != 1 || slices[0].Status != TenantDiproses {
		t.Fatalf("slice = %+v, want status default Diproses", slices)
	}
}

func TestGroupSlices(t *testing.T) {
	base := time.Now()
	txs := []*Transaction{
		tx("tx-1", StatusDiproses, base, []CartItem{{StoreID: "tenant-a"}}, nil),
		tx("tx-2", StatusDiproses, base.Add(time.Minute), []CartItem{{StoreID: "tenant-a"}},
			map[string]TenantStatus{"tenant-a": TenantSiapDiambil}),
		tx("tx-3", StatusDiproses, base.Add(2*time.Minute), []CartItem{{StoreID: "tenant-a"}}, nil),
	}
	board := GroupSlices(Slice(txs, Viewer{Role: RoleAdmin, StoreID: "tenant-a"}))
	if board.CountDiproses != 2 || board.CountSiapDiambil != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", board.CountDiproses, board.CountSiapDiambil)
	}
	if len(board.Diproses) != 2 || len(board.SiapDiambil) != 1 {
		t.Fatalf("groups = %d/%d, want 2/1", len(board.Diproses), len(board.SiapDiambil))
	}
}
