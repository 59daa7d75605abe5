package pujasera

import "testing"

func TestTenantStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to TenantStatus
		want     bool
	}{
		{TenantDiproses, TenantSiapDiambil, true},
		{TenantSiapDiambil, TenantSiapDiambil, true}, // idempotent
		{TenantSiapDiambil, TenantDiproses, false},   // tidak bisa mundur
		{TenantDiproses, TenantDiproses, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTransactionStatusActive(t *testing.T) {
	if !StatusDiproses.Active() {
		t.Error("Diproses harus aktif")
	}
	for _, s := range []TransactionStatus{StatusSelesai, StatusDibatalkan} {
		if s.Active() {
			t.Errorf("%q tidak boleh aktif", s)
		}
	}
}

func TestRoleKitchenCapability(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleKitchen} {
		if !r.CanViewKitchenSlices() {
			t.Errorf("role %q harus bisa melihat slice dapur", r)
		}
	}
	for _, r := range []Role{RoleKasir, RoleOwner, Role("random")} {
		if r.CanViewKitchenSlices() {
			t.Errorf("role %q tidak boleh melihat slice dapur", r)
		}
	}
}
