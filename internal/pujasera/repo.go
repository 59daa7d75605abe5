package pujasera

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// ActiveTransactions: semua transaksi berstatus Diproses di satu pujasera,
// urut naik berdasarkan created_at (urutan tampil dapur).
func (r *Repo) ActiveTransactions(ctx context.Context, pujaseraID string) ([]*Transaction, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, pujasera_id, pujasera_group_slug, receipt_number,
		       customer_id, customer_name, table_id, status, created_at
		FROM transactions
		WHERE pujasera_id = $1 AND status = $2
		ORDER BY created_at`, pujaseraID, StatusDiproses)
	if err != nil {
		return nil, err
	}
	txs, err := scanTransactions(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachDetails(ctx, txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// CustomerHistory: riwayat pesanan satu pelanggan lintas semua tenant dalam
// satu grup pujasera, terbaru dulu, dibatasi limit (tanpa pagination & cache).
func (r *Repo) CustomerHistory(ctx context.Context, groupSlug, customerID string, limit int) ([]*Transaction, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, pujasera_id, pujasera_group_slug, receipt_number,
		       customer_id, customer_name, table_id, status, created_at
		FROM transactions
		WHERE pujasera_group_slug = $1 AND customer_id = $2
		ORDER BY created_at DESC
		LIMIT $3`, groupSlug, customerID, limit)
	if err != nil {
		return nil, err
	}
	txs, err := scanTransactions(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachDetails(ctx, txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// MarkTenantReady: set entri satu tenant di transaksi menjadi Siap Diambil.
// Upsert satu baris (transaction_id, store_id) — merge per-field, bukan
// overwrite seluruh map, jadi dua tenant yang update bersamaan tidak saling
// menimpa. Idempotent: re-mark tenant yang sudah siap tetap sukses.
func (r *Repo) MarkTenantReady(ctx context.Context, pujaseraID, transactionID, tenantID string) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status string
	err = tx.QueryRow(ctx, `
		SELECT status FROM transactions
		WHERE id = $1 AND pujasera_id = $2`, transactionID, pujaseraID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: transaksi %s", ErrNotFound, transactionID)
	}
	if err != nil {
		return err
	}

	var n int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM transaction_items
		WHERE transaction_id = $1 AND store_id = $2`, transactionID, tenantID).Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: tenant %s tidak punya item di transaksi ini", ErrNotFound, tenantID)
	}

	// Konsultasi tabel transisi; entri belum ada = Diproses.
	cur := TenantDiproses
	err = tx.QueryRow(ctx, `
		SELECT status FROM transaction_tenant_status
		WHERE transaction_id = $1 AND store_id = $2`, transactionID, tenantID).Scan(&cur)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if !CanTransition(cur, TenantSiapDiambil) {
		return fmt.Errorf("status tenant %s tidak bisa berubah dari %q ke %q", tenantID, cur, TenantSiapDiambil)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transaction_tenant_status(transaction_id, store_id, status, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (transaction_id, store_id)
		DO UPDATE SET status = EXCLUDED.status, updated_at = now()`,
		transactionID, tenantID, TenantSiapDiambil)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// UpdateCustomerAddress: update in-place alamat pelanggan di bawah satu store.
// Tidak membuat record baru; baris tidak ada -> ErrNotFound.
// Address boleh string kosong (menghapus alamat).
func (r *Repo) UpdateCustomerAddress(ctx context.Context, storeID, customerID, address string) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE customers SET address = $3, updated_at = now()
		WHERE store_id = $1 AND id = $2`, storeID, customerID, address)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: pelanggan %s di store %s", ErrNotFound, customerID, storeID)
	}
	return nil
}

func scanTransactions(rows pgx.Rows) ([]*Transaction, error) {
	defer rows.Close()
	var out []*Transaction
	for rows.Next() {
		t := &Transaction{ItemsStatus: map[string]TenantStatus{}}
		if err := rows.Scan(&t.ID, &t.PujaseraID, &t.PujaseraGroupSlug, &t.ReceiptNumber,
			&t.CustomerID, &t.CustomerName, &t.TableID, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// attachDetails memuat item & status per-tenant untuk sekumpulan transaksi.
func (r *Repo) attachDetails(ctx context.Context, txs []*Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(txs))
	byID := make(map[string]*Transaction, len(txs))
	for _, t := range txs {
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}

	rows, err := r.DB.Query(ctx, `
		SELECT transaction_id, product_id, product_name, store_id, quantity, COALESCE(notes, ''), price
		FROM transaction_items
		WHERE transaction_id = ANY($1)
		ORDER BY id`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var txID string
		var it CartItem
		if err := rows.Scan(&txID, &it.ProductID, &it.ProductName, &it.StoreID,
			&it.Quantity, &it.Notes, &it.Price); err != nil {
			rows.Close()
			return err
		}
		if t, ok := byID[txID]; ok {
			t.Items = append(t.Items, it)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.DB.Query(ctx, `
		SELECT transaction_id, store_id, status
		FROM transaction_tenant_status
		WHERE transaction_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var txID, storeID string
		var st TenantStatus
		if err := rows.Scan(&txID, &storeID, &st); err != nil {
			return err
		}
		if t, ok := byID[txID]; ok {
			t.ItemsStatus[storeID] = st
		}
	}
	return rows.Err()
}
