package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/theater-ticketing/internal/model"
)

// SaleRepo converts holds into sales and reads sales back.
type SaleRepo struct {
	db *sql.DB
}

// NewSaleRepo returns a new SaleRepo bound to the given database.
func NewSaleRepo(db *sql.DB) *SaleRepo { return &SaleRepo{db: db} }

// ConfirmHold turns an active, unexpired hold into a sale in one
// transaction.  Held seat rows are locked first and the hold row second, the
// same order the expiry sweep touches them.  The sale total is the total
// frozen on the hold.  A hold with no held seats, or one that expired before
// now, yields a *model.NotFoundError.
func (r *SaleRepo) ConfirmHold(ctx context.Context, holdID string, now time.Time) (model.Sale, error) {
	var sale model.Sale
	err := withRetry(ctx, func() error {
		var err error
		sale, err = r.confirmHold(ctx, holdID, now.UTC())
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Sale{}, err
		}
		return model.Sale{}, storageErr("confirm hold", err)
	}
	return sale, nil
}

func (r *SaleRepo) confirmHold(ctx context.Context, holdID string, now time.Time) (model.Sale, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Sale{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM seats WHERE hold_id = ? AND status = 'HELD' ORDER BY id FOR UPDATE`,
		holdID,
	)
	if err != nil {
		return model.Sale{}, err
	}
	seatIDs, err := scanIDs(rows)
	if err != nil {
		return model.Sale{}, err
	}
	if len(seatIDs) == 0 {
		return model.Sale{}, &model.NotFoundError{Resource: "hold"}
	}

	sale := model.Sale{HoldID: holdID, SeatIDs: seatIDs, CreatedAt: now}
	err = tx.QueryRowContext(ctx,
		`SELECT holder_name, holder_contact, total_cents FROM holds
		 WHERE id = ? AND status = 'ACTIVE' AND expires_at >= ? FOR UPDATE`,
		holdID, now,
	).Scan(&sale.Buyer.Name, &sale.Buyer.Contact, &sale.TotalCents)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Sale{}, &model.NotFoundError{Resource: "hold"}
	}
	if err != nil {
		return model.Sale{}, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sales (hold_id, buyer_name, buyer_contact, total_cents, created_at) VALUES (?, ?, ?, ?, ?)`,
		holdID, sale.Buyer.Name, sale.Buyer.Contact, sale.TotalCents, now,
	)
	if err != nil {
		return model.Sale{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Sale{}, err
	}
	sale.ID = uint64(id)

	if _, err = tx.ExecContext(ctx,
		`UPDATE seats SET status = 'SOLD', sale_id = ?, hold_id = NULL WHERE hold_id = ? AND status = 'HELD'`,
		sale.ID, holdID,
	); err != nil {
		return model.Sale{}, err
	}
	if _, err = tx.ExecContext(ctx, `UPDATE holds SET status = 'CONFIRMED' WHERE id = ?`, holdID); err != nil {
		return model.Sale{}, err
	}
	if err = tx.Commit(); err != nil {
		return model.Sale{}, err
	}
	committed = true
	return sale, nil
}

// GetSale returns the sale with the given id and the seats it sold.
func (r *SaleRepo) GetSale(ctx context.Context, id uint64) (model.Sale, error) {
	var s model.Sale
	err := r.db.QueryRowContext(ctx,
		`SELECT id, hold_id, buyer_name, buyer_contact, total_cents, created_at FROM sales WHERE id = ?`,
		id,
	).Scan(&s.ID, &s.HoldID, &s.Buyer.Name, &s.Buyer.Contact, &s.TotalCents, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Sale{}, &model.NotFoundError{Resource: "sale"}
	}
	if err != nil {
		return model.Sale{}, storageErr("get sale", err)
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM seats WHERE sale_id = ? ORDER BY id`, id)
	if err != nil {
		return model.Sale{}, storageErr("get sale seats", err)
	}
	if s.SeatIDs, err = scanIDs(rows); err != nil {
		return model.Sale{}, storageErr("get sale seats", err)
	}
	return s, nil
}
