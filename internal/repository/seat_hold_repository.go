package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/theater-ticketing/internal/model"
)

// SeatHoldRepo manages the holds table and the HELD state of seats.  A hold
// row owns the holder snapshot and the expiry; seats reference it through
// seats.hold_id.  All timestamps are UTC and supplied by the caller, the
// database clock is never consulted.
type SeatHoldRepo struct {
	db *sql.DB
}

// NewSeatHoldRepo returns a new SeatHoldRepo bound to the provided database.
func NewSeatHoldRepo(db *sql.DB) *SeatHoldRepo { return &SeatHoldRepo{db: db} }

// ApplyHold atomically reserves every seat in ids under a new hold.  The
// conditional update only touches AVAILABLE seats; if it changes fewer rows
// than requested the transaction is rolled back and the result lists the
// seats that were not available, with Applied = 0.  On success the hold's
// total is the sum of the zone prices of its seats.  ids must be distinct
// and non-empty.
func (r *SeatHoldRepo) ApplyHold(ctx context.Context, holdID string, ids []uint64, holder model.Holder, createdAt, expiresAt time.Time) (model.HoldApplyResult, error) {
	var out model.HoldApplyResult
	err := withRetry(ctx, func() error {
		var err error
		out, err = r.applyHold(ctx, holdID, ids, holder, createdAt, expiresAt)
		return err
	})
	if err != nil {
		return model.HoldApplyResult{}, storageErr("apply hold", err)
	}
	return out, nil
}

func (r *SeatHoldRepo) applyHold(ctx context.Context, holdID string, ids []uint64, holder model.Holder, createdAt, expiresAt time.Time) (model.HoldApplyResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.HoldApplyResult{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO holds (id, holder_name, holder_contact, total_cents, status, created_at, expires_at)
		 VALUES (?, ?, ?, 0, 'ACTIVE', ?, ?)`,
		holdID, holder.Name, holder.Contact, createdAt.UTC(), expiresAt.UTC(),
	); err != nil {
		return model.HoldApplyResult{}, err
	}

	in, args := inClause(ids, holdID)
	res, err := tx.ExecContext(ctx,
		`UPDATE seats SET status = 'HELD', hold_id = ? WHERE id IN (`+in+`) AND status = 'AVAILABLE'`,
		args...,
	)
	if err != nil {
		return model.HoldApplyResult{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.HoldApplyResult{}, err
	}
	if int(n) < len(ids) {
		// Seats that the update did not claim were taken by someone else.
		in, args := inClause(ids, holdID)
		rows, err := tx.QueryContext(ctx,
			`SELECT id FROM seats WHERE (hold_id IS NULL OR hold_id <> ?) AND id IN (`+in+`) ORDER BY id`,
			args...,
		)
		if err != nil {
			return model.HoldApplyResult{}, err
		}
		unavailable, err := scanIDs(rows)
		if err != nil {
			return model.HoldApplyResult{}, err
		}
		return model.HoldApplyResult{Applied: 0, Unavailable: unavailable}, nil
	}

	var total uint64
	if err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(z.price_cents), 0)
		 FROM seats s JOIN zones z ON z.id = s.zone_id
		 WHERE s.hold_id = ?`,
		holdID,
	).Scan(&total); err != nil {
		return model.HoldApplyResult{}, err
	}
	if _, err = tx.ExecContext(ctx, `UPDATE holds SET total_cents = ? WHERE id = ?`, total, holdID); err != nil {
		return model.HoldApplyResult{}, err
	}
	if err = tx.Commit(); err != nil {
		return model.HoldApplyResult{}, err
	}
	committed = true
	return model.HoldApplyResult{Applied: int(n), Unavailable: []uint64{}, TotalCents: total}, nil
}

// ReleaseHold returns every seat held under holdID to AVAILABLE and marks the
// hold RELEASED.  It reports how many seats were released; zero means the
// hold does not exist or no longer holds anything.
func (r *SeatHoldRepo) ReleaseHold(ctx context.Context, holdID string) (int, error) {
	var released int
	err := withRetry(ctx, func() error {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		committed := false
		defer func() {
			if !committed {
				_ = tx.Rollback()
			}
		}()
		res, err := tx.ExecContext(ctx,
			`UPDATE seats SET status = 'AVAILABLE', hold_id = NULL WHERE hold_id = ? AND status = 'HELD'`,
			holdID,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n > 0 {
			if _, err = tx.ExecContext(ctx,
				`UPDATE holds SET status = 'RELEASED' WHERE id = ? AND status = 'ACTIVE'`,
				holdID,
			); err != nil {
				return err
			}
		}
		if err = tx.Commit(); err != nil {
			return err
		}
		committed = true
		released = int(n)
		return nil
	})
	if err != nil {
		return 0, storageErr("release hold", err)
	}
	return released, nil
}

// ReleaseExpired returns to AVAILABLE every held seat whose hold expired
// strictly before now and marks those holds EXPIRED.  Running it twice with
// the same now releases nothing the second time.
func (r *SeatHoldRepo) ReleaseExpired(ctx context.Context, now time.Time) (int, error) {
	now = now.UTC()
	var released int
	err := withRetry(ctx, func() error {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		committed := false
		defer func() {
			if !committed {
				_ = tx.Rollback()
			}
		}()
		res, err := tx.ExecContext(ctx,
			`UPDATE seats s JOIN holds h ON h.id = s.hold_id
			 SET s.status = 'AVAILABLE', s.hold_id = NULL
			 WHERE s.status = 'HELD' AND h.expires_at < ?`,
			now,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`UPDATE holds SET status = 'EXPIRED' WHERE status = 'ACTIVE' AND expires_at < ?`,
			now,
		); err != nil {
			return err
		}
		if err = tx.Commit(); err != nil {
			return err
		}
		committed = true
		released = int(n)
		return nil
	})
	if err != nil {
		return 0, storageErr("release expired", err)
	}
	return released, nil
}

// ActiveHolds lists the holds that still own seats and have not expired at
// now, oldest first, each with its seat ids.
func (r *SeatHoldRepo) ActiveHolds(ctx context.Context, now time.Time) ([]model.Hold, error) {
	const q = `SELECT h.id, h.holder_name, h.holder_contact, h.total_cents, h.status, h.created_at, h.expires_at, s.id
			   FROM holds h
			   JOIN seats s ON s.hold_id = h.id AND s.status = 'HELD'
			   WHERE h.status = 'ACTIVE' AND h.expires_at >= ?
			   ORDER BY h.created_at, h.id, s.id`
	rows, err := r.db.QueryContext(ctx, q, now.UTC())
	if err != nil {
		return nil, storageErr("active holds", err)
	}
	defer rows.Close()
	holds := []model.Hold{}
	for rows.Next() {
		var (
			h      model.Hold
			status string
			seatID uint64
		)
		if err := rows.Scan(&h.ID, &h.Holder.Name, &h.Holder.Contact, &h.TotalCents, &status,
			&h.CreatedAt, &h.ExpiresAt, &seatID); err != nil {
			return nil, storageErr("scan hold", err)
		}
		if last := len(holds) - 1; last >= 0 && holds[last].ID == h.ID {
			holds[last].SeatIDs = append(holds[last].SeatIDs, seatID)
			continue
		}
		h.Status = model.HoldStatus(status)
		h.SeatIDs = []uint64{seatID}
		holds = append(holds, h)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("active holds", err)
	}
	return holds, nil
}

// scanIDs drains rows of a single id column and closes them.
func scanIDs(rows *sql.Rows) ([]uint64, error) {
	defer rows.Close()
	ids := []uint64{}
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
