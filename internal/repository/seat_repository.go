package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/theater-ticketing/internal/model"
)

// SeatRepo provides access to the seats table.  Seat rows are joined with
// their hold so that a held seat carries the hold's expiry.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo returns a new SeatRepo bound to the given database.
func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

const seatColumns = `SELECT s.id, s.zone_id, s.row_num, s.col_num, s.status, s.hold_id, h.expires_at, s.sale_id
			   FROM seats s
			   LEFT JOIN holds h ON h.id = s.hold_id`

// ListSeats returns the seats matching f ordered by zone, row and column.
func (r *SeatRepo) ListSeats(ctx context.Context, f model.SeatFilter) ([]model.Seat, error) {
	q := seatColumns + ` WHERE 1=1`
	var args []interface{}
	if f.ZoneID != 0 {
		q += ` AND s.zone_id = ?`
		args = append(args, f.ZoneID)
	}
	if f.Status != "" {
		q += ` AND s.status = ?`
		args = append(args, string(f.Status))
	}
	q += ` ORDER BY s.zone_id, s.row_num, s.col_num`
	return r.query(ctx, "list seats", q, args...)
}

// FindSeatsByID returns the seats among ids that exist, ordered by id.
// Missing ids are simply absent from the result.
func (r *SeatRepo) FindSeatsByID(ctx context.Context, ids []uint64) ([]model.Seat, error) {
	if len(ids) == 0 {
		return []model.Seat{}, nil
	}
	in, args := inClause(ids)
	q := seatColumns + ` WHERE s.id IN (` + in + `) ORDER BY s.id`
	return r.query(ctx, "find seats", q, args...)
}

func (r *SeatRepo) query(ctx context.Context, op, q string, args ...interface{}) ([]model.Seat, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()
	seats := []model.Seat{}
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return seats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSeat reads one row produced by seatColumns and rebuilds the seat
// state, rejecting combinations the state model cannot represent.
func scanSeat(sc rowScanner) (model.Seat, error) {
	var (
		s       model.Seat
		status  string
		holdID  sql.NullString
		expires sql.NullTime
		saleID  sql.NullInt64
	)
	if err := sc.Scan(&s.ID, &s.ZoneID, &s.Row, &s.Column, &status, &holdID, &expires, &saleID); err != nil {
		return model.Seat{}, err
	}
	st, err := seatState(status, holdID, expires, saleID)
	if err != nil {
		return model.Seat{}, fmt.Errorf("seat %d: %w", s.ID, err)
	}
	s.State = st
	return s, nil
}

func seatState(status string, holdID sql.NullString, expires sql.NullTime, saleID sql.NullInt64) (model.SeatState, error) {
	st, ok := model.ParseSeatStatus(status)
	if !ok {
		return model.SeatState{}, fmt.Errorf("%w: unknown status %q", ErrCorruptSeat, status)
	}
	switch st {
	case model.SeatAvailable:
		if holdID.Valid || saleID.Valid {
			return model.SeatState{}, fmt.Errorf("%w: available seat with references", ErrCorruptSeat)
		}
		return model.Available(), nil
	case model.SeatHeld:
		if !holdID.Valid || !expires.Valid || saleID.Valid {
			return model.SeatState{}, fmt.Errorf("%w: held seat without hold", ErrCorruptSeat)
		}
		return model.Held(holdID.String, expires.Time), nil
	default:
		if !saleID.Valid || holdID.Valid {
			return model.SeatState{}, fmt.Errorf("%w: sold seat without sale", ErrCorruptSeat)
		}
		return model.Sold(uint64(saleID.Int64)), nil
	}
}

// InsertLayoutTx bulk inserts the seats of one zone layout as AVAILABLE.
// The zone must already carry its id.  An empty layout is a no-op.
func (r *SeatRepo) InsertLayoutTx(ctx context.Context, tx *sql.Tx, l model.ZoneLayout) (int, error) {
	n := l.SeatCount()
	if n == 0 {
		return 0, nil
	}
	query := `INSERT INTO seats (zone_id, row_num, col_num, status) VALUES `
	args := make([]interface{}, 0, n*3)
	first := true
	for i, size := range l.RowSizes {
		for c := uint32(1); c <= size; c++ {
			if !first {
				query += ","
			}
			first = false
			query += "(?, ?, ?, 'AVAILABLE')"
			args = append(args, l.Zone.ID, uint32(i+1), c)
		}
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, storageErr("insert seats", err)
	}
	return n, nil
}
