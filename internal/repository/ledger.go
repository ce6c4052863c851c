package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/theater-ticketing/internal/model"
)

// ErrAlreadySeeded is returned by SeedVenue when zones already exist.
var ErrAlreadySeeded = errors.New("venue already seeded")

// Ledger is the durable record of every seat, hold and sale.  It bundles the
// table repositories behind one value that satisfies the service layer's
// ledger interface.
type Ledger struct {
	*ZoneRepo
	*SeatRepo
	*SeatHoldRepo
	*SaleRepo

	db *sql.DB
}

// NewLedger builds a Ledger over db.
func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{
		ZoneRepo:     NewZoneRepo(db),
		SeatRepo:     NewSeatRepo(db),
		SeatHoldRepo: NewSeatHoldRepo(db),
		SaleRepo:     NewSaleRepo(db),
		db:           db,
	}
}

// SeedVenue inserts the zones of layout and all of their seats as AVAILABLE
// in a single transaction.  It refuses to run when any zone exists and
// returns the number of seats created.
func (l *Ledger) SeedVenue(ctx context.Context, layout []model.ZoneLayout) (int, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storageErr("seed venue", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	n, err := l.ZoneRepo.CountTx(ctx, tx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, ErrAlreadySeeded
	}
	seats := 0
	for _, zl := range layout {
		if err := l.ZoneRepo.CreateTx(ctx, tx, &zl.Zone); err != nil {
			return 0, err
		}
		c, err := l.SeatRepo.InsertLayoutTx(ctx, tx, zl)
		if err != nil {
			return 0, err
		}
		seats += c
	}
	if err := tx.Commit(); err != nil {
		return 0, storageErr("seed venue", err)
	}
	committed = true
	return seats, nil
}
