package service

import (
	"context"
	"time"

	"github.com/iliyamo/theater-ticketing/internal/model"
	"github.com/iliyamo/theater-ticketing/internal/queue"
)

// Ledger is the durable seat store the reservation flow runs against.
// repository.Ledger is the production implementation.
type Ledger interface {
	ListZones(ctx context.Context) ([]model.ZoneSummary, error)
	ListSeats(ctx context.Context, f model.SeatFilter) ([]model.Seat, error)
	FindSeatsByID(ctx context.Context, ids []uint64) ([]model.Seat, error)
	ApplyHold(ctx context.Context, holdID string, ids []uint64, holder model.Holder, createdAt, expiresAt time.Time) (model.HoldApplyResult, error)
	ConfirmHold(ctx context.Context, holdID string, now time.Time) (model.Sale, error)
	ReleaseHold(ctx context.Context, holdID string) (int, error)
	ReleaseExpired(ctx context.Context, now time.Time) (int, error)
	ActiveHolds(ctx context.Context, now time.Time) ([]model.Hold, error)
	GetSale(ctx context.Context, id uint64) (model.Sale, error)
}

// ExpiryReleaser is the part of the ledger the sweeper needs.
type ExpiryReleaser interface {
	ReleaseExpired(ctx context.Context, now time.Time) (int, error)
}

// SalePublisher announces confirmed sales to other systems.
type SalePublisher interface {
	PublishSaleConfirmed(ctx context.Context, ev queue.SaleConfirmedEvent) error
}
