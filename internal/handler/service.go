package handler

import (
	"context"

	"github.com/iliyamo/theater-ticketing/internal/model"
	"github.com/iliyamo/theater-ticketing/internal/service"
)

// Reservations is the slice of service.ReservationService the HTTP layer
// depends on.
type Reservations interface {
	CreateHold(ctx context.Context, in service.CreateHoldInput) (service.HoldReceipt, error)
	ConfirmHold(ctx context.Context, holdID string) (service.SaleReceipt, error)
	ReleaseHold(ctx context.Context, holdID string) (int, error)
	Sweep(ctx context.Context) (int, error)
	ListZones(ctx context.Context) ([]model.ZoneSummary, error)
	ListSeats(ctx context.Context, f model.SeatFilter) ([]model.Seat, error)
	ActiveHolds(ctx context.Context) ([]model.Hold, error)
	GetSale(ctx context.Context, id uint64) (model.Sale, error)
}
