package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/theater-ticketing/internal/model"
	"github.com/iliyamo/theater-ticketing/internal/queue"
)

type mockLedger struct{ mock.Mock }

func (m *mockLedger) ListZones(ctx context.Context) ([]model.ZoneSummary, error) {
	args := m.Called(ctx)
	zs, _ := args.Get(0).([]model.ZoneSummary)
	return zs, args.Error(1)
}

func (m *mockLedger) ListSeats(ctx context.Context, f model.SeatFilter) ([]model.Seat, error) {
	args := m.Called(ctx, f)
	seats, _ := args.Get(0).([]model.Seat)
	return seats, args.Error(1)
}

func (m *mockLedger) FindSeatsByID(ctx context.Context, ids []uint64) ([]model.Seat, error) {
	args := m.Called(ctx, ids)
	seats, _ := args.Get(0).([]model.Seat)
	return seats, args.Error(1)
}

func (m *mockLedger) ApplyHold(ctx context.Context, holdID string, ids []uint64, holder model.Holder, createdAt, expiresAt time.Time) (model.HoldApplyResult, error) {
	args := m.Called(ctx, holdID, ids, holder, createdAt, expiresAt)
	return args.Get(0).(model.HoldApplyResult), args.Error(1)
}

func (m *mockLedger) ConfirmHold(ctx context.Context, holdID string, now time.Time) (model.Sale, error) {
	args := m.Called(ctx, holdID, now)
	return args.Get(0).(model.Sale), args.Error(1)
}

func (m *mockLedger) ReleaseHold(ctx context.Context, holdID string) (int, error) {
	args := m.Called(ctx, holdID)
	return args.Int(0), args.Error(1)
}

func (m *mockLedger) ReleaseExpired(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *mockLedger) ActiveHolds(ctx context.Context, now time.Time) ([]model.Hold, error) {
	args := m.Called(ctx, now)
	hs, _ := args.Get(0).([]model.Hold)
	return hs, args.Error(1)
}

func (m *mockLedger) GetSale(ctx context.Context, id uint64) (model.Sale, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Sale), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishSaleConfirmed(ctx context.Context, ev queue.SaleConfirmedEvent) error {
	return m.Called(ctx, ev).Error(0)
}
