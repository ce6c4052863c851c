package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/theater-ticketing/internal/model"
)

// memLedger is an in-memory Ledger with the same all-or-nothing semantics
// as the MySQL ledger.  A single mutex stands in for the transaction.
type memLedger struct {
	mu     sync.Mutex
	zones  map[uint64]model.Zone
	seats  map[uint64]*model.Seat
	holds  map[string]*model.Hold
	sales  map[uint64]model.Sale
	nextID uint64
}

func newMemLedger(zones []model.Zone, seats []model.Seat) *memLedger {
	l := &memLedger{
		zones: map[uint64]model.Zone{},
		seats: map[uint64]*model.Seat{},
		holds: map[string]*model.Hold{},
		sales: map[uint64]model.Sale{},
	}
	for _, z := range zones {
		l.zones[z.ID] = z
	}
	for i := range seats {
		s := seats[i]
		l.seats[s.ID] = &s
	}
	return l
}

func (l *memLedger) ListZones(context.Context) ([]model.ZoneSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.ZoneSummary
	for _, z := range l.zones {
		zs := model.ZoneSummary{Zone: z}
		for _, s := range l.seats {
			if s.ZoneID != z.ID {
				continue
			}
			zs.TotalSeats++
			switch s.State.Status() {
			case model.SeatAvailable:
				zs.AvailableSeats++
			case model.SeatHeld:
				zs.HeldSeats++
			case model.SeatSold:
				zs.SoldSeats++
			}
		}
		out = append(out, zs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (l *memLedger) ListSeats(_ context.Context, f model.SeatFilter) ([]model.Seat, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Seat
	for _, s := range l.seats {
		if f.ZoneID != 0 && s.ZoneID != f.ZoneID {
			continue
		}
		if f.Status != "" && s.State.Status() != f.Status {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (l *memLedger) FindSeatsByID(_ context.Context, ids []uint64) ([]model.Seat, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Seat
	for _, id := range ids {
		if s, ok := l.seats[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (l *memLedger) ApplyHold(_ context.Context, holdID string, ids []uint64, holder model.Holder, createdAt, expiresAt time.Time) (model.HoldApplyResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var unavailable []uint64
	var total uint64
	for _, id := range ids {
		s, ok := l.seats[id]
		if !ok || s.State.Status() != model.SeatAvailable {
			unavailable = append(unavailable, id)
			continue
		}
		total += uint64(l.zones[s.ZoneID].PriceCents)
	}
	if len(unavailable) > 0 {
		return model.HoldApplyResult{Unavailable: unavailable}, nil
	}
	for _, id := range ids {
		l.seats[id].State = model.Held(holdID, expiresAt)
	}
	l.holds[holdID] = &model.Hold{
		ID: holdID, Holder: holder, SeatIDs: append([]uint64(nil), ids...),
		TotalCents: total, Status: model.HoldActive, CreatedAt: createdAt, ExpiresAt: expiresAt,
	}
	return model.HoldApplyResult{Applied: len(ids), Unavailable: []uint64{}, TotalCents: total}, nil
}

func (l *memLedger) heldBy(holdID string) []uint64 {
	var ids []uint64
	for id, s := range l.seats {
		if h, _, ok := s.State.Hold(); ok && h == holdID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (l *memLedger) ConfirmHold(_ context.Context, holdID string, now time.Time) (model.Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := l.heldBy(holdID)
	h, ok := l.holds[holdID]
	if len(ids) == 0 || !ok || h.Status != model.HoldActive || h.ExpiresAt.Before(now) {
		return model.Sale{}, &model.NotFoundError{Resource: "hold"}
	}
	l.nextID++
	sale := model.Sale{ID: l.nextID, HoldID: holdID, Buyer: h.Holder, TotalCents: h.TotalCents, SeatIDs: ids, CreatedAt: now}
	for _, id := range ids {
		l.seats[id].State = model.Sold(sale.ID)
	}
	h.Status = model.HoldConfirmed
	l.sales[sale.ID] = sale
	return sale, nil
}

func (l *memLedger) ReleaseHold(_ context.Context, holdID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := l.heldBy(holdID)
	for _, id := range ids {
		l.seats[id].State = model.Available()
	}
	if len(ids) > 0 {
		l.holds[holdID].Status = model.HoldReleased
	}
	return len(ids), nil
}

func (l *memLedger) ReleaseExpired(_ context.Context, now time.Time) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, s := range l.seats {
		if _, exp, ok := s.State.Hold(); ok && exp.Before(now) {
			s.State = model.Available()
			n++
		}
	}
	for _, h := range l.holds {
		if h.Status == model.HoldActive && h.ExpiresAt.Before(now) {
			h.Status = model.HoldExpired
		}
	}
	return n, nil
}

func (l *memLedger) ActiveHolds(_ context.Context, now time.Time) ([]model.Hold, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Hold
	for _, h := range l.holds {
		if h.Status == model.HoldActive && !h.ExpiresAt.Before(now) {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (l *memLedger) GetSale(_ context.Context, id uint64) (model.Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.sales[id]
	if !ok {
		return model.Sale{}, &model.NotFoundError{Resource: "sale"}
	}
	return s, nil
}
