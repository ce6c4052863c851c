package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/theater-ticketing/internal/model"
	"github.com/iliyamo/theater-ticketing/internal/queue"
)

// DefaultHoldTTL is how long held seats stay reserved before the sweeper
// returns them to the pool.
const DefaultHoldTTL = 30 * time.Minute

// CreateHoldInput is the request to hold a set of seats.
type CreateHoldInput struct {
	SeatIDs       []uint64
	HolderName    string
	HolderContact string
}

// HoldReceipt is returned when every requested seat was held.
type HoldReceipt struct {
	HoldID     string
	ExpiresAt  time.Time
	SeatIDs    []uint64
	TotalCents uint64
}

// SaleReceipt is returned when a hold was confirmed.
type SaleReceipt struct {
	SaleID     uint64
	SeatIDs    []uint64
	TotalCents uint64
}

// ReservationService coordinates the hold, confirm and release flow on top
// of the ledger.  It sweeps expired holds before every operation whose
// outcome depends on seat availability.
type ReservationService struct {
	ledger    Ledger
	sweeper   *Sweeper
	publisher SalePublisher
	log       *slog.Logger
	holdTTL   time.Duration
	now       func() time.Time
	newHoldID func() string

	pending sync.WaitGroup
}

// Option configures a ReservationService.
type Option func(*ReservationService)

// WithHoldTTL overrides DefaultHoldTTL.
func WithHoldTTL(d time.Duration) Option {
	return func(s *ReservationService) {
		if d > 0 {
			s.holdTTL = d
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *ReservationService) { s.now = now }
}

// WithPublisher enables sale.confirmed events.
func WithPublisher(p SalePublisher) Option {
	return func(s *ReservationService) { s.publisher = p }
}

// WithHoldIDGenerator replaces the random UUID hold identifiers.
func WithHoldIDGenerator(gen func() string) Option {
	return func(s *ReservationService) { s.newHoldID = gen }
}

// NewReservationService wires a ReservationService.
func NewReservationService(ledger Ledger, sweeper *Sweeper, log *slog.Logger, opts ...Option) *ReservationService {
	s := &ReservationService{
		ledger:    ledger,
		sweeper:   sweeper,
		log:       log,
		holdTTL:   DefaultHoldTTL,
		now:       func() time.Time { return time.Now().UTC() },
		newHoldID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HoldTTL reports the configured hold lifetime.
func (s *ReservationService) HoldTTL() time.Duration { return s.holdTTL }

// CreateHold reserves every seat in in.SeatIDs for the holder or none of
// them.  Duplicate ids are collapsed.  Unknown seats yield a
// *model.NotFoundError and seats that are not available yield a
// *model.ConflictError, both listing the offending ids.
func (s *ReservationService) CreateHold(ctx context.Context, in CreateHoldInput) (HoldReceipt, error) {
	holder := model.Holder{
		Name:    strings.TrimSpace(in.HolderName),
		Contact: strings.TrimSpace(in.HolderContact),
	}
	ids, err := validateHold(in.SeatIDs, holder)
	if err != nil {
		return HoldReceipt{}, err
	}

	now := s.now()
	if _, err := s.sweeper.Sweep(ctx, now); err != nil {
		return HoldReceipt{}, err
	}

	seats, err := s.ledger.FindSeatsByID(ctx, ids)
	if err != nil {
		return HoldReceipt{}, fmt.Errorf("find seats: %w", err)
	}
	found := make(map[uint64]model.Seat, len(seats))
	for _, seat := range seats {
		found[seat.ID] = seat
	}
	var missing, taken []uint64
	for _, id := range ids {
		seat, ok := found[id]
		switch {
		case !ok:
			missing = append(missing, id)
		case seat.State.Status() != model.SeatAvailable:
			taken = append(taken, id)
		}
	}
	if len(missing) > 0 {
		return HoldReceipt{}, &model.NotFoundError{SeatIDs: missing}
	}
	if len(taken) > 0 {
		return HoldReceipt{}, &model.ConflictError{SeatIDs: taken}
	}

	holdID := s.newHoldID()
	expiresAt := now.Add(s.holdTTL)
	res, err := s.ledger.ApplyHold(ctx, holdID, ids, holder, now, expiresAt)
	if err != nil {
		return HoldReceipt{}, fmt.Errorf("apply hold: %w", err)
	}
	if res.Applied != len(ids) {
		unavailable := res.Unavailable
		if len(unavailable) == 0 {
			unavailable = ids
		}
		return HoldReceipt{}, &model.ConflictError{SeatIDs: unavailable}
	}

	s.log.InfoContext(ctx, "hold created",
		slog.String("hold_id", holdID),
		slog.Int("seats", len(ids)),
		slog.Uint64("total_cents", res.TotalCents),
		slog.Time("expires_at", expiresAt),
	)
	return HoldReceipt{
		HoldID:     holdID,
		ExpiresAt:  expiresAt,
		SeatIDs:    ids,
		TotalCents: res.TotalCents,
	}, nil
}

// ConfirmHold marks every seat of an active hold as sold and records the
// sale.  A hold that expired, was released or never existed yields a
// *model.NotFoundError.
func (s *ReservationService) ConfirmHold(ctx context.Context, holdID string) (SaleReceipt, error) {
	holdID = strings.TrimSpace(holdID)
	if holdID == "" {
		return SaleReceipt{}, &model.ValidationError{Field: "hold_id", Reason: "is required"}
	}

	now := s.now()
	if _, err := s.sweeper.Sweep(ctx, now); err != nil {
		return SaleReceipt{}, err
	}

	sale, err := s.ledger.ConfirmHold(ctx, holdID, now)
	if err != nil {
		return SaleReceipt{}, fmt.Errorf("confirm hold %s: %w", holdID, err)
	}

	s.log.InfoContext(ctx, "hold confirmed",
		slog.String("hold_id", holdID),
		slog.Uint64("sale_id", sale.ID),
		slog.Uint64("total_cents", sale.TotalCents),
	)
	s.publishSale(ctx, sale)

	return SaleReceipt{SaleID: sale.ID, SeatIDs: sale.SeatIDs, TotalCents: sale.TotalCents}, nil
}

// publishSale announces the sale in the background.  Failures are logged
// and never affect the confirmation.
func (s *ReservationService) publishSale(ctx context.Context, sale model.Sale) {
	if s.publisher == nil {
		return
	}
	ev := queue.SaleConfirmedEvent{
		SaleID:       sale.ID,
		HoldID:       sale.HoldID,
		BuyerName:    sale.Buyer.Name,
		BuyerContact: sale.Buyer.Contact,
		SeatIDs:      sale.SeatIDs,
		TotalCents:   sale.TotalCents,
		ConfirmedAt:  sale.CreatedAt,
	}
	bg := context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.publisher.PublishSaleConfirmed(bg, ev); err != nil {
			s.log.Warn("sale event not published",
				slog.Uint64("sale_id", ev.SaleID),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Wait blocks until background event publishing has finished.
func (s *ReservationService) Wait() { s.pending.Wait() }

// ReleaseHold returns every seat of the hold to the pool and reports how
// many were released.  A hold that holds nothing yields a
// *model.NotFoundError.
func (s *ReservationService) ReleaseHold(ctx context.Context, holdID string) (int, error) {
	holdID = strings.TrimSpace(holdID)
	if holdID == "" {
		return 0, &model.ValidationError{Field: "hold_id", Reason: "is required"}
	}
	n, err := s.ledger.ReleaseHold(ctx, holdID)
	if err != nil {
		return 0, fmt.Errorf("release hold %s: %w", holdID, err)
	}
	if n == 0 {
		return 0, &model.NotFoundError{Resource: "hold"}
	}
	s.log.InfoContext(ctx, "hold released", slog.String("hold_id", holdID), slog.Int("seats", n))
	return n, nil
}

// Sweep releases expired holds as of the service clock.
func (s *ReservationService) Sweep(ctx context.Context) (int, error) {
	return s.sweeper.Sweep(ctx, s.now())
}

// ListZones returns every zone with its seat counts.
func (s *ReservationService) ListZones(ctx context.Context) ([]model.ZoneSummary, error) {
	now := s.now()
	if _, err := s.sweeper.Sweep(ctx, now); err != nil {
		return nil, err
	}
	zones, err := s.ledger.ListZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	return zones, nil
}

// ListSeats returns the seats matching f after sweeping expired holds.
func (s *ReservationService) ListSeats(ctx context.Context, f model.SeatFilter) ([]model.Seat, error) {
	if f.Status != "" {
		if _, ok := model.ParseSeatStatus(string(f.Status)); !ok {
			return nil, &model.ValidationError{Field: "status", Reason: "must be AVAILABLE, HELD or SOLD"}
		}
	}
	if _, err := s.sweeper.Sweep(ctx, s.now()); err != nil {
		return nil, err
	}
	seats, err := s.ledger.ListSeats(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	return seats, nil
}

// ActiveHolds lists unexpired holds with their seats.
func (s *ReservationService) ActiveHolds(ctx context.Context) ([]model.Hold, error) {
	now := s.now()
	if _, err := s.sweeper.Sweep(ctx, now); err != nil {
		return nil, err
	}
	holds, err := s.ledger.ActiveHolds(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("active holds: %w", err)
	}
	return holds, nil
}

// GetSale returns a recorded sale.
func (s *ReservationService) GetSale(ctx context.Context, id uint64) (model.Sale, error) {
	if id == 0 {
		return model.Sale{}, &model.ValidationError{Field: "id", Reason: "must be positive"}
	}
	sale, err := s.ledger.GetSale(ctx, id)
	if err != nil {
		return model.Sale{}, fmt.Errorf("get sale %d: %w", id, err)
	}
	return sale, nil
}

// validateHold checks the request shape and returns the seat ids with
// duplicates removed, in first-seen order.
func validateHold(seatIDs []uint64, holder model.Holder) ([]uint64, error) {
	if len(seatIDs) == 0 {
		return nil, &model.ValidationError{Field: "seat_ids", Reason: "at least one seat is required"}
	}
	if holder.Name == "" {
		return nil, &model.ValidationError{Field: "holder_name", Reason: "is required"}
	}
	if holder.Contact == "" {
		return nil, &model.ValidationError{Field: "holder_contact", Reason: "is required"}
	}
	seen := make(map[uint64]struct{}, len(seatIDs))
	ids := make([]uint64, 0, len(seatIDs))
	for _, id := range seatIDs {
		if id == 0 {
			return nil, &model.ValidationError{Field: "seat_ids", Reason: "ids must be positive"}
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
