package model

import "time"

// SeatStatus is the lifecycle status of a seat.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatHeld      SeatStatus = "HELD"
	SeatSold      SeatStatus = "SOLD"
)

// ParseSeatStatus converts a stored or user supplied status string into a
// SeatStatus.  The second return value is false for unknown values.
func ParseSeatStatus(s string) (SeatStatus, bool) {
	switch SeatStatus(s) {
	case SeatAvailable, SeatHeld, SeatSold:
		return SeatStatus(s), true
	}
	return "", false
}

// SeatState is the three-way state of a seat: Available, Held{hold, expiry}
// or Sold{sale}.  The zero value is Available.  Values can only be built
// through Available, Held and Sold, so a held seat always carries its hold
// reference and expiry and a sold seat always carries its sale reference.
type SeatState struct {
	status    SeatStatus
	holdID    string
	expiresAt time.Time
	saleID    uint64
}

// Available returns the resting state of a seat.
func Available() SeatState { return SeatState{status: SeatAvailable} }

// Held returns the state of a seat reserved under holdID until expiresAt.
func Held(holdID string, expiresAt time.Time) SeatState {
	return SeatState{status: SeatHeld, holdID: holdID, expiresAt: expiresAt.UTC()}
}

// Sold returns the terminal state of a seat purchased under saleID.
func Sold(saleID uint64) SeatState { return SeatState{status: SeatSold, saleID: saleID} }

// Status reports which of the three states s is in.
func (s SeatState) Status() SeatStatus {
	if s.status == "" {
		return SeatAvailable
	}
	return s.status
}

// Hold returns the hold reference and expiry when the seat is held.
func (s SeatState) Hold() (holdID string, expiresAt time.Time, ok bool) {
	if s.status != SeatHeld {
		return "", time.Time{}, false
	}
	return s.holdID, s.expiresAt, true
}

// Sale returns the sale reference when the seat is sold.
func (s SeatState) Sale() (saleID uint64, ok bool) {
	if s.status != SeatSold {
		return 0, false
	}
	return s.saleID, true
}

// Seat describes one bookable seat of the venue.  Seats are uniquely
// identified by their zone, row and column.
//
// Fields:
//  ID     – primary key identifier.
//  ZoneID – zone the seat belongs to.
//  Row    – 1-based row number inside the zone.
//  Column – 1-based position inside the row.
//  State  – current lifecycle state.
type Seat struct {
	ID     uint64    // seats.id
	ZoneID uint64    // seats.zone_id
	Row    uint32    // seats.row_num
	Column uint32    // seats.col_num
	State  SeatState // seats.status + seats.hold_id/holds.expires_at + seats.sale_id
}

// SeatFilter narrows a seat listing.  Zero values mean "any".
type SeatFilter struct {
	ZoneID uint64
	Status SeatStatus
}
