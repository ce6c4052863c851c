package model

import "time"

// HoldStatus records how a hold ended.  Only ACTIVE holds own seats.
type HoldStatus string

const (
	HoldActive    HoldStatus = "ACTIVE"
	HoldConfirmed HoldStatus = "CONFIRMED"
	HoldReleased  HoldStatus = "RELEASED"
	HoldExpired   HoldStatus = "EXPIRED"
)

// Holder is the contact snapshot taken when seats are held.  It becomes the
// buyer of the sale when the hold is confirmed.
type Holder struct {
	Name    string
	Contact string
}

// Hold is a time boxed reservation over one or more seats prior to payment.
// Holder info and expiry are stored once on the hold row; seats point to it
// through seats.hold_id, so every seat under a hold shares them.
//
// Fields:
//  ID         – opaque random identifier returned to the client.
//  Holder     – name and contact of the person holding the seats.
//  SeatIDs    – seats currently held under this hold.
//  TotalCents – sum of the zone prices of the seats, frozen at creation.
//  Status     – ACTIVE, CONFIRMED, RELEASED or EXPIRED.
//  CreatedAt  – creation timestamp.
//  ExpiresAt  – when the hold lapses.
type Hold struct {
	ID         string     // holds.id
	Holder     Holder     // holds.holder_name, holds.holder_contact
	SeatIDs    []uint64   // seats.id WHERE hold_id = holds.id
	TotalCents uint64     // holds.total_cents
	Status     HoldStatus // holds.status
	CreatedAt  time.Time  // holds.created_at
	ExpiresAt  time.Time  // holds.expires_at
}

// HoldApplyResult reports the outcome of a conditional multi-seat hold.
// Applied is the number of seats persisted as held; it is either zero or the
// full requested count.  Unavailable lists the requested seats that were not
// AVAILABLE when the update ran.
type HoldApplyResult struct {
	Applied     int
	Unavailable []uint64
	TotalCents  uint64
}
