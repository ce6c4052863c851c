package model

import "time"

// Sale is the permanent record created when a hold is confirmed as paid.
// The total is copied from the hold and never recomputed.
//
// Fields:
//  ID         – primary key identifier.
//  HoldID     – hold that was confirmed into this sale.
//  Buyer      – holder snapshot of the confirmed hold.
//  TotalCents – amount charged in cents.
//  SeatIDs    – seats sold.
//  CreatedAt  – confirmation timestamp.
type Sale struct {
	ID         uint64    // sales.id
	HoldID     string    // sales.hold_id
	Buyer      Holder    // sales.buyer_name, sales.buyer_contact
	TotalCents uint64    // sales.total_cents
	SeatIDs    []uint64  // seats.id WHERE sale_id = sales.id
	CreatedAt  time.Time // sales.created_at
}
