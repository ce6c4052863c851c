// Package queue defines message payloads exchanged over the message broker
// together with the RabbitMQ publisher and consumer that carry them.
package queue

import "time"

// SalesQueueName is the durable queue carrying SaleConfirmedEvent messages.
const SalesQueueName = "sale.confirmed"

// SaleConfirmedEvent is published when a hold is confirmed as a sale.  It
// contains enough information for downstream consumers to log or notify
// without querying the primary database.
type SaleConfirmedEvent struct {
	SaleID       uint64    `json:"sale_id"`
	HoldID       string    `json:"hold_id"`
	BuyerName    string    `json:"buyer_name"`
	BuyerContact string    `json:"buyer_contact"`
	SeatIDs      []uint64  `json:"seat_ids"`
	TotalCents   uint64    `json:"total_cents"`
	ConfirmedAt  time.Time `json:"confirmed_at"`
}
