package model

// Zone is a priced grouping of seats (e.g. "Platea baja", "Palcos VIP A").
// Zones are created once when the venue is seeded and are referenced by
// every seat inside them; they are never deleted while seats exist.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – unique display name.
//  PriceCents – unit price for one seat of this zone, in cents.
//  Color      – cosmetic hex color used by seat-map clients.
type Zone struct {
	ID         uint64 // zones.id
	Name       string // zones.name
	PriceCents uint32 // zones.price_cents
	Color      string // zones.color
}

// ZoneSummary is a zone together with the current seat counts per status.
type ZoneSummary struct {
	Zone
	TotalSeats     int
	AvailableSeats int
	HeldSeats      int
	SoldSeats      int
}

// ZoneLayout describes how a zone is populated when the venue is seeded.
// RowSizes[i] is the number of seats in row i+1; columns are numbered from 1.
type ZoneLayout struct {
	Zone     Zone
	RowSizes []uint32
}

// SeatCount returns the number of seats the layout produces.
func (l ZoneLayout) SeatCount() int {
	n := 0
	for _, c := range l.RowSizes {
		n += int(c)
	}
	return n
}
