package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/theater-ticketing/internal/model"
)

// ZoneRepo provides read access to the zones table together with per-zone
// seat counts, and bulk insertion for seeding.
type ZoneRepo struct {
	db *sql.DB
}

// NewZoneRepo returns a new ZoneRepo bound to the given database.
func NewZoneRepo(db *sql.DB) *ZoneRepo { return &ZoneRepo{db: db} }

// ListZones returns every zone ordered by id with the number of seats in each
// status.  Zones with no seats are included with zero counts.
func (r *ZoneRepo) ListZones(ctx context.Context) ([]model.ZoneSummary, error) {
	const q = `SELECT z.id, z.name, z.price_cents, z.color,
					  COUNT(s.id),
					  COALESCE(SUM(s.status = 'AVAILABLE'), 0),
					  COALESCE(SUM(s.status = 'HELD'), 0),
					  COALESCE(SUM(s.status = 'SOLD'), 0)
			   FROM zones z
			   LEFT JOIN seats s ON s.zone_id = z.id
			   GROUP BY z.id, z.name, z.price_cents, z.color
			   ORDER BY z.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, storageErr("list zones", err)
	}
	defer rows.Close()
	var out []model.ZoneSummary
	for rows.Next() {
		var z model.ZoneSummary
		if err := rows.Scan(&z.ID, &z.Name, &z.PriceCents, &z.Color,
			&z.TotalSeats, &z.AvailableSeats, &z.HeldSeats, &z.SoldSeats); err != nil {
			return nil, storageErr("scan zone", err)
		}
		out = append(out, z)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list zones", err)
	}
	return out, nil
}

// CreateTx inserts a zone within the given transaction and stores the
// generated id on z.
func (r *ZoneRepo) CreateTx(ctx context.Context, tx *sql.Tx, z *model.Zone) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO zones (name, price_cents, color) VALUES (?, ?, ?)`,
		z.Name, z.PriceCents, z.Color,
	)
	if err != nil {
		return storageErr("insert zone", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storageErr("insert zone", err)
	}
	z.ID = uint64(id)
	return nil
}

// CountTx returns the number of zones.
func (r *ZoneRepo) CountTx(ctx context.Context, tx *sql.Tx) (int, error) {
	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM zones`).Scan(&n); err != nil {
		return 0, storageErr("count zones", err)
	}
	return n, nil
}
