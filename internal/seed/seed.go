// Package seed holds the default venue layout and the logic to load it into
// an empty ledger.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iliyamo/theater-ticketing/internal/model"
	"github.com/iliyamo/theater-ticketing/internal/repository"
)

// Seeder is implemented by *repository.Ledger.
type Seeder interface {
	SeedVenue(ctx context.Context, layout []model.ZoneLayout) (int, error)
}

const (
	stallsPrice  = 25000 * 100
	balconyPrice = 20000 * 100
)

func zone(name string, price uint32, color string, rows ...uint32) model.ZoneLayout {
	return model.ZoneLayout{
		Zone:     model.Zone{Name: name, PriceCents: price, Color: color},
		RowSizes: append([]uint32(nil), rows...),
	}
}

func repeat(n int, size uint32) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = size
	}
	return out
}

// DefaultLayout returns the nine zones of the house.  Each call returns a
// fresh slice so callers may mutate the zones (SeedVenue fills in ids).
func DefaultLayout() []model.ZoneLayout {
	boxesLower := []uint32{2, 3, 4, 5, 5, 2}
	boxesVIP := []uint32{3, 3, 5, 6, 3, 2}
	boxesUpper := []uint32{7, 7, 4}

	return []model.ZoneLayout{
		zone("Platea baja", stallsPrice, "#f5d742", append(repeat(12, 14), 12)...),
		zone("Platea superior central", balconyPrice, "#4caf50", 26, 28, 31, 25, 28, 30),
		zone("Palcos inferiores A", stallsPrice, "#ff7043", boxesLower...),
		zone("Palcos inferiores B", stallsPrice, "#ff7043", boxesLower...),
		zone("Palcos VIP A", balconyPrice, "#ab47bc", boxesVIP...),
		zone("Palcos VIP B", balconyPrice, "#ab47bc", boxesVIP...),
		zone("Palcos superiores A", balconyPrice, "#42a5f5", boxesUpper...),
		zone("Palcos superiores B", balconyPrice, "#42a5f5", boxesUpper...),
		zone("Palco superior central", balconyPrice, "#26c6da", 30),
	}
}

// Apply seeds the default layout.  A ledger that already has zones is left
// untouched and Apply reports zero seats.
func Apply(ctx context.Context, s Seeder, log *slog.Logger) (int, error) {
	layout := DefaultLayout()
	n, err := s.SeedVenue(ctx, layout)
	if errors.Is(err, repository.ErrAlreadySeeded) {
		log.Info("venue already seeded, skipping")
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("seed venue: %w", err)
	}
	log.Info("venue seeded", slog.Int("zones", len(layout)), slog.Int("seats", n))
	return n, nil
}
