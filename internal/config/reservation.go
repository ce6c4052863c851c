package config

import "time"

// ReservationConfig tunes the hold lifecycle.
type ReservationConfig struct {
	HoldTTL       time.Duration // how long a hold keeps its seats
	SweepInterval time.Duration // period of the background expiry sweep
	SeedOnStart   bool          // seed the default venue when the database is empty
}

// LoadReservationConfig reads HOLD_TTL, SWEEP_INTERVAL and SEED_ON_START.
// Non-positive durations fall back to the defaults.
func LoadReservationConfig() ReservationConfig {
	cfg := ReservationConfig{
		HoldTTL:       envDur("HOLD_TTL", 30*time.Minute),
		SweepInterval: envDur("SWEEP_INTERVAL", time.Minute),
		SeedOnStart:   envBool("SEED_ON_START", false),
	}
	if cfg.HoldTTL <= 0 {
		cfg.HoldTTL = 30 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	return cfg
}
