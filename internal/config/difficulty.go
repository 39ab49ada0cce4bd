package config

import "math"

// DifficultyManager scales monster stats for the selected level.
// Stats in encounter files are tuned for the normal preset.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the effective difficulty level.
func (d *DifficultyManager) Level() float64 {
	if !d.cfg.Enabled {
		return InitialLevelForPreset(DifficultyNormal)
	}
	return d.initialLevel
}

// Health returns the scaled max health of a monster. Never below 1.
func (d *DifficultyManager) Health(base int) int {
	return max(1, d.scale(base, d.cfg.Scaling.HealthMultiplier))
}

// Attack returns the scaled attack of a monster. Never below 0.
func (d *DifficultyManager) Attack(base int) int {
	return max(0, d.scale(base, d.cfg.Scaling.AttackMultiplier))
}

func (d *DifficultyManager) scale(base int, multiplier float64) int {
	offset := d.Level() - InitialLevelForPreset(DifficultyNormal)
	return int(math.Round(float64(base) * (1.0 + offset*multiplier)))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
