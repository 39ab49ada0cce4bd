// Package config provides YAML-based encounter loading and difficulty
// presets for skirmish fights.
package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownEncounter is returned when no source provides the requested encounter.
	ErrUnknownEncounter = errors.New("config: unknown encounter")
	// ErrInvalidEncounter wraps every validation failure of an encounter file.
	ErrInvalidEncounter = errors.New("config: invalid encounter")
)

// EncounterConfig describes one fight.
type EncounterConfig struct {
	ID         string           `yaml:"id"`
	Name       string           `yaml:"name"`
	Intro      string           `yaml:"intro"`
	Player     PlayerConfig     `yaml:"player"`
	Monsters   []MonsterConfig  `yaml:"monsters"`
	TurnOrder  []string         `yaml:"turn_order"` // "player" or "monster:<id>"; empty means player first
	Target     string           `yaml:"target"`     // Target of player spells; empty means the first monster
	Buttons    []ButtonConfig   `yaml:"buttons"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayerConfig defines the player's starting state.
type PlayerConfig struct {
	Name   string `yaml:"name"`
	Health int    `yaml:"health"`
}

// MonsterConfig defines one monster.
type MonsterConfig struct {
	ID         uint32 `yaml:"id"`
	Name       string `yaml:"name"`
	Health     int    `yaml:"health"`
	Attack     int    `yaml:"attack"`
	AttackName string `yaml:"attack_name"`
}

// ButtonConfig defines one on-screen button.
type ButtonConfig struct {
	ID     string      `yaml:"id"` // Empty means derived from position
	Label  string      `yaml:"label"`
	Action string      `yaml:"action"` // "cast" or "nothing"
	Spell  SpellConfig `yaml:"spell"`
}

// SpellConfig defines the spell a cast button fires.
type SpellConfig struct {
	Name   string `yaml:"name"`
	Damage int    `yaml:"damage"`
}

// DifficultyConfig controls how presets scale monster stats.
type DifficultyConfig struct {
	Enabled      bool          `yaml:"enabled"`
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of stat changes at max difficulty,
// relative to the stats written for normal.
type ScalingConfig struct {
	HealthMultiplier float64 `yaml:"health_multiplier"`
	AttackMultiplier float64 `yaml:"attack_multiplier"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name from the command line.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.3
	}
}

// IsFixedPreset returns true if the preset disables scaling.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *EncounterConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}
