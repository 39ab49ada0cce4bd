package config

import (
	"embed"
	"path"
)

// DefaultEncounterID is the encounter played when none is named.
const DefaultEncounterID = "gnoll"

//go:embed defaults/encounters/*.yaml
var defaultEncounters embed.FS

const defaultEncounterDir = "defaults/encounters"

// DefaultEncounter returns the built-in Gnoll fight.
func DefaultEncounter() EncounterConfig {
	return EncounterConfig{
		ID:    DefaultEncounterID,
		Name:  "Gnoll",
		Intro: "You wake up in a strange place, it's time to fight",
		Player: PlayerConfig{
			Name:   "You",
			Health: 200,
		},
		Monsters: []MonsterConfig{
			{ID: 1, Name: "Gnoll", Health: 50, Attack: 12, AttackName: "Claw"},
		},
		TurnOrder: []string{"player", "monster:1"},
		Target:    "monster:1",
		Buttons: []ButtonConfig{
			{ID: "stab", Label: "Stab", Action: "cast", Spell: SpellConfig{Name: "Stab", Damage: 10}},
			{ID: "fireball", Label: "Fireball", Action: "cast", Spell: SpellConfig{Name: "Fireball", Damage: 25}},
			{ID: "inventory", Label: "Inventory", Action: "nothing"},
			{ID: "escape", Label: "Escape", Action: "nothing"},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Scaling: ScalingConfig{
				HealthMultiplier: 1.0,
				AttackMultiplier: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded YAML for an encounter, or nil.
func GetDefaultYAML(id string) []byte {
	data, err := defaultEncounters.ReadFile(path.Join(defaultEncounterDir, id+".yaml"))
	if err != nil {
		return nil
	}
	return data
}
