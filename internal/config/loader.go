package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadEncounter loads an encounter by ID.
// Search order: customPath -> ~/.skirmish/encounters/<id>.yaml ->
// ./encounters/<id>.yaml -> embedded default -> hard-coded Gnoll.
func LoadEncounter(customPath, id string) (EncounterConfig, error) {
	if id == "" {
		id = DefaultEncounterID
	}

	// Try custom path first
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return EncounterConfig{}, err
		}
		return cfg, nil
	}

	// Try user config directory
	if dir := userEncounterDir(); dir != "" {
		if cfg, err := LoadFile(filepath.Join(dir, id+".yaml")); err == nil {
			return cfg, nil
		}
	}

	// Try local encounters directory
	if cfg, err := LoadFile(filepath.Join(localEncounterDir, id+".yaml")); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	if data := GetDefaultYAML(id); data != nil {
		if cfg, err := parse(data, id); err == nil {
			return cfg, nil
		}
	}

	if id == DefaultEncounterID {
		return DefaultEncounter(), nil // Fallback to hardcoded if embed fails
	}
	return EncounterConfig{}, fmt.Errorf("%w: %s", ErrUnknownEncounter, id)
}

// LoadFile reads and parses one encounter file. A missing id is taken
// from the file name.
func LoadFile(path string) (EncounterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EncounterConfig{}, fmt.Errorf("config: failed to read encounter %s: %w", path, err)
	}
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	cfg, err := parse(data, id)
	if err != nil {
		return EncounterConfig{}, fmt.Errorf("config: failed to parse encounter %s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte, fallbackID string) (EncounterConfig, error) {
	var cfg EncounterConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EncounterConfig{}, err
	}
	if cfg.ID == "" {
		cfg.ID = fallbackID
	}
	if cfg.Name == "" {
		cfg.Name = cfg.ID
	}
	return cfg, nil
}

// Entry describes one encounter available to play.
type Entry struct {
	ID     string
	Name   string
	Source string // "embedded", or the file path it was read from
}

// ListEncounters returns every known encounter sorted by ID.
// Files in the user and local directories override embedded ones with the
// same ID. Unreadable files are skipped.
func ListEncounters() ([]Entry, error) {
	byID := make(map[string]Entry)

	embedded, err := fs.ReadDir(defaultEncounters, defaultEncounterDir)
	if err != nil {
		return nil, fmt.Errorf("config: reading embedded encounters: %w", err)
	}
	for _, e := range embedded {
		id := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		cfg, err := parse(GetDefaultYAML(id), id)
		if err != nil {
			continue
		}
		byID[cfg.ID] = Entry{ID: cfg.ID, Name: cfg.Name, Source: "embedded"}
	}

	// Local first so the user directory wins, matching LoadEncounter.
	for _, dir := range []string{localEncounterDir, userEncounterDir()} {
		for _, entry := range scanDir(dir) {
			byID[entry.ID] = entry
		}
	}

	entries := make([]Entry, 0, len(byID))
	for _, e := range byID {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

func scanDir(dir string) []Entry {
	if dir == "" {
		return nil
	}
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var entries []Entry
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(f.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, f.Name())
		cfg, err := LoadFile(path)
		if err != nil {
			// Skip invalid files
			continue
		}
		// LoadEncounter looks files up by name, so the name is the ID here.
		id := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
		entries = append(entries, Entry{ID: id, Name: cfg.Name, Source: path})
	}
	return entries
}

const localEncounterDir = "encounters"

// userEncounterDir returns ~/.skirmish/encounters, or empty if home is unavailable.
func userEncounterDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skirmish", "encounters")
}
