package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Environment holds the defaults the CLI reads from SKIRMISH_* variables.
// Command-line flags still take precedence.
type Environment struct {
	DBPath     string `env:"SKIRMISH_DB"         envDefault:"~/.skirmish/history.db"`
	LogLevel   string `env:"SKIRMISH_LOG_LEVEL"  envDefault:"info"`
	LogFile    string `env:"SKIRMISH_LOG_FILE"`
	TickRate   int    `env:"SKIRMISH_FPS"        envDefault:"10"`
	Difficulty string `env:"SKIRMISH_DIFFICULTY" envDefault:"normal"`
	SSHAddress string `env:"SKIRMISH_SSH_ADDR"   envDefault:":23234"`
}

// DefaultEnvironment returns the values used when no variable is set.
func DefaultEnvironment() Environment {
	return Environment{
		DBPath:     "~/.skirmish/history.db",
		LogLevel:   "info",
		TickRate:   10,
		Difficulty: string(DifficultyNormal),
		SSHAddress: ":23234",
	}
}

// LoadEnvironment parses SKIRMISH_* variables. On error the defaults are
// returned together with the error.
func LoadEnvironment() (Environment, error) {
	var e Environment
	if err := env.Parse(&e); err != nil {
		return DefaultEnvironment(), fmt.Errorf("config: parse env: %w", err)
	}
	if e.TickRate <= 0 {
		e.TickRate = DefaultEnvironment().TickRate
	}
	return e, nil
}
