// Package config holds the environment-driven settings the CLI composes
// with its flag struct, the way the teacher's internal/maincmd.Cmd composes
// mainer.Parser flag parsing with caarlos0/env-populated defaults.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config is the pass's environment-configurable behavior. Flags set on the
// CLI's Cmd struct take precedence over these when both are present; see
// internal/maincmd.
type Config struct {
	// NameBlocks controls whether generated names (loop objects, loop
	// object properties, hoist-collision renames) embed the file's base
	// name for easier cross-file debugging. Off by default: spec.md only
	// requires global uniqueness, not file attribution.
	NameBlocks bool `env:"BLOCKSCOPE_NAME_BLOCKS" envDefault:"false"`

	// CollectUndeclared controls whether the driver runs
	// transform.CollectUndeclaredNames (spec.md §4.1.2) before resolving
	// collisions, versus trusting a caller-supplied extern name set alone.
	CollectUndeclared bool `env:"BLOCKSCOPE_COLLECT_UNDECLARED" envDefault:"true"`

	// LogLevel selects the minimum level a log.StdLogger reports at:
	// "debug", "info", or "warn".
	LogLevel string `env:"BLOCKSCOPE_LOG_LEVEL" envDefault:"warn"`
}

// Load populates a Config from the process environment, applying the
// envDefault tags above for anything unset.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}
