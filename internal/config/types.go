// Package config provides configuration management for the algohunter CLI.
//
// Values are layered, lowest to highest precedence: built-in defaults,
// the YAML config file, ALGOHUNTER_* environment variables, and flags that
// were explicitly set on the command line.
package config

// Config holds all CLI configuration options.
type Config struct {
	Count    uint64 `koanf:"count"`     // Addresses to check; 0 searches until interrupted
	Workers  int    `koanf:"workers"`   // Worker goroutines; 0 uses every CPU
	Patterns string `koanf:"patterns"`  // Search terms file (JSON or YAML)
	Output   string `koanf:"output"`    // File matches are appended to; empty disables
	LogLevel string `koanf:"log_level"` // debug, info, warn or error
	Progress bool   `koanf:"progress"`  // Animated progress line on terminals
}

// Default configuration values.
const (
	DefaultCount    = 1_000_000
	DefaultOutput   = "matches.txt"
	DefaultLogLevel = "info"
	EnvPrefix       = "ALGOHUNTER_"
)

// configNames are the file names searched for in the working directory.
var configNames = []string{"algohunter.yaml", "algohunter.yml"}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"count":     DefaultCount,
		"workers":   0,
		"patterns":  "",
		"output":    DefaultOutput,
		"log_level": DefaultLogLevel,
		"progress":  true,
	}
}
