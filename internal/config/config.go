// Package config loads rsavault's YAML configuration: a struct of
// defaults, optionally overridden by a YAML file on disk.
package config

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Config holds all tunables for the rsavault CLI.
type Config struct {
	// DefaultBitLength is the modulus width offered to new key generations
	// when the user doesn't pick one explicitly.
	DefaultBitLength int `yaml:"default_bit_length"`

	// PaddingScheme selects which padding.Scheme implementation the CLI
	// wires up: "pkcs1v15" or "oaep-mgf1".
	PaddingScheme string `yaml:"padding_scheme"`

	// DigestProvider selects which digest.Provider implementation the CLI
	// wires up: "native" (crypto/sha256, in-process) or "shellout" (shells
	// out to an external sha256sum-compatible binary per DigestShellBinary).
	DigestProvider string `yaml:"digest_provider"`

	// DigestShellBinary and DigestShellArgs configure the "shellout" digest
	// provider. Ignored when DigestProvider is "native".
	DigestShellBinary string   `yaml:"digest_shell_binary"`
	DigestShellArgs   []string `yaml:"digest_shell_args"`

	// KeysDir is loaded from config but not read by the CLI: key output
	// paths are always taken from the user's prompt answers.
	KeysDir string `yaml:"keys_dir"`

	// SmallPrimesPath points at the small-odd-primes table.
	SmallPrimesPath string `yaml:"small_primes_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Audit holds the optional key-generation ledger database. Audit is
	// skipped entirely when Audit.Enabled is false.
	Audit AuditConfig `yaml:"audit"`
}

// AuditConfig configures the optional Postgres-backed key generation
// ledger (internal/audit), an optional addition alongside the core pipeline.
type AuditConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string for the audit database.
func (a AuditConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		a.User, a.Password, a.Host, a.Port, a.DBName, a.SSLMode,
	)
}

// Default returns rsavault's built-in configuration.
func Default() Config {
	return Config{
		DefaultBitLength:  1024,
		PaddingScheme:     "pkcs1v15",
		DigestProvider:    "native",
		DigestShellBinary: "sha256sum",
		KeysDir:           "keys",
		SmallPrimesPath:   "assets/small_primes.txt",
		LogLevel:          "info",
		Audit: AuditConfig{
			Enabled: false,
			Host:    "localhost",
			Port:    5432,
			User:    "rsavault",
			DBName:  "rsavault",
			SSLMode: "disable",
		},
	}
}

// Load reads path and merges it over Default(). A missing file is not an
// error — Default() is returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	var overrides Config
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
		return cfg, fmt.Errorf("merging config %s: %w", path, err)
	}

	return cfg, nil
}
