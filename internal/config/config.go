// Package config loads runtime configuration from TOML files and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Commands understood on the command line.
const (
	CommandRun    = "run"
	CommandImport = "import"
)

type Config struct {
	DBPath   string       `koanf:"db_path"`   // empty means the XDG data file
	LogFile  string       `koanf:"log_file"`  // empty means the XDG state file
	LogLevel string       `koanf:"log_level"` // debug, info, warn, error
	Wallet   WalletConfig `koanf:"wallet"`
	Token    TokenConfig  `koanf:"token"`

	Command string   `koanf:"-"`
	Args    []string `koanf:"-"` // positional arguments after the command
	Files   []string `koanf:"-"` // config files that were loaded
}

// WalletConfig selects the account the screen is opened for.
type WalletConfig struct {
	Address string `koanf:"address"`
	Type    string `koanf:"type"` // keystore, hdkey, watch, hardware, ...
}

// TokenConfig selects the collection to display.
type TokenConfig struct {
	ChainID int64  `koanf:"chain_id"`
	Address string `koanf:"address"`
}

// ErrHelp is returned when -h/--help was given.
var ErrHelp = pflag.ErrHelp

// Load parses configuration from the default files and os.Args.
func Load() (*Config, error) {
	return LoadArgs(os.Args[1:], defaultPaths())
}

// LoadArgs allows tests to supply args and the candidate config files.
// Later files override earlier ones; flags override files.
func LoadArgs(args []string, paths []string) (*Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if explicit, _ := fs.GetString("config"); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		paths = []string{explicit}
	}

	k := koanf.New(".")
	cfg := &Config{
		LogLevel: "info",
		Wallet:   WalletConfig{Type: "hdkey"},
		Token:    TokenConfig{ChainID: 1},
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		cfg.Files = append(cfg.Files, path)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	applyFlags(fs, cfg)

	rest := fs.Args()
	cfg.Command = CommandRun
	if len(rest) > 0 {
		cfg.Command = rest[0]
		cfg.Args = append([]string(nil), rest[1:]...)
	}

	cfg.DBPath = expandPath(cfg.DBPath)
	cfg.LogFile = expandPath(cfg.LogFile)
	return cfg, nil
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("nftview", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.String("config", "", "path to a config file (replaces the default search)")
	fs.String("db", "", "path to the token database")
	fs.String("log-file", "", "path to the log file")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("wallet", "", "account address")
	fs.String("wallet-type", "", "account type: keystore, hdkey, watch, hardware")
	fs.Int64("chain", 0, "chain id of the collection")
	fs.String("address", "", "contract address of the collection")
	return fs
}

// applyFlags copies explicitly set flags over file values.
func applyFlags(fs *pflag.FlagSet, cfg *Config) {
	str := func(name string, dst *string) {
		if fs.Changed(name) {
			*dst, _ = fs.GetString(name)
		}
	}
	str("db", &cfg.DBPath)
	str("log-file", &cfg.LogFile)
	str("log-level", &cfg.LogLevel)
	str("wallet", &cfg.Wallet.Address)
	str("wallet-type", &cfg.Wallet.Type)
	str("address", &cfg.Token.Address)
	if fs.Changed("chain") {
		cfg.Token.ChainID, _ = fs.GetInt64("chain")
	}
}

// Usage returns the flag summary for --help.
func Usage() string {
	var b strings.Builder
	b.WriteString("Usage: nftview [flags] [run | import <file.json>]\n\nFlags:\n")
	b.WriteString(newFlagSet().FlagUsages())
	return b.String()
}

// Validate checks the options the selected command needs.
func Validate(cfg *Config) error {
	var errs []error
	switch cfg.Command {
	case CommandRun:
		if cfg.Token.Address == "" {
			errs = append(errs, errors.New("token.address (--address) is required"))
		}
		if cfg.Wallet.Address == "" {
			errs = append(errs, errors.New("wallet.address (--wallet) is required"))
		}
		if cfg.Token.ChainID <= 0 {
			errs = append(errs, fmt.Errorf("token.chain_id must be > 0 (got %d)", cfg.Token.ChainID))
		}
	case CommandImport:
		if len(cfg.Args) != 1 {
			errs = append(errs, errors.New("import takes exactly one file"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown command %q", cfg.Command))
	}
	return errors.Join(errs...)
}

// defaultPaths lists config files in priority order (last wins).
func defaultPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, "nftview", "config.toml"),
		"nftview.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
