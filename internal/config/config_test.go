package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadArgs_Defaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, CommandRun, cfg.Command)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "hdkey", cfg.Wallet.Type)
	assert.Equal(t, int64(1), cfg.Token.ChainID)
	assert.Empty(t, cfg.Files)
}

func TestLoadArgs_FilesThenFlags(t *testing.T) {
	dir := t.TempDir()
	user := writeFile(t, dir, "user.toml", `
log_level = "debug"

[wallet]
address = "0x52908400098527886e0f7030069857d2e4169ee7"
type = "watch"

[token]
chain_id = 137
address = "0x495f947276749ce646f68ac8c248420045cb7b5e"
`)
	local := writeFile(t, dir, "local.toml", `
[token]
chain_id = 10
`)
	missing := filepath.Join(dir, "missing.toml")

	cfg, err := LoadArgs([]string{"--wallet-type", "hdkey"}, []string{user, missing, local})
	require.NoError(t, err)

	assert.Equal(t, []string{user, local}, cfg.Files)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(10), cfg.Token.ChainID)
	assert.Equal(t, "0x495f947276749ce646f68ac8c248420045cb7b5e", cfg.Token.Address)
	assert.Equal(t, "hdkey", cfg.Wallet.Type)
	assert.NoError(t, Validate(cfg))
}

func TestLoadArgs_ExplicitConfigReplacesSearch(t *testing.T) {
	dir := t.TempDir()
	ignored := writeFile(t, dir, "ignored.toml", `log_level = "error"`)
	explicit := writeFile(t, dir, "explicit.toml", `log_level = "warn"`)

	cfg, err := LoadArgs([]string{"--config", explicit}, []string{ignored})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, []string{explicit}, cfg.Files)

	_, err = LoadArgs([]string{"--config", filepath.Join(dir, "nope.toml")}, nil)
	assert.Error(t, err)
}

func TestLoadArgs_ImportCommand(t *testing.T) {
	cfg, err := LoadArgs([]string{"--db", "/tmp/x.db", "import", "fixture.json"}, nil)
	require.NoError(t, err)
	assert.Equal(t, CommandImport, cfg.Command)
	assert.Equal(t, []string{"fixture.json"}, cfg.Args)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.NoError(t, Validate(cfg))
}

func TestLoadArgs_Help(t *testing.T) {
	_, err := LoadArgs([]string{"--help"}, nil)
	assert.ErrorIs(t, err, ErrHelp)
	assert.Contains(t, Usage(), "--wallet-type")
}

func TestValidate(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	require.NoError(t, err)
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--address")
	assert.Contains(t, err.Error(), "--wallet")

	cfg.Command = "frobnicate"
	assert.ErrorContains(t, Validate(cfg), "unknown command")

	cfg.Command = CommandImport
	assert.ErrorContains(t, Validate(cfg), "exactly one file")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data/x.db"), expandPath("~/data/x.db"))
	assert.Equal(t, "/abs", expandPath("/abs"))
}
