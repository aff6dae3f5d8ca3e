package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addr = "0x52908400098527886e0f7030069857d2e4169ee7"

func TestParseType(t *testing.T) {
	tests := map[string]Type{
		"watch":      TypeWatch,
		"WATCH":      TypeWatch,
		"watch-only": TypeWatch,
		"hdkey":      TypeHDKey,
		" keystore ": TypeKeystore,
		"hardware":   TypeHardware,
	}
	for in, want := range tests {
		got, err := ParseType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseType("ledger")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	w, err := New(addr, "watch")
	require.NoError(t, err)
	assert.True(t, w.IsWatchOnly())
	assert.Equal(t, "0x52908400098527886E0F7030069857D2E4169EE7", w.Address.Hex())
	assert.Equal(t, "0x5290…9EE7", w.Short())

	w, err = New(addr, "hdkey")
	require.NoError(t, err)
	assert.False(t, w.IsWatchOnly())
}

func TestNew_InvalidAddress(t *testing.T) {
	_, err := New("0x1234", "watch")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
