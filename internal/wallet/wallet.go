// Package wallet describes the account a detail screen is opened for.
package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Type is the kind of key material behind an account.
type Type int

const (
	TypeNotDefined Type = iota
	TypeKeystore
	TypeKeystoreLegacy
	TypeHDKey
	TypeWatch
	TypeHardware
)

var typeNames = map[Type]string{
	TypeNotDefined:     "not_defined",
	TypeKeystore:       "keystore",
	TypeKeystoreLegacy: "keystore_legacy",
	TypeHDKey:          "hdkey",
	TypeWatch:          "watch",
	TypeHardware:       "hardware",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "unknown"
}

// ErrInvalidAddress is returned for an address that is not 20 hex bytes.
var ErrInvalidAddress = errors.New("invalid account address")

// ParseType maps a config value such as "watch" or "hdkey" to a Type.
// Matching is case-insensitive; "watch-only" is accepted for TypeWatch.
func ParseType(s string) (Type, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	if norm == "watch_only" {
		return TypeWatch, nil
	}
	for t, n := range typeNames {
		if n == norm {
			return t, nil
		}
	}
	return TypeNotDefined, fmt.Errorf("unknown wallet type %q", s)
}

// Wallet is an account record. Only TypeWatch changes screen behaviour.
type Wallet struct {
	Address common.Address
	Type    Type
}

// New builds a Wallet from its textual address and type.
func New(address, typ string) (Wallet, error) {
	if !common.IsHexAddress(address) {
		return Wallet{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	t, err := ParseType(typ)
	if err != nil {
		return Wallet{}, err
	}
	return Wallet{Address: common.HexToAddress(address), Type: t}, nil
}

// IsWatchOnly reports whether the account has no signing capability.
func (w Wallet) IsWatchOnly() bool {
	return w.Type == TypeWatch
}

// Short returns an abbreviated checksum address like 0x1234…abcd.
func (w Wallet) Short() string {
	h := w.Address.Hex()
	return h[:6] + "…" + h[len(h)-4:]
}
