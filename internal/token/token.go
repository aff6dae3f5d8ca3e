// Package token models an NFT collection held by an account and provides a
// sqlite-backed Service for resolving it.
package token

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ChainID identifies an EVM network.
type ChainID int64

// MainnetID is used when no chain is given.
const MainnetID ChainID = 1

var chainNames = map[ChainID]string{
	1:        "Ethereum",
	5:        "Goerli",
	10:       "Optimism",
	56:       "BNB Chain",
	137:      "Polygon",
	8453:     "Base",
	42161:    "Arbitrum One",
	11155111: "Sepolia",
}

func (c ChainID) String() string {
	if n, ok := chainNames[c]; ok {
		return n
	}
	return fmt.Sprintf("chain %d", int64(c))
}

// Standard is the token interface a contract implements.
type Standard string

const (
	StandardERC721  Standard = "ERC721"
	StandardERC1155 Standard = "ERC1155"
)

var (
	// ErrNotFound is returned when no token is known for a chain/address.
	ErrNotFound = errors.New("token not found")
	// ErrInvalidAddress is returned for a malformed contract or transfer address.
	ErrInvalidAddress = errors.New("invalid address")
)

// Info is the static description of a collection contract.
type Info struct {
	ChainID  ChainID
	Address  common.Address
	Name     string
	Symbol   string
	Standard Standard
}

// Token is a collection as seen by one account.
type Token struct {
	Info
	// Balance is the number of distinct assets held.
	Balance int
}

// IsBatchTransferAvailable reports whether several units can be moved in
// one transfer. Only ERC1155 collections support it.
func (t *Token) IsBatchTransferAvailable() bool {
	return t != nil && t.Standard == StandardERC1155
}

// Asset is one owned item of a collection.
type Asset struct {
	TokenID     *big.Int
	Name        string
	Description string
	ImageURL    string
	// Amount is the held quantity; always 1 for ERC721.
	Amount    *big.Int
	UpdatedAt time.Time
}

// DisplayName returns the asset name, falling back to "#<id>".
func (a Asset) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	if a.TokenID == nil {
		return "#?"
	}
	return "#" + a.TokenID.String()
}

// Activity is one transfer touching the collection.
type Activity struct {
	TxHash    string
	From      common.Address
	To        common.Address
	TokenID   *big.Int
	Amount    *big.Int
	Timestamp time.Time
}

// StandardFunctions are offered by the function bar for every collection,
// ahead of any functions from asset definitions.
var StandardFunctions = []string{"Transfer"}

// Service resolves tokens and their assets for the detail screen.
type Service interface {
	// GetToken returns ErrNotFound when the collection is unknown.
	GetToken(ctx context.Context, chain ChainID, address string) (*Token, error)
	StoreAsset(ctx context.Context, t *Token, tokenID *big.Int, a Asset) error
	Assets(ctx context.Context, t *Token) ([]Asset, error)
	Activity(ctx context.Context, t *Token) ([]Activity, error)
}

// Definitions supplies the extra functions declared for a collection.
type Definitions interface {
	Functions(ctx context.Context, t *Token) ([]string, error)
}

// ParseAddress validates and normalizes an address.
func ParseAddress(address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return common.HexToAddress(address), nil
}
