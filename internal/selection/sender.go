// Package selection is the hand-off point for sending several assets of a
// collection in one transfer.
package selection

import (
	"context"
	"errors"
	"math/big"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"nftview/internal/token"
	"nftview/internal/wallet"
)

// ErrWatchOnly is reported when a watch-only account tries to sign.
var ErrWatchOnly = errors.New("watch-only account cannot sign transfers")

// Request is one batch transfer started from the detail screen.
type Request struct {
	ID       string
	Token    *token.Token
	Wallet   wallet.Wallet
	TokenIDs []*big.Int
}

// Result is delivered as a tea.Msg when a request finishes. TxHash is nil
// when the user cancelled or the transfer failed.
type Result struct {
	RequestID string
	TxHash    *string
	Err       error
}

// Cancelled builds the result for a request the user backed out of.
func Cancelled(requestID string) Result {
	return Result{RequestID: requestID}
}

// Sender is the integration point for signing and broadcasting transfers.
type Sender interface {
	Send(ctx context.Context, req Request) tea.Cmd
}

// StubSender signs nothing. It derives a deterministic transaction hash
// from the request so the rest of the screen can be exercised offline.
type StubSender struct{}

// Send implements Sender.
func (s *StubSender) Send(ctx context.Context, req Request) tea.Cmd {
	return func() tea.Msg {
		if err := ctx.Err(); err != nil {
			return Result{RequestID: req.ID, Err: err}
		}
		if req.Wallet.IsWatchOnly() {
			return Result{RequestID: req.ID, Err: ErrWatchOnly}
		}
		if len(req.TokenIDs) == 0 || req.Token == nil {
			return Cancelled(req.ID)
		}
		hash := Hash(req).Hex()
		return Result{RequestID: req.ID, TxHash: &hash}
	}
}

// Hash is keccak256 over chain id, contract, sender and the 32-byte
// token ids in order.
func Hash(req Request) common.Hash {
	var chain int64
	var contract common.Address
	if req.Token != nil {
		chain = int64(req.Token.ChainID)
		contract = req.Token.Address
	}
	parts := [][]byte{
		common.LeftPadBytes(big.NewInt(chain).Bytes(), 32),
		contract.Bytes(),
		req.Wallet.Address.Bytes(),
	}
	for _, id := range req.TokenIDs {
		if id == nil {
			continue
		}
		parts = append(parts, common.LeftPadBytes(id.Bytes(), 32))
	}
	return crypto.Keccak256Hash(parts...)
}
