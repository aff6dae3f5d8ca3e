package token

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"nftview/internal/jsonutil"
)

// Fixture is the JSON document accepted by `nftview import`. A file holds
// one fixture or an array of them.
type Fixture struct {
	ChainID   interface{}       `json:"chain_id"`
	Address   string            `json:"address"`
	Name      string            `json:"name"`
	Symbol    string            `json:"symbol"`
	Standard  string            `json:"standard"`
	Functions []string          `json:"functions"`
	Assets    []FixtureAsset    `json:"assets"`
	Activity  []FixtureActivity `json:"activity"`
}

type FixtureAsset struct {
	TokenID     interface{} `json:"token_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ImageURL    string      `json:"image_url"`
	Amount      interface{} `json:"amount"`
}

type FixtureActivity struct {
	TxHash    string      `json:"tx_hash"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	TokenID   interface{} `json:"token_id"`
	Amount    interface{} `json:"amount"`
	Timestamp interface{} `json:"timestamp"` // RFC 3339 or unix seconds
}

// ImportSummary counts what Import wrote.
type ImportSummary struct {
	Tokens   int
	Assets   int
	Activity int
}

// ParseStandard accepts "erc721", "ERC-1155" and similar spellings.
func ParseStandard(s string) (Standard, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	switch Standard(norm) {
	case StandardERC721, StandardERC1155:
		return Standard(norm), nil
	case "":
		return StandardERC721, nil
	}
	return "", fmt.Errorf("unknown token standard %q", s)
}

// Import loads fixture JSON into the store.
func (s *Store) Import(ctx context.Context, data []byte) (ImportSummary, error) {
	var sum ImportSummary
	fixtures, err := jsonutil.UnmarshalOneOrMany[Fixture](data, "parse fixture")
	if err != nil {
		return sum, err
	}
	for i, f := range fixtures {
		if err := s.importOne(ctx, f, &sum); err != nil {
			return sum, fmt.Errorf("fixture %d: %w", i, err)
		}
	}
	return sum, nil
}

func (s *Store) importOne(ctx context.Context, f Fixture, sum *ImportSummary) error {
	info, err := f.info()
	if err != nil {
		return err
	}
	if err := s.PutToken(ctx, info); err != nil {
		return err
	}
	sum.Tokens++
	tok := &Token{Info: info}

	for _, fa := range f.Assets {
		id, err := jsonutil.BigInt(fa.TokenID)
		if err != nil {
			return fmt.Errorf("asset token_id: %w", err)
		}
		amount, err := jsonutil.BigInt(fa.Amount)
		if err != nil {
			return fmt.Errorf("asset amount: %w", err)
		}
		a := Asset{Name: fa.Name, Description: fa.Description, ImageURL: fa.ImageURL, Amount: amount}
		if err := s.StoreAsset(ctx, tok, id, a); err != nil {
			return err
		}
		sum.Assets++
	}

	acts := make([]Activity, 0, len(f.Activity))
	for _, fa := range f.Activity {
		a, err := fa.activity()
		if err != nil {
			return err
		}
		acts = append(acts, a)
	}
	if len(acts) > 0 {
		if err := s.PutActivity(ctx, tok, acts); err != nil {
			return err
		}
		sum.Activity += len(acts)
	}

	if len(f.Functions) > 0 {
		return s.SetFunctions(ctx, tok, f.Functions)
	}
	return nil
}

func (f Fixture) info() (Info, error) {
	addr, err := ParseAddress(f.Address)
	if err != nil {
		return Info{}, err
	}
	chain := MainnetID
	if n, err := jsonutil.BigInt(f.ChainID); err != nil {
		return Info{}, fmt.Errorf("chain_id: %w", err)
	} else if n != nil {
		if !n.IsInt64() || n.Sign() <= 0 {
			return Info{}, fmt.Errorf("chain_id %s out of range", n)
		}
		chain = ChainID(n.Int64())
	}
	std, err := ParseStandard(f.Standard)
	if err != nil {
		return Info{}, err
	}
	return Info{ChainID: chain, Address: addr, Name: f.Name, Symbol: f.Symbol, Standard: std}, nil
}

func (fa FixtureActivity) activity() (Activity, error) {
	if fa.TxHash == "" {
		return Activity{}, fmt.Errorf("activity without tx_hash")
	}
	id, err := jsonutil.BigInt(fa.TokenID)
	if err != nil {
		return Activity{}, fmt.Errorf("activity %s token_id: %w", fa.TxHash, err)
	}
	amount, err := jsonutil.BigInt(fa.Amount)
	if err != nil {
		return Activity{}, fmt.Errorf("activity %s amount: %w", fa.TxHash, err)
	}
	ts, err := parseTimestamp(jsonutil.ToString(fa.Timestamp))
	if err != nil {
		return Activity{}, fmt.Errorf("activity %s timestamp: %w", fa.TxHash, err)
	}
	from, err := optionalAddress(fa.From)
	if err != nil {
		return Activity{}, fmt.Errorf("activity %s from: %w", fa.TxHash, err)
	}
	to, err := optionalAddress(fa.To)
	if err != nil {
		return Activity{}, fmt.Errorf("activity %s to: %w", fa.TxHash, err)
	}
	return Activity{
		TxHash:    fa.TxHash,
		From:      from,
		To:        to,
		TokenID:   id,
		Amount:    amount,
		Timestamp: ts,
	}, nil
}

// optionalAddress accepts an empty string as the zero address (mints and
// burns) and validates anything else.
func optionalAddress(s string) (common.Address, error) {
	if strings.TrimSpace(s) == "" {
		return common.Address{}, nil
	}
	return ParseAddress(strings.TrimSpace(s))
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0), nil
	}
	return time.Parse(time.RFC3339, s)
}
