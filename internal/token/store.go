package token

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/adrg/xdg"
	"github.com/ethereum/go-ethereum/common"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	// DataDirEnv overrides the directory holding the database (for testing).
	DataDirEnv = "NFTVIEW_DATA_DIR"

	appName    = "nftview"
	dbFileName = "nftview.db"
)

// Store is a sqlite-backed Service and Definitions.
type Store struct {
	db *sql.DB
}

var (
	_ Service     = (*Store)(nil)
	_ Definitions = (*Store)(nil)
)

// DefaultPath returns $NFTVIEW_DATA_DIR/nftview.db when the variable is
// set, otherwise the XDG data file.
func DefaultPath() (string, error) {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return filepath.Join(dir, dbFileName), nil
	}
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Open opens (and migrates) the database at path. ":memory:" gives a
// private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared and serializes
	// writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx executes fn within a transaction.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// PutToken inserts or replaces a collection description.
func (s *Store) PutToken(ctx context.Context, info Info) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tokens (chain_id, address, name, symbol, standard)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(chain_id, address) DO UPDATE SET
			name = excluded.name,
			symbol = excluded.symbol,
			standard = excluded.standard`,
		int64(info.ChainID), info.Address.Hex(), info.Name, info.Symbol, string(info.Standard))
	if err != nil {
		return fmt.Errorf("put token %s: %w", info.Address.Hex(), err)
	}
	return nil
}

// GetToken implements Service.
func (s *Store) GetToken(ctx context.Context, chain ChainID, address string) (*Token, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return nil, err
	}
	t := &Token{Info: Info{ChainID: chain, Address: addr}}
	var standard string
	err = s.db.QueryRowContext(ctx, `
		SELECT t.name, t.symbol, t.standard,
			(SELECT COUNT(*) FROM assets a WHERE a.chain_id = t.chain_id AND a.address = t.address)
		FROM tokens t
		WHERE t.chain_id = ? AND t.address = ?`,
		int64(chain), addr.Hex()).Scan(&t.Name, &t.Symbol, &standard, &t.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s on %s", ErrNotFound, addr.Hex(), chain)
	}
	if err != nil {
		return nil, fmt.Errorf("get token %s: %w", addr.Hex(), err)
	}
	t.Standard = Standard(standard)
	return t, nil
}

// StoreAsset implements Service. It caches metadata for one asset.
func (s *Store) StoreAsset(ctx context.Context, t *Token, tokenID *big.Int, a Asset) error {
	if tokenID == nil {
		return errors.New("store asset: nil token id")
	}
	amount := a.Amount
	if amount == nil {
		amount = big.NewInt(1)
	}
	updated := a.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assets (chain_id, address, token_id, name, description, image_url, amount, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chain_id, address, token_id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			image_url = excluded.image_url,
			amount = excluded.amount,
			updated_at = excluded.updated_at`,
		int64(t.ChainID), t.Address.Hex(), tokenID.String(),
		a.Name, a.Description, a.ImageURL, amount.String(), updated.Unix())
	if err != nil {
		return fmt.Errorf("store asset %s #%s: %w", t.Address.Hex(), tokenID, err)
	}
	return nil
}

// Assets implements Service. Assets are ordered by numeric token id.
func (s *Store) Assets(ctx context.Context, t *Token) ([]Asset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token_id, name, description, image_url, amount, updated_at
		FROM assets
		WHERE chain_id = ? AND address = ?`,
		int64(t.ChainID), t.Address.Hex())
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var out []Asset
	for rows.Next() {
		var (
			a              Asset
			id, amount     string
			updatedAtEpoch int64
		)
		if err := rows.Scan(&id, &a.Name, &a.Description, &a.ImageURL, &amount, &updatedAtEpoch); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		a.TokenID = parseBig(id)
		a.Amount = parseBig(amount)
		a.UpdatedAt = time.Unix(updatedAtEpoch, 0)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TokenID.Cmp(out[j].TokenID) < 0
	})
	return out, nil
}

// PutActivity records transfers; duplicates are ignored.
func (s *Store) PutActivity(ctx context.Context, t *Token, acts []Activity) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR IGNORE INTO activity (chain_id, address, tx_hash, from_addr, to_addr, token_id, amount, timestamp)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, a := range acts {
			id, amount := bigOrZero(a.TokenID), a.Amount
			if amount == nil {
				amount = big.NewInt(1)
			}
			if _, err := stmt.ExecContext(ctx,
				int64(t.ChainID), t.Address.Hex(), a.TxHash, a.From.Hex(), a.To.Hex(),
				id.String(), amount.String(), a.Timestamp.Unix()); err != nil {
				return fmt.Errorf("put activity %s: %w", a.TxHash, err)
			}
		}
		return nil
	})
}

// Activity implements Service. Newest transfers come first.
func (s *Store) Activity(ctx context.Context, t *Token) ([]Activity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tx_hash, from_addr, to_addr, token_id, amount, timestamp
		FROM activity
		WHERE chain_id = ? AND address = ?
		ORDER BY timestamp DESC, id DESC`,
		int64(t.ChainID), t.Address.Hex())
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var (
			a                    Activity
			from, to, id, amount string
			ts                   int64
		)
		if err := rows.Scan(&a.TxHash, &from, &to, &id, &amount, &ts); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.From = common.HexToAddress(from)
		a.To = common.HexToAddress(to)
		a.TokenID = parseBig(id)
		a.Amount = parseBig(amount)
		a.Timestamp = time.Unix(ts, 0)
		out = append(out, a)
	}
	return out, rows.Err()
}

// SetFunctions replaces the asset-definition functions of a collection.
func (s *Store) SetFunctions(ctx context.Context, t *Token, names []string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM token_functions WHERE chain_id = ? AND address = ?`,
			int64(t.ChainID), t.Address.Hex()); err != nil {
			return err
		}
		for i, n := range names {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO token_functions (chain_id, address, position, name) VALUES (?, ?, ?, ?)`,
				int64(t.ChainID), t.Address.Hex(), i, n); err != nil {
				return fmt.Errorf("set function %q: %w", n, err)
			}
		}
		return nil
	})
}

// Functions implements Definitions. StandardFunctions always come first.
func (s *Store) Functions(ctx context.Context, t *Token) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM token_functions
		WHERE chain_id = ? AND address = ?
		ORDER BY position`,
		int64(t.ChainID), t.Address.Hex())
	if err != nil {
		return nil, fmt.Errorf("list functions: %w", err)
	}
	defer rows.Close()

	out := append([]string(nil), StandardFunctions...)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func parseBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return big.NewInt(0)
	}
	return n
}

func bigOrZero(n *big.Int) *big.Int {
	if n == nil {
		return big.NewInt(0)
	}
	return n
}
