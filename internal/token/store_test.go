package token

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contract = "0x495f947276749ce646f68ac8c248420045cb7b5e"

// setupTestStore creates an in-memory store with the schema initialized.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func putCollection(t *testing.T, s *Store, standard Standard) *Token {
	t.Helper()
	ctx := context.Background()
	info := Info{
		ChainID:  MainnetID,
		Address:  common.HexToAddress(contract),
		Name:     "OpenStore",
		Symbol:   "OPENSTORE",
		Standard: standard,
	}
	require.NoError(t, s.PutToken(ctx, info))
	tok, err := s.GetToken(ctx, MainnetID, contract)
	require.NoError(t, err)
	return tok
}

func TestGetToken_NotFound(t *testing.T) {
	s := setupTestStore(t)

	tok, err := s.GetToken(context.Background(), MainnetID, contract)
	assert.Nil(t, tok)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetToken_InvalidAddress(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetToken(context.Background(), MainnetID, "not-an-address")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestGetToken_WrongChain(t *testing.T) {
	s := setupTestStore(t)
	putCollection(t, s, StandardERC721)

	_, err := s.GetToken(context.Background(), 137, contract)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetToken_MixedCaseAddress(t *testing.T) {
	s := setupTestStore(t)
	putCollection(t, s, StandardERC1155)

	tok, err := s.GetToken(context.Background(), MainnetID, "0x495F947276749CE646F68AC8C248420045CB7B5E")
	require.NoError(t, err)
	assert.Equal(t, "OpenStore", tok.Name)
	assert.True(t, tok.IsBatchTransferAvailable())
}

func TestIsBatchTransferAvailable(t *testing.T) {
	assert.True(t, (&Token{Info: Info{Standard: StandardERC1155}}).IsBatchTransferAvailable())
	assert.False(t, (&Token{Info: Info{Standard: StandardERC721}}).IsBatchTransferAvailable())
	var nilToken *Token
	assert.False(t, nilToken.IsBatchTransferAvailable())
}

func TestStoreAsset_UpsertAndOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	tok := putCollection(t, s, StandardERC1155)

	for _, id := range []int64{10, 2, 33} {
		require.NoError(t, s.StoreAsset(ctx, tok, big.NewInt(id), Asset{Name: "first"}))
	}
	require.NoError(t, s.StoreAsset(ctx, tok, big.NewInt(2), Asset{Name: "Sword", Amount: big.NewInt(5)}))

	assets, err := s.Assets(ctx, tok)
	require.NoError(t, err)
	require.Len(t, assets, 3)
	assert.Equal(t, "2", assets[0].TokenID.String())
	assert.Equal(t, "Sword", assets[0].Name)
	assert.Equal(t, "5", assets[0].Amount.String())
	assert.Equal(t, "10", assets[1].TokenID.String())
	assert.Equal(t, "33", assets[2].TokenID.String())

	tok, err = s.GetToken(ctx, MainnetID, contract)
	require.NoError(t, err)
	assert.Equal(t, 3, tok.Balance)
}

func TestStoreAsset_NilID(t *testing.T) {
	s := setupTestStore(t)
	tok := putCollection(t, s, StandardERC721)
	assert.Error(t, s.StoreAsset(context.Background(), tok, nil, Asset{}))
}

func TestActivity_NewestFirstAndDeduplicated(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	tok := putCollection(t, s, StandardERC721)
	base := time.Unix(1700000000, 0)

	acts := []Activity{
		{TxHash: "0x01", TokenID: big.NewInt(1), Timestamp: base},
		{TxHash: "0x02", TokenID: big.NewInt(2), Timestamp: base.Add(time.Hour)},
	}
	require.NoError(t, s.PutActivity(ctx, tok, acts))
	require.NoError(t, s.PutActivity(ctx, tok, acts[:1]))

	got, err := s.Activity(ctx, tok)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "0x02", got[0].TxHash)
	assert.Equal(t, "0x01", got[1].TxHash)
	assert.Equal(t, base.Unix(), got[1].Timestamp.Unix())
}

func TestFunctions_StandardFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	tok := putCollection(t, s, StandardERC721)

	fns, err := s.Functions(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, []string{"Transfer"}, fns)

	require.NoError(t, s.SetFunctions(ctx, tok, []string{"Redeem", "Burn"}))
	require.NoError(t, s.SetFunctions(ctx, tok, []string{"Redeem", "Stake"}))
	fns, err = s.Functions(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, []string{"Transfer", "Redeem", "Stake"}, fns)
}

func TestAssetDisplayName(t *testing.T) {
	assert.Equal(t, "Sword", Asset{Name: "Sword", TokenID: big.NewInt(1)}.DisplayName())
	assert.Equal(t, "#42", Asset{TokenID: big.NewInt(42)}.DisplayName())
}

func TestChainIDString(t *testing.T) {
	assert.Equal(t, "Polygon", ChainID(137).String())
	assert.Equal(t, "chain 99999", ChainID(99999).String())
}
