package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"cryptobet.backend/internal/domain/entities"
	domainerrors "cryptobet.backend/internal/domain/errors"
	redispkg "cryptobet.backend/pkg/redis"
)

const testEncryptionKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func newWizardRepoForTest(t *testing.T) (*WizardSessionRepository, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	redispkg.SetClient(redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()}))

	store, err := redispkg.NewSecureStore("wizard", testEncryptionKey)
	require.NoError(t, err)

	return NewWizardSessionRepository(store, time.Hour), mr
}

func TestWizardSessionRepository_SaveAndGet(t *testing.T) {
	repo, mr := newWizardRepoForTest(t)
	ctx := context.Background()

	session := entities.NewWizardSession(uuid.New())
	require.True(t, session.SelectAsset(&entities.Asset{
		Symbol:         entities.CoinUSDT,
		UnitPriceUSD:   1.00,
		DepositAddress: "TUSDTdepositAddr",
	}))

	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, session.ID, got.ID)
	require.Equal(t, session.UserID, got.UserID)
	require.Equal(t, entities.WizardStateEnteringAmount, got.State)
	require.Equal(t, entities.CoinUSDT, got.Coin)
	require.Equal(t, "TUSDTdepositAddr", got.DepositAddress)

	// Stored value is encrypted, never the raw session JSON.
	raw, err := mr.Get("wizard:" + session.ID.String())
	require.NoError(t, err)
	require.NotContains(t, raw, "TUSDTdepositAddr")
	require.NotContains(t, raw, session.UserID.String())
}

func TestWizardSessionRepository_GetMissing(t *testing.T) {
	repo, _ := newWizardRepoForTest(t)

	_, err := repo.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestWizardSessionRepository_SaveRefreshesTTL(t *testing.T) {
	repo, mr := newWizardRepoForTest(t)
	ctx := context.Background()

	session := entities.NewWizardSession(uuid.New())
	require.NoError(t, repo.Save(ctx, session))

	key := "wizard:" + session.ID.String()
	require.InDelta(t, time.Hour.Seconds(), mr.TTL(key).Seconds(), 1)

	mr.FastForward(30 * time.Minute)
	require.NoError(t, repo.Save(ctx, session))
	require.InDelta(t, time.Hour.Seconds(), mr.TTL(key).Seconds(), 1)

	// Past the TTL the session reads as gone.
	mr.FastForward(2 * time.Hour)
	_, err := repo.Get(ctx, session.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestWizardSessionRepository_Delete(t *testing.T) {
	repo, _ := newWizardRepoForTest(t)
	ctx := context.Background()

	session := entities.NewWizardSession(uuid.New())
	require.NoError(t, repo.Save(ctx, session))
	require.NoError(t, repo.Delete(ctx, session.ID))

	_, err := repo.Get(ctx, session.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	// Deleting an absent session is a no-op.
	require.NoError(t, repo.Delete(ctx, session.ID))
}

func TestWizardSessionRepository_WrongKeyCannotDecrypt(t *testing.T) {
	repo, _ := newWizardRepoForTest(t)
	ctx := context.Background()

	session := entities.NewWizardSession(uuid.New())
	require.NoError(t, repo.Save(ctx, session))

	otherKey := "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	otherStore, err := redispkg.NewSecureStore("wizard", otherKey)
	require.NoError(t, err)
	otherRepo := NewWizardSessionRepository(otherStore, time.Hour)

	_, err = otherRepo.Get(ctx, session.ID)
	require.Error(t, err)
}
