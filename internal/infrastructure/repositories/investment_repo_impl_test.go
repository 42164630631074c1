package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"cryptobet.backend/internal/domain/entities"
	domainerrors "cryptobet.backend/internal/domain/errors"
	"cryptobet.backend/pkg/utils"
)

func seedInvestment(t *testing.T, repo *InvestmentRepository, userID uuid.UUID, name, email string, amount float64, status entities.InvestmentStatus, createdAt time.Time) *entities.Investment {
	t.Helper()
	inv := &entities.Investment{
		ID:              uuid.New(),
		UserID:          userID,
		UserName:        name,
		Email:           email,
		AmountUSD:       amount,
		Coin:            entities.CoinUSDT,
		CoinAmount:      amount,
		CBCAmount:       amount / 0.50,
		Status:          status,
		TransactionHash: "0xabc",
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), inv))
	return inv
}

func TestInvestmentRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createInvestmentTable(t, db)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	inv := seedInvestment(t, repo, uuid.New(), "Jane Doe", "jane@example.com", 500, entities.InvestmentStatusPending, time.Now())

	got, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, inv.UserID, got.UserID)
	require.Equal(t, entities.InvestmentStatusPending, got.Status)
	require.Equal(t, 500.0, got.AmountUSD)
	require.Equal(t, 1000.0, got.CBCAmount)
	require.False(t, got.ReviewedAt.Valid)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestInvestmentRepository_ListByUserIDNewestFirst(t *testing.T) {
	db := newTestDB(t)
	createInvestmentTable(t, db)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	older := seedInvestment(t, repo, userID, "Jane", "jane@example.com", 100, entities.InvestmentStatusPending, time.Now().Add(-time.Hour))
	newer := seedInvestment(t, repo, userID, "Jane", "jane@example.com", 200, entities.InvestmentStatusPending, time.Now())
	seedInvestment(t, repo, uuid.New(), "Other", "other@example.com", 300, entities.InvestmentStatusPending, time.Now())

	items, err := repo.ListByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, newer.ID, items[0].ID)
	require.Equal(t, older.ID, items[1].ID)
}

func TestInvestmentRepository_ListFilterAndSearch(t *testing.T) {
	db := newTestDB(t)
	createInvestmentTable(t, db)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	seedInvestment(t, repo, uuid.New(), "Jane Doe", "jane@example.com", 100, entities.InvestmentStatusPending, time.Now().Add(-2*time.Hour))
	approved := seedInvestment(t, repo, uuid.New(), "John Smith", "john@example.com", 200, entities.InvestmentStatusApproved, time.Now().Add(-time.Hour))
	seedInvestment(t, repo, uuid.New(), "Mary Major", "mary@example.com", 300, entities.InvestmentStatusRejected, time.Now())

	all, total, err := repo.List(ctx, entities.InvestmentFilter{}, utils.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.EqualValues(t, 3, total)

	onlyApproved, total, err := repo.List(ctx, entities.InvestmentFilter{Status: entities.InvestmentStatusApproved}, utils.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, onlyApproved, 1)
	require.EqualValues(t, 1, total)
	require.Equal(t, approved.ID, onlyApproved[0].ID)

	// Search is case-insensitive over name and email.
	byEmail, _, err := repo.List(ctx, entities.InvestmentFilter{Search: "JANE@EXAMPLE.COM"}, utils.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	require.Equal(t, "jane@example.com", byEmail[0].Email)

	byName, _, err := repo.List(ctx, entities.InvestmentFilter{Search: "smith"}, utils.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.Equal(t, "John Smith", byName[0].UserName)

	// Search also matches the record id.
	byID, _, err := repo.List(ctx, entities.InvestmentFilter{Search: approved.ID.String()}, utils.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	require.Equal(t, approved.ID, byID[0].ID)

	none, _, err := repo.List(ctx, entities.InvestmentFilter{Search: "nomatch"}, utils.PaginationParams{})
	require.NoError(t, err)
	require.Empty(t, none)

	// Status filter and search combine.
	combined, _, err := repo.List(ctx, entities.InvestmentFilter{Status: entities.InvestmentStatusApproved, Search: "jane"}, utils.PaginationParams{})
	require.NoError(t, err)
	require.Empty(t, combined)
}

func TestInvestmentRepository_ListPagination(t *testing.T) {
	db := newTestDB(t)
	createInvestmentTable(t, db)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedInvestment(t, repo, uuid.New(), "Jane Doe", "jane@example.com", float64(100*(i+1)), entities.InvestmentStatusPending, base.Add(time.Duration(i)*time.Minute))
	}

	firstPage, total, err := repo.List(ctx, entities.InvestmentFilter{}, utils.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, firstPage, 2)
	// Newest first.
	require.Equal(t, 500.0, firstPage[0].AmountUSD)

	secondPage, _, err := repo.List(ctx, entities.InvestmentFilter{}, utils.PaginationParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, secondPage, 2)
	require.Equal(t, 300.0, secondPage[0].AmountUSD)

	lastPage, _, err := repo.List(ctx, entities.InvestmentFilter{}, utils.PaginationParams{Page: 3, Limit: 2})
	require.NoError(t, err)
	require.Len(t, lastPage, 1)
	require.Equal(t, 100.0, lastPage[0].AmountUSD)
}

func TestInvestmentRepository_UpdateStatusCompareAndSwap(t *testing.T) {
	db := newTestDB(t)
	createInvestmentTable(t, db)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	inv := seedInvestment(t, repo, uuid.New(), "Jane", "jane@example.com", 100, entities.InvestmentStatusPending, time.Now())

	require.NoError(t, repo.UpdateStatus(ctx, inv.ID, entities.InvestmentStatusApproved))

	got, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, entities.InvestmentStatusApproved, got.Status)
	require.True(t, got.ReviewedAt.Valid)

	// The second review loses the swap.
	err = repo.UpdateStatus(ctx, inv.ID, entities.InvestmentStatusRejected)
	require.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	// The losing call must not clobber the first decision.
	got, err = repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, entities.InvestmentStatusApproved, got.Status)

	err = repo.UpdateStatus(ctx, uuid.New(), entities.InvestmentStatusApproved)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	// Only terminal targets are accepted.
	err = repo.UpdateStatus(ctx, inv.ID, entities.InvestmentStatusPending)
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestInvestmentRepository_Stats(t *testing.T) {
	db := newTestDB(t)
	createInvestmentTable(t, db)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	require.Zero(t, stats.TotalInvestments)
	require.Zero(t, stats.ApprovedUSD)

	seedInvestment(t, repo, uuid.New(), "A", "a@example.com", 100, entities.InvestmentStatusPending, time.Now())
	seedInvestment(t, repo, uuid.New(), "B", "b@example.com", 200, entities.InvestmentStatusApproved, time.Now())
	seedInvestment(t, repo, uuid.New(), "C", "c@example.com", 300, entities.InvestmentStatusApproved, time.Now())
	seedInvestment(t, repo, uuid.New(), "D", "d@example.com", 400, entities.InvestmentStatusRejected, time.Now())

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(4), stats.TotalInvestments)
	require.Equal(t, int64(1), stats.PendingCount)
	require.Equal(t, int64(2), stats.ApprovedCount)
	require.Equal(t, 500.0, stats.ApprovedUSD)
	require.Equal(t, 1000.0, stats.ApprovedCBC)
}
