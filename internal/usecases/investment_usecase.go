package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"cryptobet.backend/internal/domain/entities"
	domainerrors "cryptobet.backend/internal/domain/errors"
	"cryptobet.backend/internal/domain/repositories"
	"cryptobet.backend/pkg/logger"
	"cryptobet.backend/pkg/utils"
)

// InvestmentUsecase handles investment submission and review business logic
type InvestmentUsecase struct {
	investmentRepo repositories.InvestmentRepository
	assetRepo      repositories.AssetRepository
	userRepo       repositories.UserRepository
	minimumUSD     float64
	tokenPriceUSD  float64
}

// NewInvestmentUsecase creates a new investment usecase
func NewInvestmentUsecase(
	investmentRepo repositories.InvestmentRepository,
	assetRepo repositories.AssetRepository,
	userRepo repositories.UserRepository,
	minimumUSD float64,
	tokenPriceUSD float64,
) *InvestmentUsecase {
	return &InvestmentUsecase{
		investmentRepo: investmentRepo,
		assetRepo:      assetRepo,
		userRepo:       userRepo,
		minimumUSD:     minimumUSD,
		tokenPriceUSD:  tokenPriceUSD,
	}
}

// Quote derives the settlement-asset and CBC quantities for an amount without
// creating anything. Quantities are pure functions of the inputs.
func (u *InvestmentUsecase) Quote(ctx context.Context, amountUSD float64, coin entities.Coin) (*entities.InvestmentQuote, error) {
	asset, err := u.activeAsset(ctx, coin)
	if err != nil {
		return nil, err
	}
	if amountUSD <= 0 || amountUSD < u.minimumUSD {
		return nil, domainerrors.ErrBelowMinimum
	}
	quote := entities.NewInvestmentQuote(amountUSD, coin, asset.UnitPriceUSD, u.tokenPriceUSD)
	return &quote, nil
}

// Submit validates and creates a pending investment request. The submitter
// must have a verified email; name and email are denormalized from the user
// at this moment.
func (u *InvestmentUsecase) Submit(ctx context.Context, userID uuid.UUID, input *entities.SubmitInvestmentInput) (*entities.Investment, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.EmailVerified {
		return nil, domainerrors.ErrEmailNotVerified
	}

	if input.TransactionHash == "" {
		return nil, domainerrors.ErrInvalidInput
	}

	quote, err := u.Quote(ctx, input.AmountUSD, input.Coin)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	investment := &entities.Investment{
		ID:              uuid.New(),
		UserID:          user.ID,
		UserName:        user.Name,
		Email:           user.Email,
		AmountUSD:       quote.AmountUSD,
		Coin:            quote.Coin,
		CoinAmount:      quote.CoinAmount,
		CBCAmount:       quote.CBCAmount,
		Status:          entities.InvestmentStatusPending,
		TransactionHash: input.TransactionHash,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := u.investmentRepo.Create(ctx, investment); err != nil {
		return nil, err
	}

	logger.Info(ctx, "investment submitted",
		zap.String("investment_id", investment.ID.String()),
		zap.String("coin", string(investment.Coin)),
		zap.Float64("amount_usd", investment.AmountUSD),
	)
	return investment, nil
}

// GetByID returns a single investment. Non-admin callers may only read their
// own records.
func (u *InvestmentUsecase) GetByID(ctx context.Context, id, callerID uuid.UUID, callerIsAdmin bool) (*entities.Investment, error) {
	investment, err := u.investmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !callerIsAdmin && investment.UserID != callerID {
		return nil, domainerrors.ErrForbidden
	}
	return investment, nil
}

// ListForUser lists the caller's own investment requests, newest first
func (u *InvestmentUsecase) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Investment, error) {
	return u.investmentRepo.ListByUserID(ctx, userID)
}

// List lists a page of investment requests for admin review
func (u *InvestmentUsecase) List(ctx context.Context, filter entities.InvestmentFilter, pagination utils.PaginationParams) ([]*entities.Investment, int64, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, domainerrors.ErrInvalidInput
	}
	return u.investmentRepo.List(ctx, filter, pagination)
}

// Approve transitions a pending request to approved
func (u *InvestmentUsecase) Approve(ctx context.Context, id uuid.UUID) error {
	return u.review(ctx, id, entities.InvestmentStatusApproved)
}

// Reject transitions a pending request to rejected
func (u *InvestmentUsecase) Reject(ctx context.Context, id uuid.UUID) error {
	return u.review(ctx, id, entities.InvestmentStatusRejected)
}

// Stats aggregates dashboard figures
func (u *InvestmentUsecase) Stats(ctx context.Context) (*entities.InvestmentStats, error) {
	stats, err := u.investmentRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalUsers, err = u.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (u *InvestmentUsecase) review(ctx context.Context, id uuid.UUID, status entities.InvestmentStatus) error {
	if err := u.investmentRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	logger.Info(ctx, "investment reviewed",
		zap.String("investment_id", id.String()),
		zap.String("status", string(status)),
	)
	return nil
}

func (u *InvestmentUsecase) activeAsset(ctx context.Context, coin entities.Coin) (*entities.Asset, error) {
	if !coin.Valid() {
		return nil, domainerrors.ErrUnsupportedCoin
	}
	asset, err := u.assetRepo.GetBySymbol(ctx, coin)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnsupportedCoin
		}
		return nil, err
	}
	if !asset.IsActive {
		return nil, domainerrors.ErrUnsupportedCoin
	}
	return asset, nil
}
