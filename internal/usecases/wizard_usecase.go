package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"cryptobet.backend/internal/domain/entities"
	domainerrors "cryptobet.backend/internal/domain/errors"
	"cryptobet.backend/internal/domain/repositories"
	"cryptobet.backend/pkg/logger"
)

// WizardUsecase drives the deposit wizard state machine. Each operation loads
// the session, applies one guarded transition and saves the result; the
// pending investment created on Confirm is the only durable side effect.
type WizardUsecase struct {
	sessionRepo    repositories.WizardSessionRepository
	investmentRepo repositories.InvestmentRepository
	assetRepo      repositories.AssetRepository
	userRepo       repositories.UserRepository
	minimumUSD     float64
	tokenPriceUSD  float64
}

// NewWizardUsecase creates a new wizard usecase
func NewWizardUsecase(
	sessionRepo repositories.WizardSessionRepository,
	investmentRepo repositories.InvestmentRepository,
	assetRepo repositories.AssetRepository,
	userRepo repositories.UserRepository,
	minimumUSD float64,
	tokenPriceUSD float64,
) *WizardUsecase {
	return &WizardUsecase{
		sessionRepo:    sessionRepo,
		investmentRepo: investmentRepo,
		assetRepo:      assetRepo,
		userRepo:       userRepo,
		minimumUSD:     minimumUSD,
		tokenPriceUSD:  tokenPriceUSD,
	}
}

// Start begins a new wizard session in the asset-selection step
func (u *WizardUsecase) Start(ctx context.Context, userID uuid.UUID) (*entities.WizardSession, error) {
	session := entities.NewWizardSession(userID)
	if err := u.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads a session owned by the caller
func (u *WizardUsecase) Get(ctx context.Context, sessionID, userID uuid.UUID) (*entities.WizardSession, error) {
	return u.ownedSession(ctx, sessionID, userID)
}

// SelectAsset records the chosen settlement asset
func (u *WizardUsecase) SelectAsset(ctx context.Context, sessionID, userID uuid.UUID, coin entities.Coin) (*entities.WizardSession, error) {
	session, err := u.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if !coin.Valid() {
		return nil, domainerrors.ErrUnsupportedCoin
	}
	asset, err := u.assetRepo.GetBySymbol(ctx, coin)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.ErrUnsupportedCoin
		}
		return nil, err
	}
	if !asset.IsActive {
		return nil, domainerrors.ErrUnsupportedCoin
	}

	if !session.SelectAsset(asset) {
		return nil, domainerrors.ErrInvalidTransition
	}
	if err := u.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// EnterAmount validates the USD amount and advances to deposit confirmation.
// A below-minimum amount leaves the wizard in place.
func (u *WizardUsecase) EnterAmount(ctx context.Context, sessionID, userID uuid.UUID, amountUSD float64) (*entities.WizardSession, error) {
	session, err := u.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if session.State != entities.WizardStateEnteringAmount {
		return nil, domainerrors.ErrInvalidTransition
	}
	if !session.EnterAmount(amountUSD, u.minimumUSD, u.tokenPriceUSD) {
		return nil, domainerrors.ErrBelowMinimum
	}
	if err := u.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Confirm records the claimed transaction hash, creates the pending
// investment exactly once and completes the wizard. The session is kept
// (terminal state) so a replayed confirm surfaces as an invalid transition
// rather than a duplicate record.
func (u *WizardUsecase) Confirm(ctx context.Context, sessionID, userID uuid.UUID, txHash string) (*entities.WizardSession, error) {
	session, err := u.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if session.State == entities.WizardStateSubmitted {
		return nil, domainerrors.ErrInvalidTransition
	}
	if session.State != entities.WizardStateAwaitingDeposit {
		return nil, domainerrors.ErrInvalidTransition
	}
	if txHash == "" {
		return nil, domainerrors.ErrInvalidInput
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.EmailVerified {
		return nil, domainerrors.ErrEmailNotVerified
	}

	if !session.Confirm(txHash) {
		return nil, domainerrors.ErrInvalidTransition
	}

	now := time.Now()
	investment := &entities.Investment{
		ID:              uuid.New(),
		UserID:          user.ID,
		UserName:        user.Name,
		Email:           user.Email,
		AmountUSD:       session.AmountUSD,
		Coin:            session.Coin,
		CoinAmount:      session.CoinAmount,
		CBCAmount:       session.CBCAmount,
		Status:          entities.InvestmentStatusPending,
		TransactionHash: session.TransactionHash,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := u.investmentRepo.Create(ctx, investment); err != nil {
		return nil, err
	}
	session.InvestmentID = investment.ID

	if err := u.sessionRepo.Save(ctx, session); err != nil {
		// The record exists; a stale session only blocks replays, which is
		// the safe direction. Log and return the completed session.
		logger.Warn(ctx, "failed to persist submitted wizard session",
			zap.String("session_id", session.ID.String()),
			zap.Error(err),
		)
	}

	logger.Info(ctx, "wizard completed",
		zap.String("session_id", session.ID.String()),
		zap.String("investment_id", investment.ID.String()),
	)
	return session, nil
}

// Cancel abandons a wizard run. Cancelling is allowed at any step before
// submission and creates no record; cancelling an unknown session is a no-op.
func (u *WizardUsecase) Cancel(ctx context.Context, sessionID, userID uuid.UUID) error {
	session, err := u.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil
		}
		return err
	}
	if session.UserID != userID {
		return domainerrors.ErrForbidden
	}
	if session.State.Terminal() {
		return domainerrors.ErrInvalidTransition
	}
	return u.sessionRepo.Delete(ctx, sessionID)
}

func (u *WizardUsecase) ownedSession(ctx context.Context, sessionID, userID uuid.UUID) (*entities.WizardSession, error) {
	session, err := u.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}
	return session, nil
}
