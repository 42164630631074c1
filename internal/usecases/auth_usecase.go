package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"cryptobet.backend/internal/domain/entities"
	domainerrors "cryptobet.backend/internal/domain/errors"
	"cryptobet.backend/internal/domain/repositories"
	"cryptobet.backend/pkg/crypto"
	"cryptobet.backend/pkg/jwt"
	"cryptobet.backend/pkg/logger"
	"cryptobet.backend/pkg/redis"
)

const resendKeyPrefix = "verify-resend"

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo       repositories.UserRepository
	emailVerifRepo repositories.EmailVerificationRepository
	jwtService     *jwt.Service
	codeExpiry     time.Duration
	resendWait     time.Duration
}

var rateLimitSetNX = redis.SetNX

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	emailVerifRepo repositories.EmailVerificationRepository,
	jwtService *jwt.Service,
	codeExpiry time.Duration,
	resendWait time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:       userRepo,
		emailVerifRepo: emailVerifRepo,
		jwtService:     jwtService,
		codeExpiry:     codeExpiry,
		resendWait:     resendWait,
	}
}

// Register registers a new user. The role is always user; promotion happens
// only through the admin role-change operation.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleUser,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := u.issueVerificationCode(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns tokens. The response carries the
// email-verified flag so the caller knows verification is still required; the
// login itself is not blocked on it.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// VerifyEmail redeems a verification code. An expired code is rejected before
// the code string is compared, so expiry always wins.
func (u *AuthUsecase) VerifyEmail(ctx context.Context, input *entities.VerifyEmailInput) error {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrCodeInvalid
		}
		return err
	}
	if user.EmailVerified {
		// Idempotent: verifying an already-verified account succeeds.
		return nil
	}

	verification, err := u.emailVerifRepo.GetLatestByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrCodeInvalid
		}
		return err
	}

	if verification.Expired(time.Now()) {
		return domainerrors.ErrCodeExpired
	}
	if verification.Code != input.Code {
		return domainerrors.ErrCodeInvalid
	}

	if err := u.emailVerifRepo.MarkConsumed(ctx, verification.ID); err != nil {
		return err
	}
	return u.userRepo.MarkEmailVerified(ctx, user.ID)
}

// ResendCode issues a fresh verification code. Resends are rate limited per
// email; a limited request is a soft condition, not a failure.
func (u *AuthUsecase) ResendCode(ctx context.Context, email string) error {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// Do not reveal whether the email is registered.
			return nil
		}
		return err
	}
	if user.EmailVerified {
		return nil
	}

	allowed, err := rateLimitSetNX(ctx, fmt.Sprintf("%s:%s", resendKeyPrefix, email), "1", u.resendWait)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrRateLimited
	}

	return u.issueVerificationCode(ctx, user)
}

// RefreshToken generates new tokens from a refresh token
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// UpdateProfile updates the caller's display name and, when a new password is
// supplied, the password. A password change requires the current password.
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}

	if input.NewPassword != "" {
		if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		hash, err := crypto.HashPassword(input.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangeRole changes a user's role. Only the closed role set is accepted;
// the admin check itself lives in the route middleware.
func (u *AuthUsecase) ChangeRole(ctx context.Context, userID uuid.UUID, role entities.UserRole) error {
	if !role.Valid() {
		return domainerrors.ErrInvalidInput
	}
	return u.userRepo.UpdateRole(ctx, userID, role)
}

// ListUsers lists users with an optional search filter (admin)
func (u *AuthUsecase) ListUsers(ctx context.Context, search string) ([]*entities.User, error) {
	return u.userRepo.List(ctx, search)
}

func (u *AuthUsecase) issueVerificationCode(ctx context.Context, user *entities.User) error {
	code, err := crypto.GenerateVerificationCode()
	if err != nil {
		return err
	}

	now := time.Now()
	verification := &entities.EmailVerification{
		ID:        uuid.New(),
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: now.Add(u.codeExpiry),
		CreatedAt: now,
	}
	if err := u.emailVerifRepo.Create(ctx, verification); err != nil {
		return err
	}

	// Mail delivery is out of process; the code is logged for the dev setup.
	logger.Debug(ctx, "verification code issued",
		zap.String("email", user.Email),
		zap.Time("expires_at", verification.ExpiresAt),
	)
	return nil
}
