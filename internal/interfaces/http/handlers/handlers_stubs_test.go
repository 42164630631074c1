package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"cryptobet.backend/internal/domain/entities"
	domainerrors "cryptobet.backend/internal/domain/errors"
	"cryptobet.backend/internal/interfaces/http/middleware"
	"cryptobet.backend/pkg/utils"
)

type userRepoStub struct {
	createFn     func(ctx context.Context, user *entities.User) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	getByEmailFn func(ctx context.Context, email string) (*entities.User, error)
	updateFn     func(ctx context.Context, user *entities.User) error
	updateRoleFn func(ctx context.Context, id uuid.UUID, role entities.UserRole) error
	listFn       func(ctx context.Context, search string) ([]*entities.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *entities.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}
func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, domainerrors.ErrNotFound
}
func (s *userRepoStub) Update(ctx context.Context, user *entities.User) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	return nil
}
func (s *userRepoStub) UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error {
	if s.updateRoleFn != nil {
		return s.updateRoleFn(ctx, id, role)
	}
	return nil
}
func (s *userRepoStub) MarkEmailVerified(context.Context, uuid.UUID) error { return nil }
func (s *userRepoStub) List(ctx context.Context, search string) ([]*entities.User, error) {
	if s.listFn != nil {
		return s.listFn(ctx, search)
	}
	return nil, nil
}
func (s *userRepoStub) Count(context.Context) (int64, error) { return 0, nil }

type emailVerifRepoStub struct {
	createFn    func(ctx context.Context, v *entities.EmailVerification) error
	getLatestFn func(ctx context.Context, userID uuid.UUID) (*entities.EmailVerification, error)
}

func (s *emailVerifRepoStub) Create(ctx context.Context, v *entities.EmailVerification) error {
	if s.createFn != nil {
		return s.createFn(ctx, v)
	}
	return nil
}
func (s *emailVerifRepoStub) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.EmailVerification, error) {
	if s.getLatestFn != nil {
		return s.getLatestFn(ctx, userID)
	}
	return nil, domainerrors.ErrNotFound
}
func (s *emailVerifRepoStub) MarkConsumed(context.Context, uuid.UUID) error { return nil }
func (s *emailVerifRepoStub) DeleteExpired(context.Context) (int64, error)  { return 0, nil }

type investmentRepoStub struct {
	createFn       func(ctx context.Context, inv *entities.Investment) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*entities.Investment, error)
	listByUserFn   func(ctx context.Context, userID uuid.UUID) ([]*entities.Investment, error)
	listFn         func(ctx context.Context, filter entities.InvestmentFilter, pagination utils.PaginationParams) ([]*entities.Investment, int64, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, status entities.InvestmentStatus) error
	statsFn        func(ctx context.Context) (*entities.InvestmentStats, error)
}

func (s *investmentRepoStub) Create(ctx context.Context, inv *entities.Investment) error {
	if s.createFn != nil {
		return s.createFn(ctx, inv)
	}
	return nil
}
func (s *investmentRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Investment, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}
func (s *investmentRepoStub) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Investment, error) {
	if s.listByUserFn != nil {
		return s.listByUserFn(ctx, userID)
	}
	return nil, nil
}
func (s *investmentRepoStub) List(ctx context.Context, filter entities.InvestmentFilter, pagination utils.PaginationParams) ([]*entities.Investment, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter, pagination)
	}
	return nil, 0, nil
}
func (s *investmentRepoStub) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.InvestmentStatus) error {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, id, status)
	}
	return nil
}
func (s *investmentRepoStub) Stats(ctx context.Context) (*entities.InvestmentStats, error) {
	if s.statsFn != nil {
		return s.statsFn(ctx)
	}
	return &entities.InvestmentStats{}, nil
}

type assetRepoStub struct {
	createFn      func(ctx context.Context, asset *entities.Asset) error
	getBySymbolFn func(ctx context.Context, symbol entities.Coin) (*entities.Asset, error)
	listFn        func(ctx context.Context, activeOnly bool) ([]*entities.Asset, error)
	updateFn      func(ctx context.Context, asset *entities.Asset) error
}

func (s *assetRepoStub) Create(ctx context.Context, asset *entities.Asset) error {
	if s.createFn != nil {
		return s.createFn(ctx, asset)
	}
	return nil
}
func (s *assetRepoStub) GetBySymbol(ctx context.Context, symbol entities.Coin) (*entities.Asset, error) {
	if s.getBySymbolFn != nil {
		return s.getBySymbolFn(ctx, symbol)
	}
	return nil, domainerrors.ErrNotFound
}
func (s *assetRepoStub) List(ctx context.Context, activeOnly bool) ([]*entities.Asset, error) {
	if s.listFn != nil {
		return s.listFn(ctx, activeOnly)
	}
	return nil, nil
}
func (s *assetRepoStub) Update(ctx context.Context, asset *entities.Asset) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, asset)
	}
	return nil
}

// memWizardRepo keeps sessions in a map; enough for driving handlers.
type memWizardRepo struct {
	sessions map[uuid.UUID]*entities.WizardSession
}

func newMemWizardRepo() *memWizardRepo {
	return &memWizardRepo{sessions: map[uuid.UUID]*entities.WizardSession{}}
}
func (s *memWizardRepo) Save(_ context.Context, session *entities.WizardSession) error {
	s.sessions[session.ID] = session
	return nil
}
func (s *memWizardRepo) Get(_ context.Context, id uuid.UUID) (*entities.WizardSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return session, nil
}
func (s *memWizardRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.sessions, id)
	return nil
}

// asUser injects an authenticated identity the way the auth middleware would.
func asUser(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.UserEmailKey, "user@cryptobet.io")
		c.Set(middleware.UserRoleKey, role)
		c.Next()
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return out
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}
