package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"cryptobet.backend/internal/domain/entities"
	domainerrors "cryptobet.backend/internal/domain/errors"
	"cryptobet.backend/internal/infrastructure/models"
	"cryptobet.backend/pkg/utils"
)

// InvestmentRepository implements investment request data operations
type InvestmentRepository struct {
	db *gorm.DB
}

// NewInvestmentRepository creates a new investment repository
func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// Create stores a new investment request
func (r *InvestmentRepository) Create(ctx context.Context, investment *entities.Investment) error {
	m := &models.Investment{
		ID:              investment.ID,
		UserID:          investment.UserID,
		UserName:        investment.UserName,
		Email:           investment.Email,
		Amount:          investment.AmountUSD,
		Coin:            string(investment.Coin),
		CoinAmount:      investment.CoinAmount,
		CBCAmount:       investment.CBCAmount,
		Status:          string(investment.Status),
		TransactionHash: investment.TransactionHash,
		CreatedAt:       investment.CreatedAt,
		UpdatedAt:       investment.UpdatedAt,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	investment.ID = m.ID
	return nil
}

// GetByID gets an investment request by ID
func (r *InvestmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Investment, error) {
	var m models.Investment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return investmentToEntity(&m), nil
}

// ListByUserID lists a user's own investment requests, newest first
func (r *InvestmentRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Investment, error) {
	var investmentModels []models.Investment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&investmentModels).Error
	if err != nil {
		return nil, err
	}
	return investmentsToEntities(investmentModels), nil
}

// List lists investment requests newest first with optional status filter and
// case-insensitive search over id, user name and email
func (r *InvestmentRepository) List(ctx context.Context, filter entities.InvestmentFilter, pagination utils.PaginationParams) ([]*entities.Investment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Investment{})

	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		searchTerm := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(CAST(id AS TEXT)) LIKE ? OR LOWER(user_name) LIKE ? OR LOWER(email) LIKE ?",
			searchTerm, searchTerm, searchTerm,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	var investmentModels []models.Investment
	if err := query.Order("created_at DESC").Find(&investmentModels).Error; err != nil {
		return nil, 0, err
	}
	return investmentsToEntities(investmentModels), total, nil
}

// UpdateStatus transitions a pending investment to a terminal status. The
// UPDATE is guarded on status = 'pending' so that two concurrent reviews of
// the same record cannot both win; the loser sees ErrInvalidTransition.
func (r *InvestmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.InvestmentStatus) error {
	if !status.Terminal() {
		return domainerrors.ErrInvalidInput
	}

	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Investment{}).
		Where("id = ? AND status = ?", id, string(entities.InvestmentStatusPending)).
		Updates(map[string]interface{}{
			"status":      string(status),
			"reviewed_at": now,
			"updated_at":  now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the record does not exist or it already left pending.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Investment{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrInvalidTransition
	}
	return nil
}

// Stats aggregates investment figures for the admin dashboard
func (r *InvestmentRepository) Stats(ctx context.Context) (*entities.InvestmentStats, error) {
	stats := &entities.InvestmentStats{}

	if err := r.db.WithContext(ctx).Model(&models.Investment{}).Count(&stats.TotalInvestments).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Investment{}).
		Where("status = ?", string(entities.InvestmentStatusPending)).
		Count(&stats.PendingCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Investment{}).
		Where("status = ?", string(entities.InvestmentStatusApproved)).
		Count(&stats.ApprovedCount).Error; err != nil {
		return nil, err
	}

	var totals struct {
		AmountUSD float64
		CBC       float64
	}
	err := r.db.WithContext(ctx).Model(&models.Investment{}).
		Select("COALESCE(SUM(amount), 0) AS amount_usd, COALESCE(SUM(cbc_amount), 0) AS cbc").
		Where("status = ?", string(entities.InvestmentStatusApproved)).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	stats.ApprovedUSD = totals.AmountUSD
	stats.ApprovedCBC = totals.CBC
	return stats, nil
}

func investmentToEntity(m *models.Investment) *entities.Investment {
	return &entities.Investment{
		ID:              m.ID,
		UserID:          m.UserID,
		UserName:        m.UserName,
		Email:           m.Email,
		AmountUSD:       m.Amount,
		Coin:            entities.Coin(m.Coin),
		CoinAmount:      m.CoinAmount,
		CBCAmount:       m.CBCAmount,
		Status:          entities.InvestmentStatus(m.Status),
		TransactionHash: m.TransactionHash,
		ReviewedAt:      null.TimeFromPtr(m.ReviewedAt),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func investmentsToEntities(investmentModels []models.Investment) []*entities.Investment {
	investments := make([]*entities.Investment, 0, len(investmentModels))
	for i := range investmentModels {
		investments = append(investments, investmentToEntity(&investmentModels[i]))
	}
	return investments
}
