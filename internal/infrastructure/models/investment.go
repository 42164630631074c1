package models

import (
	"time"

	"github.com/google/uuid"
)

// Investment rows are append-only; no gorm.DeletedAt on purpose.
type Investment struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	UserName        string    `gorm:"type:varchar(100);not null"`
	Email           string    `gorm:"type:varchar(255);not null"`
	Amount          float64   `gorm:"type:decimal(18,2);not null"`
	Coin            string    `gorm:"type:varchar(10);not null"`
	CoinAmount      float64   `gorm:"type:decimal(30,8);not null"`
	CBCAmount       float64   `gorm:"type:decimal(30,8);not null;column:cbc_amount"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	TransactionHash string    `gorm:"type:varchar(255);not null"`
	ReviewedAt      *time.Time
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

func (Investment) TableName() string {
	return "investments"
}
