package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Asset struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Symbol         string    `gorm:"type:varchar(10);uniqueIndex;not null"`
	Name           string    `gorm:"type:varchar(100);not null"`
	UnitPriceUSD   float64   `gorm:"type:decimal(18,8);not null;column:unit_price_usd"`
	DepositAddress string    `gorm:"type:varchar(255);not null"`
	IsActive       bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}
