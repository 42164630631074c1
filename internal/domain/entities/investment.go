package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// InvestmentStatus represents the review status of an investment request
type InvestmentStatus string

const (
	InvestmentStatusPending  InvestmentStatus = "pending"
	InvestmentStatusApproved InvestmentStatus = "approved"
	InvestmentStatusRejected InvestmentStatus = "rejected"
)

// Terminal reports whether the status permits no further transition.
// The only allowed transitions are pending -> approved and pending -> rejected.
func (s InvestmentStatus) Terminal() bool {
	return s == InvestmentStatusApproved || s == InvestmentStatusRejected
}

// Valid reports whether the status is one of the known set.
func (s InvestmentStatus) Valid() bool {
	return s == InvestmentStatusPending || s == InvestmentStatusApproved || s == InvestmentStatusRejected
}

// Investment is a claimed funding deposit awaiting admin review. Records are
// append-only: user name and email are denormalized at submission time and the
// row is never hard-deleted.
type Investment struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"userId"`
	UserName        string           `json:"userName"`
	Email           string           `json:"email"`
	AmountUSD       float64          `json:"amount"`
	Coin            Coin             `json:"coin"`
	CoinAmount      float64          `json:"coinAmount"`
	CBCAmount       float64          `json:"cbcAmount"`
	Status          InvestmentStatus `json:"status"`
	TransactionHash string           `json:"transactionHash"`
	ReviewedAt      null.Time        `json:"reviewedAt,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// SubmitInvestmentInput represents input for a direct investment submission
type SubmitInvestmentInput struct {
	AmountUSD       float64 `json:"amount" binding:"required,gt=0"`
	Coin            Coin    `json:"coin" binding:"required"`
	TransactionHash string  `json:"transactionHash" binding:"required"`
}

// InvestmentFilter narrows an admin investment listing.
type InvestmentFilter struct {
	Status InvestmentStatus
	Search string
}

// InvestmentQuote holds the derived quantities for a prospective investment.
// Both values are pure functions of the inputs and are recomputed on every
// change, never cached.
type InvestmentQuote struct {
	AmountUSD  float64 `json:"amount"`
	Coin       Coin    `json:"coin"`
	CoinAmount float64 `json:"coinAmount"`
	CBCAmount  float64 `json:"cbcAmount"`
}

// NewInvestmentQuote derives the settlement-asset and platform-token
// quantities from the USD amount, the asset unit price and the fixed CBC
// token price.
func NewInvestmentQuote(amountUSD float64, coin Coin, unitPriceUSD, tokenPriceUSD float64) InvestmentQuote {
	return InvestmentQuote{
		AmountUSD:  amountUSD,
		Coin:       coin,
		CoinAmount: amountUSD / unitPriceUSD,
		CBCAmount:  amountUSD / tokenPriceUSD,
	}
}

// InvestmentStats aggregates figures for the admin dashboard.
type InvestmentStats struct {
	TotalUsers       int64   `json:"totalUsers"`
	TotalInvestments int64   `json:"totalInvestments"`
	PendingCount     int64   `json:"pendingCount"`
	ApprovedCount    int64   `json:"approvedCount"`
	ApprovedUSD      float64 `json:"approvedUsd"`
	ApprovedCBC      float64 `json:"approvedCbc"`
}
