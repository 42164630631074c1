package entities

import (
	"time"

	"github.com/google/uuid"
)

// WizardState represents a deposit wizard step
type WizardState string

const (
	WizardStateSelectingAsset  WizardState = "selecting_asset"
	WizardStateEnteringAmount  WizardState = "entering_amount"
	WizardStateAwaitingDeposit WizardState = "awaiting_deposit"
	WizardStateSubmitted       WizardState = "submitted"
)

// wizardTransitions is the transition table of the deposit wizard. Cancelling
// is allowed from any non-terminal state and is modelled as session deletion,
// so it does not appear here.
var wizardTransitions = map[WizardState]WizardState{
	WizardStateSelectingAsset:  WizardStateEnteringAmount,
	WizardStateEnteringAmount:  WizardStateAwaitingDeposit,
	WizardStateAwaitingDeposit: WizardStateSubmitted,
}

// CanAdvance reports whether the wizard may move from s to next.
func (s WizardState) CanAdvance(next WizardState) bool {
	return wizardTransitions[s] == next
}

// Terminal reports whether the wizard has completed.
func (s WizardState) Terminal() bool {
	return s == WizardStateSubmitted
}

// WizardSession is one in-progress run of the deposit wizard. Sessions live in
// Redis with a TTL; the pending Investment is the only durable side effect and
// is created exactly once, on the awaiting_deposit -> submitted transition.
type WizardSession struct {
	ID             uuid.UUID   `json:"id"`
	UserID         uuid.UUID   `json:"userId"`
	State          WizardState `json:"state"`
	Coin           Coin        `json:"coin,omitempty"`
	UnitPriceUSD   float64     `json:"unitPriceUsd,omitempty"`
	DepositAddress string      `json:"depositAddress,omitempty"`
	AmountUSD      float64     `json:"amount,omitempty"`
	CoinAmount     float64     `json:"coinAmount,omitempty"`
	CBCAmount      float64     `json:"cbcAmount,omitempty"`
	TransactionHash string     `json:"transactionHash,omitempty"`
	InvestmentID   uuid.UUID   `json:"investmentId,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// NewWizardSession starts a wizard run for a user in the asset-selection step.
func NewWizardSession(userID uuid.UUID) *WizardSession {
	now := time.Now()
	return &WizardSession{
		ID:        uuid.New(),
		UserID:    userID,
		State:     WizardStateSelectingAsset,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SelectAsset records the chosen settlement asset and advances the wizard.
// Returns false if the current state does not permit asset selection.
func (w *WizardSession) SelectAsset(asset *Asset) bool {
	if !w.State.CanAdvance(WizardStateEnteringAmount) {
		return false
	}
	w.Coin = asset.Symbol
	w.UnitPriceUSD = asset.UnitPriceUSD
	w.DepositAddress = asset.DepositAddress
	w.State = WizardStateEnteringAmount
	w.UpdatedAt = time.Now()
	return true
}

// EnterAmount validates the USD amount against the configured minimum,
// derives the quote and advances to the deposit-confirmation step. Returns
// false if the state or the amount does not permit advancing; on a rejected
// amount the wizard stays in place.
func (w *WizardSession) EnterAmount(amountUSD, minimumUSD, tokenPriceUSD float64) bool {
	if !w.State.CanAdvance(WizardStateAwaitingDeposit) {
		return false
	}
	if amountUSD <= 0 || amountUSD < minimumUSD {
		return false
	}
	quote := NewInvestmentQuote(amountUSD, w.Coin, w.UnitPriceUSD, tokenPriceUSD)
	w.AmountUSD = quote.AmountUSD
	w.CoinAmount = quote.CoinAmount
	w.CBCAmount = quote.CBCAmount
	w.State = WizardStateAwaitingDeposit
	w.UpdatedAt = time.Now()
	return true
}

// Confirm records the claimed transaction hash and completes the wizard.
// Returns false if the state does not permit confirmation or the hash is
// empty. The hash is a recorded claim only, never verified against any chain.
func (w *WizardSession) Confirm(txHash string) bool {
	if !w.State.CanAdvance(WizardStateSubmitted) || txHash == "" {
		return false
	}
	w.TransactionHash = txHash
	w.State = WizardStateSubmitted
	w.UpdatedAt = time.Now()
	return true
}
