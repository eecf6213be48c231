package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosePeriodRequest defines the payload for closing an accounting
// period into retained earnings.
type ClosePeriodRequest struct {
	Start    time.Time `json:"start" binding:"required"`
	End      time.Time `json:"end" binding:"required"`
	BranchID string    `json:"branchID"`
}

// NetIncomeResponse carries the derived net income figure.
type NetIncomeResponse struct {
	BranchID  string          `json:"branchID,omitempty"`
	NetIncome decimal.Decimal `json:"netIncome"`
}
