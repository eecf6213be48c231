package dto

import (
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RelatedItemInput points a settlement at one parcel of one booking.
type RelatedItemInput struct {
	BookingID string `json:"bookingID" binding:"required"`
	ItemID    string `json:"itemID" binding:"required"`
}

// SettlementRequestInput defines the payload for previewing or posting a
// wallet transaction.
type SettlementRequestInput struct {
	TransactionType domain.SettlementType `json:"transactionType" binding:"required,oneof=DEPOSIT WITHDRAWAL SETTLEMENT EARNING REFUND"`
	UserID          string                `json:"userID" binding:"required"`
	UserName        string                `json:"userName"`
	UserRole        domain.WalletRole     `json:"userRole" binding:"required,oneof=customer driver"`
	Amount          decimal.Decimal       `json:"amount"`
	CurrencyCode    string                `json:"currencyCode" binding:"required,oneof=USD KHR"`
	RelatedItems    []RelatedItemInput    `json:"relatedItems" binding:"omitempty,dive"`
	BankAccountID   string                `json:"bankAccountID"`
	Description     string                `json:"description"`
	BranchID        string                `json:"branchID"`
}

// ToSettlementRequest converts the input into the domain request.
func (in SettlementRequestInput) ToSettlementRequest() domain.SettlementRequest {
	items := make([]domain.RelatedItemRef, len(in.RelatedItems))
	for i, ref := range in.RelatedItems {
		items[i] = domain.RelatedItemRef{BookingID: ref.BookingID, ItemID: ref.ItemID}
	}
	return domain.SettlementRequest{
		TransactionType: in.TransactionType,
		UserID:          in.UserID,
		UserName:        in.UserName,
		UserRole:        in.UserRole,
		Amount:          in.Amount,
		CurrencyCode:    in.CurrencyCode,
		RelatedItems:    items,
		BankAccountID:   in.BankAccountID,
		Description:     in.Description,
		BranchID:        in.BranchID,
	}
}

// SettlementPreviewResponse mirrors the preview result.
type SettlementPreviewResponse struct {
	IsValid     bool                       `json:"isValid"`
	TotalDebit  decimal.Decimal            `json:"totalDebit"`
	TotalCredit decimal.Decimal            `json:"totalCredit"`
	Difference  decimal.Decimal            `json:"difference"`
	Lines       []JournalEntryLineResponse `json:"lines"`
	Errors      []string                   `json:"errors"`
	Warnings    []string                   `json:"warnings"`
}

// ToSettlementPreviewResponse converts a domain preview result.
func ToSettlementPreviewResponse(p *domain.SettlementPreviewResult) SettlementPreviewResponse {
	lines := make([]JournalEntryLineResponse, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = JournalEntryLineResponse{
			AccountID:        l.AccountID,
			Debit:            l.Debit,
			Credit:           l.Credit,
			Description:      l.Description,
			OriginalAmount:   l.OriginalAmount,
			OriginalCurrency: l.OriginalCurrency,
			OriginalRate:     l.OriginalRate,
		}
	}
	return SettlementPreviewResponse{
		IsValid:     p.IsValid,
		TotalDebit:  p.TotalDebit,
		TotalCredit: p.TotalCredit,
		Difference:  p.Difference,
		Lines:       lines,
		Errors:      p.Errors,
		Warnings:    p.Warnings,
	}
}
