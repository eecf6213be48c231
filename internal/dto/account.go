package dto

import (
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating a single account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	SubType         string             `json:"subType"`
	CurrencyCode    string             `json:"currencyCode" binding:"omitempty,len=3"`
	IsHeader        bool               `json:"isHeader"`
	ParentAccountID string             `json:"parentAccountID"`
}

// BulkUpsertAccountsRequest imports a chart of accounts, keyed by code.
type BulkUpsertAccountsRequest struct {
	Accounts []CreateAccountRequest `json:"accounts" binding:"required,min=1,dive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	SubType         string             `json:"subType,omitempty"`
	CurrencyCode    string             `json:"currencyCode,omitempty"`
	IsHeader        bool               `json:"isHeader"`
	ParentAccountID string             `json:"parentAccountID,omitempty"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     a.AccountType,
		SubType:         a.SubType,
		CurrencyCode:    a.CurrencyCode,
		IsHeader:        a.IsHeader,
		ParentAccountID: a.ParentAccountID,
	}
}

// ToAccountResponses converts a slice of domain.Account.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
