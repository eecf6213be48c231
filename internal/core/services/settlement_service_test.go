package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
	"github.com/dsadvance/parcel_ledger_app/internal/core/services"
)

func settlementContext() domain.SettlementContext {
	fee := decimal.NewFromInt(5)
	return domain.SettlementContext{
		Accounts: []domain.Account{
			{AccountID: "acc-bank", Code: "1100", Name: "Bank", AccountType: domain.Asset, IsActive: true},
			{AccountID: "acc-wallet-cust-usd", Code: "2100", Name: "Customer Wallets USD", AccountType: domain.Liability, IsActive: true},
			{AccountID: "acc-wallet-drv-usd", Code: "2200", Name: "Driver Wallets USD", AccountType: domain.Liability, IsActive: true},
			{AccountID: "acc-wallet-drv-khr", Code: "2210", Name: "Driver Wallets KHR", AccountType: domain.Liability, IsActive: true},
			{AccountID: "acc-revenue", Code: "4000", Name: "Delivery Revenue", AccountType: domain.Revenue, IsActive: true},
			{AccountID: "acc-comm-exp", Code: "5000", Name: "Commission Expense", AccountType: domain.Expense, IsActive: true},
		},
		Settings: domain.LedgerSettings{
			DriverWalletUSDAccountID:   "acc-wallet-drv-usd",
			DriverWalletKHRAccountID:   "acc-wallet-drv-khr",
			CustomerWalletUSDAccountID: "acc-wallet-cust-usd",
			DeliveryRevenueAccountID:   "acc-revenue",
			CommissionExpenseAccountID: "acc-comm-exp",
			DefaultBankAccountID:       "acc-bank",
		},
		Employees: []domain.Employee{
			{
				EmployeeID: "drv-a",
				Name:       "Sok Dara",
				IsDriver:   true,
				Driver: &domain.DriverProfile{
					SalaryType:      domain.WithoutBaseSalary,
					WalletAccountID: "acc-wallet-drv-a",
				},
			},
			{
				EmployeeID: "drv-b",
				Name:       "Chan Vuthy",
				IsDriver:   true,
				Driver: &domain.DriverProfile{
					SalaryType:      domain.WithoutBaseSalary,
					WalletAccountID: "acc-wallet-drv-b",
				},
			},
		},
		CommissionRules: []domain.CommissionRule{
			pctRule("pickup-70", "", domain.AllSalaryTypes, domain.CommissionPickup, 70, false),
			pctRule("delivery-70", "", domain.AllSalaryTypes, domain.CommissionDelivery, 70, false),
		},
		Bookings: []domain.Booking{
			{
				BookingID:        "bkg-1",
				CustomerID:       "cust-1",
				TotalFee:         decimal.NewFromInt(5),
				FeeCurrency:      domain.CurrencyUSD,
				PickupDriverID:   "drv-a",
				DeliveryDriverID: "drv-b",
				Items: []domain.BookingItem{
					{
						ItemID:      "itm-1",
						DeliveryFee: &fee,
						CODAmount:   decimal.NewFromInt(50),
						CODCurrency: domain.CurrencyUSD,
						TaxiFee:     decimal.Zero,
					},
				},
			},
		},
		Currencies: []domain.Currency{
			{CurrencyCode: domain.CurrencyUSD, ExchangeRate: decimal.NewFromInt(1), IsBase: true},
			{CurrencyCode: domain.CurrencyKHR, ExchangeRate: decimal.NewFromInt(4000)},
		},
	}
}

func lineFor(lines []domain.JournalEntryLine, accountID string) (domain.JournalEntryLine, bool) {
	for _, l := range lines {
		if l.AccountID == accountID {
			return l, true
		}
	}
	return domain.JournalEntryLine{}, false
}

func TestBuildSettlementPreview_DriverSettlementSplit(t *testing.T) {
	req := domain.SettlementRequest{
		TransactionType: domain.SettlementSettlement,
		UserID:          "drv-a",
		UserName:        "Sok Dara",
		UserRole:        domain.RoleDriver,
		Amount:          decimal.NewFromInt(50),
		CurrencyCode:    domain.CurrencyUSD,
		RelatedItems:    []domain.RelatedItemRef{{BookingID: "bkg-1", ItemID: "itm-1"}},
	}

	preview := services.BuildSettlementPreview(req, settlementContext())

	require.True(t, preview.IsValid, "errors: %v", preview.Errors)
	require.Len(t, preview.Lines, 6)

	// Cash in first.
	assert.Equal(t, "acc-bank", preview.Lines[0].AccountID)
	assert.True(t, preview.Lines[0].Debit.Equal(decimal.NewFromInt(50)))

	cod, ok := lineFor(preview.Lines, "acc-wallet-cust-usd")
	require.True(t, ok)
	assert.True(t, cod.Credit.Equal(decimal.NewFromInt(45)), "cod credit %s", cod.Credit)

	revenue, ok := lineFor(preview.Lines, "acc-revenue")
	require.True(t, ok)
	assert.True(t, revenue.Credit.Equal(decimal.NewFromInt(5)))

	expense, ok := lineFor(preview.Lines, "acc-comm-exp")
	require.True(t, ok)
	assert.True(t, expense.Debit.Equal(decimal.NewFromInt(7)))

	pickupWallet, ok := lineFor(preview.Lines, "acc-wallet-drv-a")
	require.True(t, ok)
	assert.True(t, pickupWallet.Credit.Equal(decimal.NewFromFloat(3.5)))

	deliveryWallet, ok := lineFor(preview.Lines, "acc-wallet-drv-b")
	require.True(t, ok)
	assert.True(t, deliveryWallet.Credit.Equal(decimal.NewFromFloat(3.5)))

	assert.True(t, preview.TotalDebit.Equal(preview.TotalCredit),
		"unbalanced: %s vs %s", preview.TotalDebit, preview.TotalCredit)
	assert.True(t, preview.Difference.IsZero())
}

func TestBuildSettlementPreview_TaxiFeeReducesCODLiability(t *testing.T) {
	sctx := settlementContext()
	sctx.Bookings[0].Items[0].TaxiFee = decimal.NewFromInt(2)

	req := domain.SettlementRequest{
		TransactionType: domain.SettlementSettlement,
		UserID:          "drv-a",
		UserName:        "Sok Dara",
		UserRole:        domain.RoleDriver,
		Amount:          decimal.NewFromInt(50),
		CurrencyCode:    domain.CurrencyUSD,
		RelatedItems:    []domain.RelatedItemRef{{BookingID: "bkg-1", ItemID: "itm-1"}},
	}

	preview := services.BuildSettlementPreview(req, sctx)

	cod, ok := lineFor(preview.Lines, "acc-wallet-cust-usd")
	require.True(t, ok)
	assert.True(t, cod.Credit.Equal(decimal.NewFromInt(43)), "cod credit %s", cod.Credit)

	// No separate taxi line is ever produced; the difference lands in the
	// balancing adjustment against the settling driver, on top of their
	// commission credit.
	walletCredit := decimal.Zero
	for _, l := range preview.Lines {
		if l.AccountID == "acc-wallet-drv-a" {
			walletCredit = walletCredit.Add(l.Credit)
		}
	}
	assert.True(t, walletCredit.Equal(decimal.NewFromFloat(5.5)), "wallet credit %s", walletCredit)
	assert.True(t, preview.IsValid, "errors: %v", preview.Errors)
}

func TestBuildSettlementPreview_MixedCurrencyGate(t *testing.T) {
	sctx := settlementContext()
	sctx.Bookings[0].Items[0].CODCurrency = domain.CurrencyKHR
	sctx.Bookings[0].Items[0].CODAmount = decimal.NewFromInt(200000)

	req := domain.SettlementRequest{
		TransactionType: domain.SettlementSettlement,
		UserID:          "drv-a",
		UserName:        "Sok Dara",
		UserRole:        domain.RoleDriver,
		Amount:          decimal.NewFromInt(50),
		CurrencyCode:    domain.CurrencyUSD,
		RelatedItems:    []domain.RelatedItemRef{{BookingID: "bkg-1", ItemID: "itm-1"}},
	}

	preview := services.BuildSettlementPreview(req, sctx)

	assert.False(t, preview.IsValid)
	require.Len(t, preview.Errors, 1)
	assert.Contains(t, preview.Errors[0], "different currency")
	// Only the cash debit is ever emitted; nothing partial follows.
	require.Len(t, preview.Lines, 1)
	assert.Equal(t, "acc-bank", preview.Lines[0].AccountID)
}

func TestBuildSettlementPreview_ZeroItemSettlementPlugsDriverWallet(t *testing.T) {
	req := domain.SettlementRequest{
		TransactionType: domain.SettlementSettlement,
		UserID:          "drv-a",
		UserName:        "Sok Dara",
		UserRole:        domain.RoleDriver,
		Amount:          decimal.NewFromInt(20),
		CurrencyCode:    domain.CurrencyUSD,
	}

	preview := services.BuildSettlementPreview(req, settlementContext())

	require.True(t, preview.IsValid, "errors: %v", preview.Errors)
	require.Len(t, preview.Lines, 2)
	assert.Equal(t, "acc-bank", preview.Lines[0].AccountID)
	assert.True(t, preview.Lines[0].Debit.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "acc-wallet-drv-a", preview.Lines[1].AccountID)
	assert.True(t, preview.Lines[1].Credit.Equal(decimal.NewFromInt(20)))
}

func TestBuildSettlementPreview_SameDriverBothRoles(t *testing.T) {
	sctx := settlementContext()
	sctx.Bookings[0].DeliveryDriverID = "drv-a"

	req := domain.SettlementRequest{
		TransactionType: domain.SettlementSettlement,
		UserID:          "drv-a",
		UserName:        "Sok Dara",
		UserRole:        domain.RoleDriver,
		Amount:          decimal.NewFromInt(50),
		CurrencyCode:    domain.CurrencyUSD,
		RelatedItems:    []domain.RelatedItemRef{{BookingID: "bkg-1", ItemID: "itm-1"}},
	}

	preview := services.BuildSettlementPreview(req, sctx)

	// One accumulation per role: a single 7.00 credit, not two lines.
	wallet, ok := lineFor(preview.Lines, "acc-wallet-drv-a")
	require.True(t, ok)
	assert.True(t, wallet.Credit.Equal(decimal.NewFromInt(7)), "wallet credit %s", wallet.Credit)
	assert.True(t, preview.IsValid, "errors: %v", preview.Errors)
}

func TestBuildSettlementPreview_DepositAndWithdrawal(t *testing.T) {
	sctx := settlementContext()

	deposit := domain.SettlementRequest{
		TransactionType: domain.SettlementDeposit,
		UserID:          "drv-a",
		UserName:        "Sok Dara",
		UserRole:        domain.RoleDriver,
		Amount:          decimal.NewFromInt(100),
		CurrencyCode:    domain.CurrencyUSD,
	}
	preview := services.BuildSettlementPreview(deposit, sctx)
	require.True(t, preview.IsValid, "errors: %v", preview.Errors)
	require.Len(t, preview.Lines, 2)
	assert.True(t, preview.Lines[0].Debit.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "acc-bank", preview.Lines[0].AccountID)
	assert.Equal(t, "acc-wallet-drv-usd", preview.Lines[1].AccountID)

	withdrawal := deposit
	withdrawal.TransactionType = domain.SettlementWithdrawal
	preview = services.BuildSettlementPreview(withdrawal, sctx)
	require.True(t, preview.IsValid, "errors: %v", preview.Errors)
	require.Len(t, preview.Lines, 2)
	assert.Equal(t, "acc-wallet-drv-usd", preview.Lines[0].AccountID)
	assert.True(t, preview.Lines[0].Debit.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "acc-bank", preview.Lines[1].AccountID)
	assert.True(t, preview.Lines[1].Credit.Equal(decimal.NewFromInt(100)))
}

func TestBuildSettlementPreview_EarningHasNoCashMovement(t *testing.T) {
	req := domain.SettlementRequest{
		TransactionType: domain.SettlementEarning,
		UserID:          "drv-a",
		UserName:        "Sok Dara",
		UserRole:        domain.RoleDriver,
		Amount:          decimal.NewFromFloat(3.5),
		CurrencyCode:    domain.CurrencyUSD,
	}

	preview := services.BuildSettlementPreview(req, settlementContext())

	require.True(t, preview.IsValid, "errors: %v", preview.Errors)
	require.Len(t, preview.Lines, 2)
	assert.Equal(t, "acc-comm-exp", preview.Lines[0].AccountID)
	assert.Equal(t, "acc-wallet-drv-usd", preview.Lines[1].AccountID)
	_, touchesBank := lineFor(preview.Lines, "acc-bank")
	assert.False(t, touchesBank)
}

func TestBuildSettlementPreview_KHRAmountsConvertedToBase(t *testing.T) {
	req := domain.SettlementRequest{
		TransactionType: domain.SettlementDeposit,
		UserID:          "drv-a",
		UserName:        "Sok Dara",
		UserRole:        domain.RoleDriver,
		Amount:          decimal.NewFromInt(40000),
		CurrencyCode:    domain.CurrencyKHR,
	}

	preview := services.BuildSettlementPreview(req, settlementContext())

	require.True(t, preview.IsValid, "errors: %v", preview.Errors)
	require.Len(t, preview.Lines, 2)
	assert.True(t, preview.Lines[0].Debit.Equal(decimal.NewFromInt(10)), "base debit %s", preview.Lines[0].Debit)
	assert.True(t, preview.Lines[0].OriginalAmount.Equal(decimal.NewFromInt(40000)))
	assert.Equal(t, domain.CurrencyKHR, preview.Lines[0].OriginalCurrency)
	assert.True(t, preview.Lines[0].OriginalRate.Equal(decimal.NewFromInt(4000)))
	// The KHR deposit lands in the KHR driver wallet.
	assert.Equal(t, "acc-wallet-drv-khr", preview.Lines[1].AccountID)
}

func TestBuildSettlementPreview_NegativeAmountRejected(t *testing.T) {
	req := domain.SettlementRequest{
		TransactionType: domain.SettlementDeposit,
		UserID:          "drv-a",
		UserName:        "Sok Dara",
		UserRole:        domain.RoleDriver,
		Amount:          decimal.NewFromInt(-5),
		CurrencyCode:    domain.CurrencyUSD,
	}

	preview := services.BuildSettlementPreview(req, settlementContext())
	assert.False(t, preview.IsValid)
	require.NotEmpty(t, preview.Errors)
	assert.Contains(t, preview.Errors[0], "must not be negative")
}

func TestAccumulateSettlement(t *testing.T) {
	items := []services.SettlementItemBreakdown{
		{
			BookingID: "bkg-1", ItemID: "itm-1",
			Fee: decimal.NewFromInt(5), COD: decimal.NewFromInt(50), TaxiFee: decimal.NewFromInt(2),
			PickupCommission: decimal.NewFromFloat(3.5), DeliveryCommission: decimal.NewFromFloat(3.5),
			PickupDriverID: "drv-a", DeliveryDriverID: "drv-b",
		},
		{
			BookingID: "bkg-2", ItemID: "itm-1",
			Fee: decimal.NewFromInt(3), COD: decimal.NewFromInt(30),
			PickupCommission: decimal.NewFromInt(2), DeliveryCommission: decimal.NewFromInt(2),
			PickupDriverID: "drv-a", DeliveryDriverID: "drv-a",
		},
	}

	totals := services.AccumulateSettlement(items)

	assert.True(t, totals.CODLiability.Equal(decimal.NewFromInt(70)), "cod %s", totals.CODLiability)
	assert.True(t, totals.GrossRevenue.Equal(decimal.NewFromInt(8)))
	assert.True(t, totals.CommissionExpense.Equal(decimal.NewFromInt(11)))
	assert.True(t, totals.CommissionByDriver["drv-a"].Equal(decimal.NewFromFloat(7.5)))
	assert.True(t, totals.CommissionByDriver["drv-b"].Equal(decimal.NewFromFloat(3.5)))
}

func settlementMocks(sctx domain.SettlementContext) (portsrepo.RepositoryProvider, *MockJournalRepository) {
	mockAccounts := new(MockAccountRepository)
	mockJournals := new(MockJournalRepository)
	mockSettings := new(MockSettingsRepository)
	mockEmployees := new(MockEmployeeRepository)
	mockRules := new(MockCommissionRuleRepository)
	mockBookings := new(MockBookingRepository)
	mockCurrencies := new(MockCurrencyRepository)

	settings := sctx.Settings
	mockAccounts.On("ListAccounts", mock.Anything).Return(sctx.Accounts, nil)
	mockSettings.On("GetLedgerSettings", mock.Anything).Return(&settings, nil)
	mockEmployees.On("ListEmployees", mock.Anything).Return(sctx.Employees, nil)
	mockRules.On("ListRules", mock.Anything).Return(sctx.CommissionRules, nil)
	mockCurrencies.On("ListCurrencies", mock.Anything).Return(sctx.Currencies, nil)
	mockBookings.On("FindBookingsByIDs", mock.Anything, mock.Anything).Return(sctx.Bookings, nil)

	return portsrepo.RepositoryProvider{
		AccountRepo:    mockAccounts,
		JournalRepo:    mockJournals,
		SettingsRepo:   mockSettings,
		EmployeeRepo:   mockEmployees,
		CommissionRepo: mockRules,
		BookingRepo:    mockBookings,
		CurrencyRepo:   mockCurrencies,
	}, mockJournals
}

func TestCreateSettlementEntry_RejectsInvalidPreview(t *testing.T) {
	repos, mockJournals := settlementMocks(settlementContext())
	svc := services.NewSettlementService(repos)

	req := domain.SettlementRequest{
		TransactionType: domain.SettlementType("BOGUS"),
		UserID:          "drv-a",
		UserName:        "Sok Dara",
		UserRole:        domain.RoleDriver,
		Amount:          decimal.NewFromInt(10),
		CurrencyCode:    domain.CurrencyUSD,
	}

	_, err := svc.CreateSettlementEntry(context.Background(), req, "user-1")
	assert.ErrorIs(t, err, services.ErrInvalidPreview)
	mockJournals.AssertNotCalled(t, "SaveJournalEntry", mock.Anything, mock.Anything)
}

func TestCreateSettlementEntry_PostsBalancedEntry(t *testing.T) {
	repos, mockJournals := settlementMocks(settlementContext())
	svc := services.NewSettlementService(repos)

	var saved domain.JournalEntry
	mockJournals.On("SaveJournalEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.JournalEntry) }).
		Return(nil)

	req := domain.SettlementRequest{
		TransactionType: domain.SettlementSettlement,
		UserID:          "drv-a",
		UserName:        "Sok Dara",
		UserRole:        domain.RoleDriver,
		Amount:          decimal.NewFromInt(50),
		CurrencyCode:    domain.CurrencyUSD,
		RelatedItems:    []domain.RelatedItemRef{{BookingID: "bkg-1", ItemID: "itm-1"}},
		BranchID:        "branch-pp",
	}

	entry, err := svc.CreateSettlementEntry(context.Background(), req, "user-1")
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, domain.StatusPosted, saved.Status)
	assert.Equal(t, "branch-pp", saved.BranchID)
	assert.True(t, strings.HasPrefix(saved.Reference, "STL-"), "reference %s", saved.Reference)
	assert.True(t, saved.TotalDebit().Equal(saved.TotalCredit()),
		"unbalanced: %s vs %s", saved.TotalDebit(), saved.TotalCredit())
	assert.Equal(t, "user-1", saved.CreatedBy)
	mockJournals.AssertExpectations(t)
}
