package ledger

import "github.com/tallybook-dev/tallybook/internal/model"

// DefaultChart returns the standard seed chart of accounts applied on New
// and on Reset.
func DefaultChart() []AccountInput {
	return []AccountInput{
		{Code: "100", Name: "Cash", Type: model.AccountTypeAsset, Category: "Current Assets"},
		{Code: "110", Name: "Accounts Receivable", Type: model.AccountTypeAsset, Category: "Current Assets"},
		{Code: "120", Name: "Inventory", Type: model.AccountTypeAsset, Category: "Current Assets"},
		{Code: "150", Name: "Equipment", Type: model.AccountTypeAsset, Category: "Fixed Assets"},
		{Code: "200", Name: "Accounts Payable", Type: model.AccountTypeLiability, Category: "Current Liabilities"},
		{Code: "210", Name: "Notes Payable", Type: model.AccountTypeLiability, Category: "Long-Term Liabilities"},
		{Code: "300", Name: "Owner's Capital", Type: model.AccountTypeEquity, Category: "Equity"},
		{Code: "310", Name: "Retained Earnings", Type: model.AccountTypeEquity, Category: "Equity"},
		{Code: "400", Name: "Sales", Type: model.AccountTypeRevenue, Category: "Operating Revenue"},
		{Code: "410", Name: "Service Revenue", Type: model.AccountTypeRevenue, Category: "Operating Revenue"},
		{Code: "500", Name: "Cost of Goods Sold", Type: model.AccountTypeExpense, Category: "Cost of Sales"},
		{Code: "510", Name: "Rent Expense", Type: model.AccountTypeExpense, Category: "Operating Expenses"},
		{Code: "520", Name: "Salaries Expense", Type: model.AccountTypeExpense, Category: "Operating Expenses"},
		{Code: "530", Name: "Utilities Expense", Type: model.AccountTypeExpense, Category: "Operating Expenses"},
	}
}
