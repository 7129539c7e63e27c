package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// TrialBalance aggregates total debits and credits across all entries up
// to asOf. TotalDebit always equals TotalCredit as a consequence of the
// balanced-entry law; this is the primary integrity check on the store.
type TrialBalance struct {
	AsOf        model.Date      `json:"asOf,omitzero"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}

// ReportLine is one account row inside a report section.
type ReportLine struct {
	AccountID string          `json:"accountId"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// Section groups account rows under a classification total.
type Section struct {
	Accounts []ReportLine    `json:"accounts"`
	Total    decimal.Decimal `json:"total"`
}

// BalanceSheet is the point-in-time statement of financial position.
// Current-period revenue and expense activity folds directly into equity
// without a formal closing entry.
type BalanceSheet struct {
	AsOf        model.Date `json:"asOf,omitzero"`
	Assets      Section    `json:"assets"`
	Liabilities Section    `json:"liabilities"`
	Equity      Section    `json:"equity"`
}

// IncomeStatement reports revenue and expense activity over an inclusive
// date range.
type IncomeStatement struct {
	StartDate model.Date      `json:"startDate"`
	EndDate   model.Date      `json:"endDate"`
	Revenue   Section         `json:"revenue"`
	Expenses  Section         `json:"expenses"`
	NetIncome decimal.Decimal `json:"netIncome"`
}

// rawBalancesLocked computes each account's (debit - credit) sum over
// entries within the inclusive [start, end] range. Zero dates are
// unbounded. Accounts with no activity are absent from the map.
func (l *Ledger) rawBalancesLocked(start, end model.Date) map[string]decimal.Decimal {
	raw := make(map[string]decimal.Decimal)
	for _, id := range l.entryOrder {
		entry := l.entries[id]
		if !start.IsZero() && entry.Date.Before(start) {
			continue
		}
		if !end.IsZero() && entry.Date.After(end) {
			continue
		}
		for _, line := range entry.Lines {
			raw[line.AccountID] = raw[line.AccountID].Add(line.Debit).Sub(line.Credit)
		}
	}
	return raw
}

// ComputeTrialBalance sums all debit and credit amounts across entries up
// to asOf (zero = all entries).
func (l *Ledger) ComputeTrialBalance(asOf model.Date) TrialBalance {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tb := TrialBalance{AsOf: asOf, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, id := range l.entryOrder {
		entry := l.entries[id]
		if !asOf.IsZero() && entry.Date.After(asOf) {
			continue
		}
		for _, line := range entry.Lines {
			tb.TotalDebit = tb.TotalDebit.Add(line.Debit)
			tb.TotalCredit = tb.TotalCredit.Add(line.Credit)
		}
	}
	return tb
}

// ComputeBalanceSheet aggregates raw account balances into assets,
// liabilities, and equity sections as of the given date. Revenue rolls up
// into equity negated; expenses reduce equity. The derived identity
// assets == liabilities + equity holds whenever the journal is balanced
// and accounts are correctly typed.
func (l *Ledger) ComputeBalanceSheet(asOf model.Date) BalanceSheet {
	l.mu.RLock()
	defer l.mu.RUnlock()

	raw := l.rawBalancesLocked(model.Date{}, asOf)
	bs := BalanceSheet{
		AsOf:        asOf,
		Assets:      Section{Accounts: []ReportLine{}, Total: decimal.Zero},
		Liabilities: Section{Accounts: []ReportLine{}, Total: decimal.Zero},
		Equity:      Section{Accounts: []ReportLine{}, Total: decimal.Zero},
	}
	for _, id := range l.accountOrder {
		acct := l.accounts[id]
		balance := raw[id]
		switch acct.Type {
		case model.AccountTypeAsset:
			bs.Assets.Accounts = append(bs.Assets.Accounts, reportLine(acct, balance))
			bs.Assets.Total = bs.Assets.Total.Add(balance)
		case model.AccountTypeLiability:
			bs.Liabilities.Accounts = append(bs.Liabilities.Accounts, reportLine(acct, balance.Neg()))
			bs.Liabilities.Total = bs.Liabilities.Total.Add(balance.Neg())
		case model.AccountTypeEquity:
			bs.Equity.Accounts = append(bs.Equity.Accounts, reportLine(acct, balance.Neg()))
			bs.Equity.Total = bs.Equity.Total.Add(balance.Neg())
		case model.AccountTypeRevenue:
			// Period revenue rolls up into equity without a closing entry.
			bs.Equity.Total = bs.Equity.Total.Add(balance.Neg())
		case model.AccountTypeExpense:
			// Period expenses reduce equity.
			bs.Equity.Total = bs.Equity.Total.Sub(balance)
		}
	}
	return bs
}

// ComputeIncomeStatement reports revenue, expenses, and net income over
// the inclusive [start, end] range. Both dates are required.
func (l *Ledger) ComputeIncomeStatement(start, end model.Date) (IncomeStatement, error) {
	if start.IsZero() {
		return IncomeStatement{}, validationf("startDate", "required")
	}
	if end.IsZero() {
		return IncomeStatement{}, validationf("endDate", "required")
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	raw := l.rawBalancesLocked(start, end)
	is := IncomeStatement{
		StartDate: start,
		EndDate:   end,
		Revenue:   Section{Accounts: []ReportLine{}, Total: decimal.Zero},
		Expenses:  Section{Accounts: []ReportLine{}, Total: decimal.Zero},
	}
	for _, id := range l.accountOrder {
		acct := l.accounts[id]
		balance := raw[id]
		switch acct.Type {
		case model.AccountTypeRevenue:
			is.Revenue.Accounts = append(is.Revenue.Accounts, reportLine(acct, balance.Neg()))
			is.Revenue.Total = is.Revenue.Total.Add(balance.Neg())
		case model.AccountTypeExpense:
			is.Expenses.Accounts = append(is.Expenses.Accounts, reportLine(acct, balance))
			is.Expenses.Total = is.Expenses.Total.Add(balance)
		}
	}
	is.NetIncome = is.Revenue.Total.Sub(is.Expenses.Total)
	return is, nil
}

func reportLine(acct *model.Account, balance decimal.Decimal) ReportLine {
	return ReportLine{
		AccountID: acct.ID,
		Code:      acct.Code,
		Name:      acct.Name,
		Balance:   balance,
	}
}
