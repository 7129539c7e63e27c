package ledger

import (
	"iter"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// TAccountLine is one posting row in a T-account: a single journal line
// carrying its parent entry's date, description, and id.
type TAccountLine struct {
	EntryID     string          `json:"journalEntryId"`
	Date        model.Date      `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debitAmount"`
	Credit      decimal.Decimal `json:"creditAmount"`
}

// TAccount is the chronological ledger view of all postings to one account.
type TAccount struct {
	Account     model.Account   `json:"account"`
	Entries     []TAccountLine  `json:"entries"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
}

// AccountBalance computes the account's balance as of the given date using
// its normal side: (debit - credit) for debit-normal asset/expense
// accounts, (credit - debit) otherwise. An account with no postings has a
// zero balance; that is a valid query, not an error.
func (l *Ledger) AccountBalance(accountID string, asOf model.Date) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	acct, ok := l.accounts[accountID]
	if !ok {
		return decimal.Zero, ErrAccountNotFound
	}
	raw := decimal.Zero
	for line := range l.accountLinesLocked(accountID, asOf) {
		raw = raw.Add(line.Debit).Sub(line.Credit)
	}
	return normalBalance(acct.Type, raw), nil
}

// TAccountLines returns a restartable sequence of the account's ledger
// lines as of the given date, sorted ascending by date with same-date
// lines in original entry insertion order.
func (l *Ledger) TAccountLines(accountID string, asOf model.Date) (iter.Seq[TAccountLine], error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, ok := l.accounts[accountID]; !ok {
		return nil, ErrAccountNotFound
	}
	// Snapshot under the read lock so iteration never races a writer.
	var rows []TAccountLine
	for line := range l.accountLinesLocked(accountID, asOf) {
		rows = append(rows, line)
	}
	return func(yield func(TAccountLine) bool) {
		for _, row := range rows {
			if !yield(row) {
				return
			}
		}
	}, nil
}

// ComputeTAccount materializes the full T-account view with totals and the
// normal-side balance.
func (l *Ledger) ComputeTAccount(accountID string, asOf model.Date) (TAccount, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	acct, ok := l.accounts[accountID]
	if !ok {
		return TAccount{}, ErrAccountNotFound
	}

	ta := TAccount{
		Account:     cloneAccount(acct),
		Entries:     []TAccountLine{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for line := range l.accountLinesLocked(accountID, asOf) {
		ta.Entries = append(ta.Entries, line)
		ta.TotalDebit = ta.TotalDebit.Add(line.Debit)
		ta.TotalCredit = ta.TotalCredit.Add(line.Credit)
	}
	ta.Balance = normalBalance(acct.Type, ta.TotalDebit.Sub(ta.TotalCredit))
	return ta, nil
}

// accountLinesLocked yields the account's posting rows in date order with
// a stable insertion-order tie-break. Caller must hold at least the read
// lock for the duration of iteration.
func (l *Ledger) accountLinesLocked(accountID string, asOf model.Date) iter.Seq[TAccountLine] {
	var rows []TAccountLine
	for _, id := range l.entryOrder {
		entry := l.entries[id]
		if !asOf.IsZero() && entry.Date.After(asOf) {
			continue
		}
		for _, line := range entry.Lines {
			if line.AccountID != accountID {
				continue
			}
			rows = append(rows, TAccountLine{
				EntryID:     entry.ID,
				Date:        entry.Date,
				Description: entry.Description,
				Debit:       line.Debit,
				Credit:      line.Credit,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return func(yield func(TAccountLine) bool) {
		for _, row := range rows {
			if !yield(row) {
				return
			}
		}
	}
}

func normalBalance(t model.AccountType, raw decimal.Decimal) decimal.Decimal {
	if t.DebitNormal() {
		return raw
	}
	return raw.Neg()
}
