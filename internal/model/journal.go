package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine is one side of a double-entry posting. Exactly one of Debit
// and Credit is positive; the other is zero.
type JournalLine struct {
	ID             string          `json:"id"`
	JournalEntryID string          `json:"journalEntryId"`
	AccountID      string          `json:"accountId"`
	AccountName    string          `json:"accountName"` // denormalized from the registry, not authoritative
	Debit          decimal.Decimal `json:"debitAmount"`
	Credit         decimal.Decimal `json:"creditAmount"`
}

// JournalEntry is a balanced set of at least two lines on a single date.
// Lines live and die with their entry. A closed entry is immutable.
type JournalEntry struct {
	ID          string        `json:"id"`
	Date        Date          `json:"date"`
	Description string        `json:"description"`
	Lines       []JournalLine `json:"lines"`
	IsClosed    bool          `json:"isClosed"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// TotalDebit sums the debit side of all lines.
func (e JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (e JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}
