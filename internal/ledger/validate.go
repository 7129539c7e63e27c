package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// balanceTolerance absorbs currency-minor-unit rounding when comparing
// debit and credit totals.
var balanceTolerance = decimal.New(1, -2) // 0.01

// LineInput holds the caller-supplied fields of one journal line.
type LineInput struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// EntryInput groups the fields required to create a journal entry.
type EntryInput struct {
	Date        model.Date
	Description string
	Lines       []LineInput
}

// validateEntryLocked runs the full validation sequence for entry creation
// and line updates. Check order is fixed so callers always get the most
// specific actionable error first: field presence, then line count, then
// account references, then line shape, then the balance law.
func (l *Ledger) validateEntryLocked(in EntryInput) error {
	if in.Date.IsZero() {
		return validationf("date", "required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return validationf("description", "required")
	}
	if len(in.Lines) < 2 {
		return validationf("lines", "journal entry requires at least two lines")
	}
	for i, line := range in.Lines {
		if line.AccountID == "" {
			return validationf("lines", "line %d missing account", i)
		}
		if _, ok := l.accounts[line.AccountID]; !ok {
			return ErrAccountNotFound
		}
	}
	for i, line := range in.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return validationf("lines", "line %d has a negative amount", i)
		}
		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()
		if hasDebit == hasCredit {
			return validationf("lines", "line %d must have exactly one of debit or credit", i)
		}
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range in.Lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceTolerance) {
		return ErrUnbalanced
	}
	return nil
}
