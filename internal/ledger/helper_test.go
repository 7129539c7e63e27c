package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tallybook-dev/tallybook/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y int, m time.Month, d int) model.Date {
	return model.NewDate(y, m, d)
}

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := New(DefaultChart())
	require.NoError(t, err)
	return l
}

// byCode resolves a seed account id via its code.
func byCode(t *testing.T, l *Ledger, code string) model.Account {
	t.Helper()
	acct, err := l.AccountByCode(code)
	require.NoError(t, err)
	return acct
}

// post creates a two-line balanced entry between two seed accounts.
func post(t *testing.T, l *Ledger, d model.Date, desc, debitCode, creditCode, amount string) model.JournalEntry {
	t.Helper()
	entry, err := l.CreateEntry(EntryInput{
		Date:        d,
		Description: desc,
		Lines: []LineInput{
			{AccountID: byCode(t, l, debitCode).ID, Debit: dec(amount)},
			{AccountID: byCode(t, l, creditCode).ID, Credit: dec(amount)},
		},
	})
	require.NoError(t, err)
	return entry
}
