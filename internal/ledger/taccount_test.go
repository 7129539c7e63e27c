package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook-dev/tallybook/internal/model"
)

func TestAccountBalance_UnusedAccountIsZero(t *testing.T) {
	l := newTestLedger(t)
	equipment := byCode(t, l, "150")

	balance, err := l.AccountBalance(equipment.ID, model.Date{})
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	_, err = l.AccountBalance("no-such-id", model.Date{})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountBalance_NormalSides(t *testing.T) {
	l := newTestLedger(t)
	post(t, l, date(2024, 1, 10), "Cash sale", "100", "400", "250")

	cash, err := l.AccountBalance(byCode(t, l, "100").ID, model.Date{})
	require.NoError(t, err)
	assert.True(t, cash.Equal(dec("250")))

	sales, err := l.AccountBalance(byCode(t, l, "400").ID, model.Date{})
	require.NoError(t, err)
	assert.True(t, sales.Equal(dec("250")), "credit-normal revenue reads positive")
}

func TestAccountBalance_AsOf(t *testing.T) {
	l := newTestLedger(t)
	cash := byCode(t, l, "100")
	post(t, l, date(2024, 1, 10), "January", "100", "400", "100")
	post(t, l, date(2024, 2, 10), "February", "100", "400", "200")

	balance, err := l.AccountBalance(cash.ID, date(2024, 1, 31))
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("100")))
}

func TestTAccount_OrderingAndTotals(t *testing.T) {
	l := newTestLedger(t)
	cash := byCode(t, l, "100")

	// Inserted out of date order; same-date entries keep insertion order.
	post(t, l, date(2024, 1, 20), "third", "100", "400", "30")
	post(t, l, date(2024, 1, 10), "first", "100", "400", "10")
	post(t, l, date(2024, 1, 20), "fourth", "510", "100", "40")
	post(t, l, date(2024, 1, 15), "second", "100", "400", "20")

	ta, err := l.ComputeTAccount(cash.ID, model.Date{})
	require.NoError(t, err)
	require.Len(t, ta.Entries, 4)

	var descs []string
	for _, row := range ta.Entries {
		descs = append(descs, row.Description)
	}
	assert.Equal(t, []string{"first", "second", "third", "fourth"}, descs)

	assert.True(t, ta.TotalDebit.Equal(dec("60")))
	assert.True(t, ta.TotalCredit.Equal(dec("40")))
	assert.True(t, ta.Balance.Equal(dec("20")))
	assert.Equal(t, "100", ta.Account.Code)
}

func TestTAccountLines_Restartable(t *testing.T) {
	l := newTestLedger(t)
	cash := byCode(t, l, "100")
	post(t, l, date(2024, 1, 10), "first", "100", "400", "10")
	post(t, l, date(2024, 1, 15), "second", "100", "400", "20")

	lines, err := l.TAccountLines(cash.ID, model.Date{})
	require.NoError(t, err)

	// Early break, then a full second pass over the same sequence.
	for range lines {
		break
	}
	var count int
	for range lines {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestTAccount_AsOfFilter(t *testing.T) {
	l := newTestLedger(t)
	cash := byCode(t, l, "100")
	post(t, l, date(2024, 1, 10), "keep", "100", "400", "10")
	post(t, l, date(2024, 3, 10), "drop", "100", "400", "20")

	ta, err := l.ComputeTAccount(cash.ID, date(2024, 1, 31))
	require.NoError(t, err)
	require.Len(t, ta.Entries, 1)
	assert.Equal(t, "keep", ta.Entries[0].Description)
	assert.True(t, ta.Balance.Equal(dec("10")))
}
