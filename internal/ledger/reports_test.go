package ledger

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook-dev/tallybook/internal/model"
)

func TestTrialBalance_Empty(t *testing.T) {
	l := newTestLedger(t)
	tb := l.ComputeTrialBalance(model.Date{})
	assert.True(t, tb.TotalDebit.IsZero())
	assert.True(t, tb.TotalCredit.IsZero())
}

func TestTrialBalance_AlwaysBalanced(t *testing.T) {
	// Property: after every successful write, total debits equal total
	// credits. Exercised with randomly generated balanced entries.
	l := newTestLedger(t)
	rng := rand.New(rand.NewSource(42))
	codes := []string{"100", "110", "120", "200", "300", "400", "500", "510"}

	for i := 0; i < 50; i++ {
		amount := decimal.NewFromInt(rng.Int63n(100000)).Div(decimal.NewFromInt(100))
		debit := codes[rng.Intn(len(codes))]
		credit := codes[rng.Intn(len(codes))]
		post(t, l, date(2024, 1, 1+rng.Intn(28)), fmt.Sprintf("random %d", i),
			debit, credit, amount.String())

		tb := l.ComputeTrialBalance(model.Date{})
		require.True(t, tb.TotalDebit.Equal(tb.TotalCredit),
			"after write %d: debits %s != credits %s", i, tb.TotalDebit, tb.TotalCredit)
	}
}

func TestTrialBalance_AsOf(t *testing.T) {
	l := newTestLedger(t)
	post(t, l, date(2024, 1, 10), "January", "100", "400", "100")
	post(t, l, date(2024, 2, 10), "February", "100", "400", "200")

	tb := l.ComputeTrialBalance(date(2024, 1, 31))
	assert.True(t, tb.TotalDebit.Equal(dec("100")))
	assert.True(t, tb.TotalCredit.Equal(dec("100")))

	// asOf is inclusive.
	tb = l.ComputeTrialBalance(date(2024, 2, 10))
	assert.True(t, tb.TotalDebit.Equal(dec("300")))
}

func TestBalanceSheet_Scenario(t *testing.T) {
	// Seed chart has 100/Cash (asset) and 400/Sales (revenue). One cash
	// sale of 10000 shows up as 10000 of assets and 10000 of equity.
	l := newTestLedger(t)
	post(t, l, date(2024, 1, 15), "Cash sale", "100", "400", "10000")

	bs := l.ComputeBalanceSheet(model.Date{})
	assert.True(t, bs.Assets.Total.Equal(dec("10000")), "assets: %s", bs.Assets.Total)
	assert.True(t, bs.Liabilities.Total.IsZero())
	assert.True(t, bs.Equity.Total.Equal(dec("10000")), "equity: %s", bs.Equity.Total)
}

func TestBalanceSheet_IdentityAcrossAllTypes(t *testing.T) {
	// assets == liabilities + equity within 0.01 for a balanced journal
	// touching all five account types.
	l := newTestLedger(t)
	post(t, l, date(2024, 1, 1), "Owner investment", "100", "300", "50000")
	post(t, l, date(2024, 1, 5), "Bought inventory on credit", "120", "200", "8000")
	post(t, l, date(2024, 1, 10), "Cash sale", "100", "400", "12000")
	post(t, l, date(2024, 1, 12), "Cost of goods", "500", "120", "5000")
	post(t, l, date(2024, 1, 20), "Paid rent", "510", "100", "1500")
	post(t, l, date(2024, 1, 25), "Paid down payable", "200", "100", "3000")

	bs := l.ComputeBalanceSheet(model.Date{})
	diff := bs.Assets.Total.Sub(bs.Liabilities.Total.Add(bs.Equity.Total)).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.01")),
		"assets %s != liabilities %s + equity %s", bs.Assets.Total, bs.Liabilities.Total, bs.Equity.Total)

	assert.True(t, bs.Assets.Total.Equal(dec("60500")))
	assert.True(t, bs.Liabilities.Total.Equal(dec("5000")))
	assert.True(t, bs.Equity.Total.Equal(dec("55500")))
}

func TestBalanceSheet_SectionRows(t *testing.T) {
	l := newTestLedger(t)
	post(t, l, date(2024, 1, 1), "Owner investment", "100", "300", "1000")

	bs := l.ComputeBalanceSheet(model.Date{})
	require.NotEmpty(t, bs.Assets.Accounts)
	assert.Equal(t, "100", bs.Assets.Accounts[0].Code)
	assert.True(t, bs.Assets.Accounts[0].Balance.Equal(dec("1000")))

	// Equity rows list only equity-typed accounts; revenue and expense
	// activity folds into the total without a row.
	for _, row := range bs.Equity.Accounts {
		assert.Contains(t, []string{"300", "310"}, row.Code)
	}
}

func TestIncomeStatement(t *testing.T) {
	l := newTestLedger(t)
	post(t, l, date(2024, 1, 10), "Cash sale", "100", "400", "12000")
	post(t, l, date(2024, 1, 20), "Paid rent", "510", "100", "1500")
	post(t, l, date(2024, 2, 10), "February sale", "100", "400", "5000")

	is, err := l.ComputeIncomeStatement(date(2024, 1, 1), date(2024, 1, 31))
	require.NoError(t, err)
	assert.True(t, is.Revenue.Total.Equal(dec("12000")), "revenue: %s", is.Revenue.Total)
	assert.True(t, is.Expenses.Total.Equal(dec("1500")), "expenses: %s", is.Expenses.Total)
	// Net income is computed from the same two sums, so the identity is exact.
	assert.True(t, is.NetIncome.Equal(is.Revenue.Total.Sub(is.Expenses.Total)))
	assert.True(t, is.NetIncome.Equal(dec("10500")))
}

func TestIncomeStatement_DatesRequired(t *testing.T) {
	l := newTestLedger(t)

	_, err := l.ComputeIncomeStatement(model.Date{}, date(2024, 1, 31))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "startDate", ve.Field)

	_, err = l.ComputeIncomeStatement(date(2024, 1, 1), model.Date{})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "endDate", ve.Field)
}

func TestConcreteScenario(t *testing.T) {
	// The canonical smoke scenario: one 10000 cash sale.
	l := newTestLedger(t)
	cash := byCode(t, l, "100")
	sales := byCode(t, l, "400")

	post(t, l, date(2024, 1, 15), "Cash sale", "100", "400", "10000")

	cashBal, err := l.AccountBalance(cash.ID, model.Date{})
	require.NoError(t, err)
	assert.True(t, cashBal.Equal(dec("10000")))

	// Credit-normal revenue reads positive.
	salesBal, err := l.AccountBalance(sales.ID, model.Date{})
	require.NoError(t, err)
	assert.True(t, salesBal.Equal(dec("10000")))

	tb := l.ComputeTrialBalance(model.Date{})
	assert.True(t, tb.TotalDebit.Equal(dec("10000")))
	assert.True(t, tb.TotalCredit.Equal(dec("10000")))

	bs := l.ComputeBalanceSheet(model.Date{})
	assert.True(t, bs.Assets.Total.Equal(dec("10000")))
	assert.True(t, bs.Equity.Total.Equal(dec("10000")))
}
