package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	x, _ := decimal.NewFromString(v)
	return x
}

func TestLedgerGetAbsent(t *testing.T) {
	l := NewLedger()
	assert.True(t, l.Get("uatom").IsZero())
}

func TestLedgerCreditDebit(t *testing.T) {
	l := NewLedger()
	l.Credit("uatom", d("100"))
	l.Credit("uatom", d("0.5"))
	assert.True(t, l.Get("uatom").Equal(d("100.5")))

	require.NoError(t, l.Debit("uatom", d("100.5")))
	assert.True(t, l.Get("uatom").IsZero())
}

func TestLedgerDebitChecked(t *testing.T) {
	l := NewLedger()
	l.Credit("uatom", d("100"))

	err := l.Debit("uatom", d("100.00000001"))
	require.Error(t, err)

	overflow, ok := err.(*OverflowError)
	require.True(t, ok)
	assert.Equal(t, "sub", overflow.Operation)
	assert.Equal(t, "100", overflow.Operand1)
	assert.Equal(t, "100.00000001", overflow.Operand2)

	// a failed debit leaves the entry untouched
	assert.True(t, l.Get("uatom").Equal(d("100")))
}

func TestLedgerDebitAbsent(t *testing.T) {
	l := NewLedger()

	err := l.Debit("uatom", d("1"))
	require.Error(t, err)

	overflow := err.(*OverflowError)
	assert.Equal(t, "0", overflow.Operand1)
}

func TestLedgerClone(t *testing.T) {
	l := NewLedger()
	l.Credit("uatom", d("5"))

	c := l.Clone()
	c.Credit("uatom", d("5"))

	assert.True(t, l.Get("uatom").Equal(d("5")))
	assert.True(t, c.Get("uatom").Equal(d("10")))
}

func TestLedgerCompact(t *testing.T) {
	l := NewLedger()
	l.Credit("uatom", d("5"))
	l.Credit("uosmo", d("5"))
	require.NoError(t, l.Debit("uosmo", d("5")))

	c := l.Compact()
	assert.Len(t, c, 1)
	assert.True(t, c.Get("uatom").Equal(d("5")))
}
