package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/subplane/subplane/internal/errors"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(100), "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", m.Currency)
	assert.True(t, m.Amount.Equal(decimal.NewFromInt(100)))

	_, err = NewMoney(decimal.NewFromInt(-1), "USD")
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	_, err = NewMoney(decimal.NewFromInt(10), "  ")
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	zero, err := NewMoney(decimal.Zero, "EUR")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
}

func TestMoneyAdd(t *testing.T) {
	a := MustNewMoney(decimal.NewFromInt(50), "USD")
	b := MustNewMoney(decimal.NewFromFloat(25.50), "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount.Equal(decimal.NewFromFloat(75.50)))

	_, err = a.Add(MustNewMoney(decimal.NewFromInt(10), "EUR"))
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestMoneySubtract(t *testing.T) {
	a := MustNewMoney(decimal.NewFromInt(200), "USD")
	b := MustNewMoney(decimal.NewFromInt(50), "USD")

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount.Equal(decimal.NewFromInt(150)))

	// Differing currencies fail before any arithmetic.
	_, err = MustNewMoney(decimal.NewFromInt(50), "USD").
		Subtract(MustNewMoney(decimal.NewFromInt(200), "EUR"))
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	// Same currency going below zero is rejected too.
	_, err = b.Subtract(a)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestMoneyMultiply(t *testing.T) {
	m := MustNewMoney(decimal.NewFromInt(100), "USD")
	half := m.Multiply(decimal.NewFromFloat(0.5))
	assert.True(t, half.Amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "USD", half.Currency)
}

func TestMoneyNegate(t *testing.T) {
	m := MustNewMoney(decimal.NewFromInt(75), "USD")
	n := m.Negate()
	assert.True(t, n.IsNegative())
	assert.True(t, n.Amount.Equal(decimal.NewFromInt(-75)))
	// The constructor still refuses to build the negative value directly.
	_, err := NewMoney(n.Amount, n.Currency)
	require.Error(t, err)
}

func TestMoneyEqualAndString(t *testing.T) {
	a := MustNewMoney(decimal.NewFromFloat(10.5), "USD")
	b := MustNewMoney(decimal.NewFromFloat(10.50), "USD")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(MustNewMoney(decimal.NewFromFloat(10.5), "EUR")))
	assert.Equal(t, "10.50 USD", a.String())
}
