package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	ierr "github.com/subplane/subplane/internal/errors"
)

// Money is an amount in a single currency. Constructed values are always
// non-negative; the only signed Money in the system is the credit-note line,
// which is built through Negate at the one call site that documents it.
// Currencies are compared for equality only, never converted.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney validates and builds a Money value.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ierr.NewError("money amount cannot be negative").
			WithHint("Amount must be zero or positive").
			WithReportableDetails(map[string]any{
				"amount": amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if strings.TrimSpace(currency) == "" {
		return Money{}, ierr.NewError("currency cannot be empty").
			WithHint("Please provide a 3-letter currency code").
			Mark(ierr.ErrValidation)
	}
	return Money{
		Amount:   amount,
		Currency: strings.ToUpper(strings.TrimSpace(currency)),
	}, nil
}

// MustNewMoney is NewMoney for statically known-good inputs (presets, tests).
func MustNewMoney(amount decimal.Decimal, currency string) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) Money {
	return Money{Amount: decimal.Zero, Currency: strings.ToUpper(strings.TrimSpace(currency))}
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.requireSameCurrency(other, "add"); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Subtract returns m - other. A result below zero is rejected: transient
// negative intermediates live as raw decimals, never as Money.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.requireSameCurrency(other, "subtract"); err != nil {
		return Money{}, err
	}
	result := m.Amount.Sub(other.Amount)
	if result.IsNegative() {
		return Money{}, ierr.NewError("money subtraction result cannot be negative").
			WithHint("Subtracted amount exceeds the available amount").
			WithReportableDetails(map[string]any{
				"amount":     m.Amount.String(),
				"subtracted": other.Amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return Money{Amount: result, Currency: m.Currency}, nil
}

func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(factor), Currency: m.Currency}
}

// Negate returns the signed negative of m. Reserved for the credit-note path,
// where a negative invoice amount is the documented special case.
func (m Money) Negate() Money {
	return Money{Amount: m.Amount.Neg(), Currency: m.Currency}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}

func (m Money) requireSameCurrency(other Money, op string) error {
	if m.Currency != other.Currency {
		return ierr.NewError("currency mismatch").
			WithHintf("Cannot %s money with different currencies", op).
			WithReportableDetails(map[string]any{
				"currency":       m.Currency,
				"other_currency": other.Currency,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
