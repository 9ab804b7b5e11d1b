package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromFloat(100.50), BDT)
	require.NoError(t, err)
	assert.Equal(t, BDT, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))

	_, err = NewMoney(decimal.NewFromInt(10), "")
	assert.Error(t, err)
}

func TestNewMoneyBDTFromString(t *testing.T) {
	m, err := NewMoneyBDTFromString("1234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", m.StringFixed(2))

	_, err = NewMoneyBDTFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoneyAdd(t *testing.T) {
	a := NewMoneyBDTFromFloat(100.25)
	b := NewMoneyBDTFromFloat(50.75)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "151.00", sum.StringFixed(2))

	// Original values unchanged (immutability)
	assert.Equal(t, "100.25", a.StringFixed(2))

	usd, _ := NewMoney(decimal.NewFromInt(1), USD)
	_, err = a.Add(usd)
	assert.Error(t, err)
}

func TestMoneySubtract(t *testing.T) {
	a := NewMoneyBDTFromFloat(100)
	b := NewMoneyBDTFromFloat(30.50)

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "69.50", diff.StringFixed(2))

	neg, err := b.Subtract(a)
	require.NoError(t, err)
	assert.True(t, neg.IsNegative())
}

func TestMoneyMultiply(t *testing.T) {
	price := NewMoneyBDTFromFloat(19.99)
	total := price.MultiplyByInt(3)
	assert.Equal(t, "59.97", total.StringFixed(2))

	half := price.Multiply(decimal.NewFromFloat(0.5))
	assert.Equal(t, "10.00", half.RoundMoney().StringFixed(2))
}

func TestMoneyRoundMoney(t *testing.T) {
	m := NewMoneyBDTFromFloat(10.005)
	assert.Equal(t, "10.01", m.RoundMoney().StringFixed(2))

	m = NewMoneyBDTFromFloat(10.004)
	assert.Equal(t, "10.00", m.RoundMoney().StringFixed(2))
}

func TestMoneyComparisons(t *testing.T) {
	a := NewMoneyBDTFromFloat(10)
	b := NewMoneyBDTFromFloat(20)

	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.True(t, a.Equals(NewMoneyBDTFromFloat(10)))
	assert.False(t, a.Equals(b))

	usd, _ := NewMoney(decimal.NewFromInt(10), USD)
	assert.False(t, a.Equals(usd))
	_, err = a.LessThan(usd)
	assert.Error(t, err)
}

func TestMoneyZero(t *testing.T) {
	z := ZeroBDT()
	assert.True(t, z.IsZero())
	assert.False(t, z.IsPositive())
	assert.False(t, z.IsNegative())
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyBDTFromFloat(42.50)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"42.5","currency":"BDT"}`, string(data))

	var parsed Money
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, m.Equals(parsed))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("123.45"))
	assert.Equal(t, "123.45", m.StringFixed(2))
	assert.Equal(t, DefaultCurrency, m.Currency())

	var fromBytes Money
	require.NoError(t, fromBytes.Scan([]byte("9.99")))
	assert.Equal(t, "9.99", fromBytes.StringFixed(2))

	var fromNil Money
	require.NoError(t, fromNil.Scan(nil))
	assert.True(t, fromNil.IsZero())

	var bad Money
	assert.Error(t, bad.Scan(struct{}{}))
}

func TestMoneyValue(t *testing.T) {
	m := NewMoneyBDTFromFloat(77.70)
	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "77.7", v)
}
