package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNewProductMargin(t *testing.T) {
	tests := []struct {
		name   string
		price  string
		cost   string
		margin string
	}{
		{"widget", "19.99", "9.99", "50.03"},
		{"even split", "10", "5", "50"},
		{"zero price", "0", "5", "0"},
		{"free supply", "25", "0", "100"},
		{"thin margin", "9.99", "9.49", "5.01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProduct("1", "Widget", "A widget", dec(tt.price), dec(tt.cost), 100)
			assert.True(t, p.ProfitMargin.Equal(dec(tt.margin)),
				"margin = %s, want %s", p.ProfitMargin, tt.margin)
			assert.True(t, p.Active)
			assert.False(t, p.CreatedAt.IsZero())
		})
	}
}

func TestNewOrderDerivedValues(t *testing.T) {
	p := NewProduct("1", "Widget", "A widget", dec("19.99"), dec("9.99"), 100)
	o := NewOrder("ORD-0001", p, 3, Customer{
		Name:            "John Doe",
		Email:           "john@example.com",
		ShippingAddress: "123 Main St",
	}, "user-42")

	assert.True(t, o.Total.Equal(dec("59.97")), "total = %s", o.Total)
	assert.True(t, o.Profit.Equal(dec("30.00")), "profit = %s", o.Profit)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "1", o.ProductID)
	assert.Equal(t, "Widget", o.ProductName)
	assert.Equal(t, "user-42", o.CreatedBy)
}

func TestParseOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		got, err := ParseOrderStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseOrderStatus("returned")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)
}

func TestParseMoney(t *testing.T) {
	d, err := ParseMoney("price", " 19.99 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("19.99")))

	_, err = ParseMoney("price", "abc")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = ParseMoney("price", "-1")
	require.ErrorAs(t, err, &ve)
}

func TestParseQuantity(t *testing.T) {
	n, err := ParseQuantity("3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var ve *ValidationError
	_, err = ParseQuantity("zero")
	require.ErrorAs(t, err, &ve)

	_, err = ParseQuantity("0")
	require.ErrorAs(t, err, &ve)

	_, err = ParseQuantity("2.5")
	require.ErrorAs(t, err, &ve)
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount("stock", "0")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	var ve *ValidationError
	_, err = ParseCount("stock", "-5")
	require.ErrorAs(t, err, &ve)
}
