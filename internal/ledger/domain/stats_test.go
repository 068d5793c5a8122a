package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStatsEmpty(t *testing.T) {
	st := ComputeStats(nil, nil)

	assert.Zero(t, st.TotalProducts)
	assert.Zero(t, st.TotalOrders)
	assert.True(t, st.AvgOrderValue.IsZero())
	assert.True(t, st.AvgProfitPerOrder.IsZero())
	assert.Nil(t, st.OverallMarginPct, "margin must be omitted with no revenue")
}

func TestComputeStats(t *testing.T) {
	p := NewProduct("1", "Widget", "A widget", dec("20"), dec("10"), 100)
	orders := []Order{
		NewOrder("ORD-0001", p, 2, Customer{}, "u1"), // total 40, profit 20
		NewOrder("ORD-0002", p, 1, Customer{}, "u1"), // total 20, profit 10
	}
	orders[1].Status = StatusDelivered

	st := ComputeStats([]Product{p}, orders)

	assert.Equal(t, 1, st.TotalProducts)
	assert.Equal(t, 2, st.TotalOrders)
	assert.Equal(t, 1, st.PendingOrders)
	assert.Equal(t, 1, st.CompletedOrders)
	assert.True(t, st.TotalRevenue.Equal(dec("60")), "revenue = %s", st.TotalRevenue)
	assert.True(t, st.TotalProfit.Equal(dec("30")), "profit = %s", st.TotalProfit)
	assert.True(t, st.AvgOrderValue.Equal(dec("30")), "avg order = %s", st.AvgOrderValue)
	assert.True(t, st.AvgProfitPerOrder.Equal(dec("15")), "avg profit = %s", st.AvgProfitPerOrder)
	require.NotNil(t, st.OverallMarginPct)
	assert.True(t, st.OverallMarginPct.Equal(dec("50")), "margin = %s", st.OverallMarginPct)
}

func TestComputeStatsZeroRevenueOrders(t *testing.T) {
	free := NewProduct("1", "Sample", "Free sample", dec("0"), dec("0"), 10)
	orders := []Order{NewOrder("ORD-0001", free, 1, Customer{}, "u1")}

	st := ComputeStats([]Product{free}, orders)

	assert.Equal(t, 1, st.TotalOrders)
	assert.True(t, st.TotalRevenue.IsZero())
	assert.Nil(t, st.OverallMarginPct)
}
