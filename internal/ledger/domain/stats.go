package domain

import "github.com/shopspring/decimal"

// StatsSnapshot aggregates business figures over all recorded orders.
// OverallMarginPct is nil when there is no revenue to take a margin of.
type StatsSnapshot struct {
	TotalProducts     int
	TotalOrders       int
	PendingOrders     int
	CompletedOrders   int
	TotalRevenue      decimal.Decimal
	TotalProfit       decimal.Decimal
	AvgOrderValue     decimal.Decimal
	AvgProfitPerOrder decimal.Decimal
	OverallMarginPct  *decimal.Decimal
}

// ComputeStats derives a StatsSnapshot from the given collections.
func ComputeStats(products []Product, orders []Order) StatsSnapshot {
	st := StatsSnapshot{
		TotalProducts:     len(products),
		TotalOrders:       len(orders),
		TotalRevenue:      decimal.Zero,
		TotalProfit:       decimal.Zero,
		AvgOrderValue:     decimal.Zero,
		AvgProfitPerOrder: decimal.Zero,
	}
	for _, o := range orders {
		st.TotalRevenue = st.TotalRevenue.Add(o.Total)
		st.TotalProfit = st.TotalProfit.Add(o.Profit)
		switch o.Status {
		case StatusPending:
			st.PendingOrders++
		case StatusDelivered:
			st.CompletedOrders++
		}
	}
	if st.TotalOrders > 0 {
		n := decimal.NewFromInt(int64(st.TotalOrders))
		st.AvgOrderValue = st.TotalRevenue.Div(n)
		st.AvgProfitPerOrder = st.TotalProfit.Div(n)
	}
	if st.TotalRevenue.IsPositive() {
		margin := st.TotalProfit.Div(st.TotalRevenue).Mul(decimal.NewFromInt(100))
		st.OverallMarginPct = &margin
	}
	return st
}
