package dto

import "github.com/shopspring/decimal"

// MethodBreakdownResponse totales por medio de pago.
type MethodBreakdownResponse struct {
	PaymentMethod string          `json:"payment_method"`
	Sales         int             `json:"sales"`
	Revenue       decimal.Decimal `json:"revenue"`
	Fees          decimal.Decimal `json:"fees"`
}

// FinanceSummaryResponse resumen financiero. BreakEven y BreakEvenUnits son null si no es alcanzable.
type FinanceSummaryResponse struct {
	From               string                    `json:"from,omitempty"`
	To                 string                    `json:"to,omitempty"`
	SalesCount         int                       `json:"sales_count"`
	UnitsSold          int                       `json:"units_sold"`
	GrossSales         decimal.Decimal           `json:"gross_sales"`
	TotalDiscounts     decimal.Decimal           `json:"total_discounts"`
	TotalRevenue       decimal.Decimal           `json:"total_revenue"`
	ProductCost        decimal.Decimal           `json:"product_cost"`
	TotalFees          decimal.Decimal           `json:"total_fees"`
	TotalVariableCost  decimal.Decimal           `json:"total_variable_cost"`
	TotalFixedCost     decimal.Decimal           `json:"total_fixed_cost"`
	GrossProfit        decimal.Decimal           `json:"gross_profit"`
	NetProfit          decimal.Decimal           `json:"net_profit"`
	Margin             decimal.Decimal           `json:"margin"`
	ContributionMargin decimal.Decimal           `json:"contribution_margin"`
	AverageTicket      decimal.Decimal           `json:"average_ticket"`
	BreakEven          *decimal.Decimal          `json:"break_even"`
	BreakEvenUnits     *int64                    `json:"break_even_units"`
	BreakEvenReachable bool                      `json:"break_even_reachable"`
	ByMethod           []MethodBreakdownResponse `json:"by_method"`
}

// TopProductResponse producto más vendido del período.
type TopProductResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Units       int             `json:"units"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// DashboardResponse resumen del día y del mes en curso.
type DashboardResponse struct {
	Today       FinanceSummaryResponse `json:"today"`
	Month       FinanceSummaryResponse `json:"month"`
	TopProducts []TopProductResponse   `json:"top_products"`
	DateLabel   string                 `json:"date_label"`
}
