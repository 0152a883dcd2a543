// Package finance proyecta el resumen financiero (ingresos, costos, márgenes y punto de
// equilibrio) a partir del historial de ventas. No guarda estado.
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Settings costos configurados externamente.
type Settings struct {
	FixedCosts          decimal.Decimal
	VariableCostPercent decimal.Decimal // % sobre ingresos
}

// MethodBreakdown totales por medio de pago.
type MethodBreakdown struct {
	Method  entity.PaymentMethod
	Sales   int
	Revenue decimal.Decimal
	Fees    decimal.Decimal
}

// Summary resumen financiero derivado.
// BreakEven y BreakEvenUnits son nil cuando el punto de equilibrio no es alcanzable
// (contribución nula o negativa).
type Summary struct {
	SalesCount         int
	UnitsSold          int
	GrossSales         decimal.Decimal // Σ subtotal
	TotalDiscounts     decimal.Decimal
	TotalRevenue       decimal.Decimal // Σ (subtotal - descuento)
	ProductCost        decimal.Decimal
	TotalFees          decimal.Decimal
	TotalVariableCost  decimal.Decimal
	TotalFixedCost     decimal.Decimal
	GrossProfit        decimal.Decimal
	NetProfit          decimal.Decimal
	Margin             decimal.Decimal // % neto sobre ingresos
	ContributionMargin decimal.Decimal // % de contribución sobre ingresos
	AverageTicket      decimal.Decimal
	BreakEven          *decimal.Decimal
	BreakEvenUnits     *int64
	BreakEvenReachable bool
	ByMethod           []MethodBreakdown
}

// Summarize calcula el resumen sobre sales con la configuración de costos.
func Summarize(sales []*entity.Sale, settings Settings) Summary {
	s := Summary{TotalFixedCost: settings.FixedCosts}
	byMethod := make(map[entity.PaymentMethod]*MethodBreakdown)

	for _, sale := range sales {
		if sale == nil {
			continue
		}
		r := sale.SellingResume
		net := r.Subtotal.Sub(r.DiscountAmount)

		s.SalesCount++
		s.UnitsSold += sale.UnitsSold()
		s.GrossSales = s.GrossSales.Add(r.Subtotal)
		s.TotalDiscounts = s.TotalDiscounts.Add(r.DiscountAmount)
		s.TotalRevenue = s.TotalRevenue.Add(net)
		s.TotalFees = s.TotalFees.Add(r.Fees)
		for _, it := range sale.Items {
			s.ProductCost = s.ProductCost.Add(it.ProportionalCost)
		}

		mb, ok := byMethod[r.PaymentMethod]
		if !ok {
			mb = &MethodBreakdown{Method: r.PaymentMethod}
			byMethod[r.PaymentMethod] = mb
		}
		mb.Sales++
		mb.Revenue = mb.Revenue.Add(net)
		mb.Fees = mb.Fees.Add(r.Fees)
	}

	extra := s.TotalRevenue.Mul(settings.VariableCostPercent).Div(hundred)
	s.TotalVariableCost = s.ProductCost.Add(s.TotalFees).Add(extra)
	s.GrossProfit = s.TotalRevenue.Sub(s.TotalVariableCost)
	s.NetProfit = s.GrossProfit.Sub(s.TotalFixedCost)

	if s.TotalRevenue.IsPositive() {
		s.Margin = s.NetProfit.Div(s.TotalRevenue).Mul(hundred).Round(2)
		s.ContributionMargin = s.GrossProfit.Div(s.TotalRevenue).Mul(hundred).Round(2)
	}
	if s.SalesCount > 0 {
		s.AverageTicket = s.TotalRevenue.Div(decimal.NewFromInt(int64(s.SalesCount))).Round(2)
	}

	s.BreakEven, s.BreakEvenUnits = breakEven(s)
	s.BreakEvenReachable = s.BreakEven != nil

	for _, m := range entity.PaymentMethods {
		if mb, ok := byMethod[m]; ok {
			s.ByMethod = append(s.ByMethod, *mb)
		}
	}
	return s
}

// breakEven ingresos y unidades necesarios para cubrir costos fijos.
// Con contribución <= 0 el punto de equilibrio es infinito/indefinido: nil.
func breakEven(s Summary) (*decimal.Decimal, *int64) {
	if !s.TotalRevenue.IsPositive() || !s.GrossProfit.IsPositive() {
		return nil, nil
	}
	ratio := s.GrossProfit.Div(s.TotalRevenue)
	revenue := s.TotalFixedCost.Div(ratio).Round(2)

	var units *int64
	if s.UnitsSold > 0 {
		perUnit := s.GrossProfit.Div(decimal.NewFromInt(int64(s.UnitsSold)))
		u := s.TotalFixedCost.Div(perUnit).Ceil().IntPart()
		units = &u
	}
	return &revenue, units
}
