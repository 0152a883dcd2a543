// Package analytics contiene los casos de uso del resumen financiero y del dashboard.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/finance"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

// FinanceUseCase proyecta el historial de ventas en el resumen financiero.
// No guarda estado: se recalcula en cada lectura.
type FinanceUseCase struct {
	saleRepo repository.SaleRepository
	settings finance.Settings
}

// NewFinanceUseCase construye el caso de uso con los costos configurados.
func NewFinanceUseCase(saleRepo repository.SaleRepository, settings finance.Settings) *FinanceUseCase {
	return &FinanceUseCase{saleRepo: saleRepo, settings: settings}
}

// GetSummary resumen sobre las ventas en [from, to]; nil no filtra.
func (uc *FinanceUseCase) GetSummary(ctx context.Context, from, to *time.Time) (*dto.FinanceSummaryResponse, error) {
	sales, err := uc.saleRepo.List(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("finanzas: listar ventas: %w", err)
	}
	out := toSummaryResponse(finance.Summarize(sales, uc.settings))
	if from != nil {
		out.From = from.Format(time.DateOnly)
	}
	if to != nil {
		out.To = to.Format(time.DateOnly)
	}
	return out, nil
}

// GetDashboard resumen del día, del mes en curso y productos más vendidos del mes.
//
// Dos lecturas en paralelo:
//  1. ventas de hoy → Today
//  2. ventas del mes → Month + TopProducts
func (uc *FinanceUseCase) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	now := time.Now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type salesResult struct {
		sales []*entity.Sale
		err   error
	}
	todayCh := make(chan salesResult, 1)
	monthCh := make(chan salesResult, 1)

	go func() {
		s, err := uc.saleRepo.List(ctx, &todayStart, &todayEnd)
		todayCh <- salesResult{s, err}
	}()
	go func() {
		s, err := uc.saleRepo.List(ctx, &monthStart, &todayEnd)
		monthCh <- salesResult{s, err}
	}()

	today := <-todayCh
	month := <-monthCh
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}

	return &dto.DashboardResponse{
		Today:       *toSummaryResponse(finance.Summarize(today.sales, uc.settings)),
		Month:       *toSummaryResponse(finance.Summarize(month.sales, uc.settings)),
		TopProducts: topProducts(month.sales, dashboardTopProducts),
		DateLabel:   monthLabel(now),
	}, nil
}

// topProducts productos con más unidades vendidas (desempate por ingresos y luego nombre).
func topProducts(sales []*entity.Sale, limit int) []dto.TopProductResponse {
	acc := make(map[string]*dto.TopProductResponse)
	for _, s := range sales {
		for _, it := range s.Items {
			tp, ok := acc[it.ProductID]
			if !ok {
				tp = &dto.TopProductResponse{ProductID: it.ProductID, ProductName: it.ProductName, Revenue: decimal.Zero}
				acc[it.ProductID] = tp
			}
			tp.Units += it.Quantity
			tp.Revenue = tp.Revenue.Add(it.Subtotal)
		}
	}
	out := make([]dto.TopProductResponse, 0, len(acc))
	for _, tp := range acc {
		out = append(out, *tp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].ProductName < out[j].ProductName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func toSummaryResponse(s finance.Summary) *dto.FinanceSummaryResponse {
	byMethod := make([]dto.MethodBreakdownResponse, 0, len(s.ByMethod))
	for _, m := range s.ByMethod {
		byMethod = append(byMethod, dto.MethodBreakdownResponse{
			PaymentMethod: string(m.Method),
			Sales:         m.Sales,
			Revenue:       m.Revenue,
			Fees:          m.Fees,
		})
	}
	return &dto.FinanceSummaryResponse{
		SalesCount:         s.SalesCount,
		UnitsSold:          s.UnitsSold,
		GrossSales:         s.GrossSales,
		TotalDiscounts:     s.TotalDiscounts,
		TotalRevenue:       s.TotalRevenue,
		ProductCost:        s.ProductCost,
		TotalFees:          s.TotalFees,
		TotalVariableCost:  s.TotalVariableCost,
		TotalFixedCost:     s.TotalFixedCost,
		GrossProfit:        s.GrossProfit,
		NetProfit:          s.NetProfit,
		Margin:             s.Margin,
		ContributionMargin: s.ContributionMargin,
		AverageTicket:      s.AverageTicket,
		BreakEven:          s.BreakEven,
		BreakEvenUnits:     s.BreakEvenUnits,
		BreakEvenReachable: s.BreakEvenReachable,
		ByMethod:           byMethod,
	}
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
