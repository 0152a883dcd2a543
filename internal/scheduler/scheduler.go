// Package scheduler ejecuta los reportes periódicos de stock bajo y cierre financiero diario.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/pkg/config"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

const jobTimeout = 2 * time.Minute

// LowStockReporter fuente del reporte de insumos con stock bajo.
type LowStockReporter interface {
	LowStock(ctx context.Context, thresholdPct decimal.Decimal) ([]dto.LowStockItem, error)
}

// FinanceReporter fuente del resumen financiero del día.
type FinanceReporter interface {
	GetSummary(ctx context.Context, from, to *time.Time) (*dto.FinanceSummaryResponse, error)
}

// Scheduler administra las tareas programadas.
type Scheduler struct {
	cron     *cron.Cron
	lowStock LowStockReporter
	finance  FinanceReporter
	cfg      config.SchedulerConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewScheduler crea el scheduler. Las expresiones usan el parser estándar de 5 campos.
func NewScheduler(cfg config.SchedulerConfig, lowStock LowStockReporter, finance FinanceReporter, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(),
		lowStock: lowStock,
		finance:  finance,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// Start registra las tareas y arranca el cron. Una expresión inválida es error.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.LowStockCron, s.runLowStock); err != nil {
		return fmt.Errorf("programar reporte de stock bajo %q: %w", s.cfg.LowStockCron, err)
	}
	if _, err := s.cron.AddFunc(s.cfg.FinanceReportCron, s.runFinance); err != nil {
		return fmt.Errorf("programar cierre financiero %q: %w", s.cfg.FinanceReportCron, err)
	}
	s.log.Info().
		Str("low_stock_cron", s.cfg.LowStockCron).
		Str("finance_cron", s.cfg.FinanceReportCron).
		Msg("scheduler iniciado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera las tareas en curso.
func (s *Scheduler) Stop() {
	s.log.Info().Msg("deteniendo scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if _, err := s.LowStockReport(ctx); err != nil {
		s.log.Error().Err(err).Msg("reporte de stock bajo")
	}
}

func (s *Scheduler) runFinance() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if _, err := s.DailyFinanceReport(ctx); err != nil {
		s.log.Error().Err(err).Msg("cierre financiero diario")
	}
}

// LowStockReport registra un warning por cada insumo bajo el umbral configurado.
func (s *Scheduler) LowStockReport(ctx context.Context) ([]dto.LowStockItem, error) {
	items, err := s.lowStock.LowStock(ctx, s.cfg.LowStockThresholdPct)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		s.log.Warn().
			Str("ingredient_id", it.ID).
			Str("ingredient", it.Name).
			Str("total_quantity", it.TotalQuantity.String()).
			Str("stock_level_pct", it.StockLevel.String()).
			Msg("insumo con stock bajo")
	}
	s.log.Info().Int("count", len(items)).Msg("reporte de stock bajo generado")
	return items, nil
}

// DailyFinanceReport resume las ventas del día en curso (00:00 a 23:59:59).
func (s *Scheduler) DailyFinanceReport(ctx context.Context) (*dto.FinanceSummaryResponse, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	summary, err := s.finance.GetSummary(ctx, &start, &end)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("date", start.Format(time.DateOnly)).
		Int("sales", summary.SalesCount).
		Int("units", summary.UnitsSold).
		Str("revenue", summary.TotalRevenue.String()).
		Str("net_profit", summary.NetProfit.String()).
		Msg("cierre financiero diario")
	return summary, nil
}
