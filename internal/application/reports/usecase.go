// Package reports expone los indicadores del dashboard: resumen de ventas
// por período, estado del inventario y productos por reponer.
package reports

import (
	"context"
	"time"

	"github.com/EzerZuniga/gestion-comercial/internal/application/session"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
)

// UseCase consultas agregadas de solo lectura.
type UseCase struct {
	repo repository.ReportRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ReportRepository) *UseCase {
	return &UseCase{repo: repo}
}

// SalesSummary agrega las ventas del rango [from, to).
func (uc *UseCase) SalesSummary(ctx context.Context, s *session.AppSession, from, to time.Time) (*repository.SalesSummaryResult, error) {
	if !s.Can(session.ActionConsulta) {
		return nil, domain.NewAuthorizationError("sin permiso para consultar reportes")
	}
	return uc.repo.SalesSummary(ctx, from, to)
}

// SalesSummaryToday agrega las ventas del día en curso.
func (uc *UseCase) SalesSummaryToday(ctx context.Context, s *session.AppSession) (*repository.SalesSummaryResult, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return uc.SalesSummary(ctx, s, start, start.AddDate(0, 0, 1))
}

// InventoryKPIs devuelve los indicadores de inventario sobre productos activos.
func (uc *UseCase) InventoryKPIs(ctx context.Context, s *session.AppSession) (*repository.InventoryKPIResult, error) {
	if !s.Can(session.ActionConsulta) {
		return nil, domain.NewAuthorizationError("sin permiso para consultar reportes")
	}
	return uc.repo.InventoryKPIs(ctx)
}

// LowStockProducts lista los productos activos en o bajo su stock mínimo.
func (uc *UseCase) LowStockProducts(ctx context.Context, s *session.AppSession) ([]*entity.Product, error) {
	if !s.Can(session.ActionConsulta) {
		return nil, domain.NewAuthorizationError("sin permiso para consultar reportes")
	}
	return uc.repo.LowStockProducts(ctx)
}
