package repository

import (
	"context"
	"time"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MovimientoRepository interface {
	Create(ctx context.Context, m *model.MovimientoFinanciero) error
	CreateTx(tx *gorm.DB, m *model.MovimientoFinanciero) error
	// FindByReferencia looks up a ledger entry by its reference number; used
	// to reject duplicates before creating anything.
	FindByReferencia(ctx context.Context, referencia string) (*model.MovimientoFinanciero, error)
	List(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoFinanciero, int64, error)
	// ListSinCierre returns movements in (desde, hasta] not yet stamped by a closure.
	ListSinCierre(ctx context.Context, desde, hasta time.Time) ([]model.MovimientoFinanciero, error)
	// StampCierreTx assigns the closure id to every movement in the period.
	StampCierreTx(tx *gorm.DB, desde, hasta time.Time, cierreID uuid.UUID) error
	// DesestamparCierreTx releases the movements of a deleted closure back to
	// the open period.
	DesestamparCierreTx(tx *gorm.DB, cierreID uuid.UUID) error
	SumDelDia(ctx context.Context, tipo string, dia time.Time) (decimal.Decimal, error)

	CreateCreditoTx(tx *gorm.DB, c *model.CreditoCliente) error
	ListCreditosByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.CreditoCliente, error)
	SumCreditosVigentes(ctx context.Context) (decimal.Decimal, error)
	DB() *gorm.DB
}

type movimientoRepo struct{ db *gorm.DB }

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository { return &movimientoRepo{db: db} }

func (r *movimientoRepo) Create(ctx context.Context, m *model.MovimientoFinanciero) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movimientoRepo) CreateTx(tx *gorm.DB, m *model.MovimientoFinanciero) error {
	return tx.Create(m).Error
}

func (r *movimientoRepo) FindByReferencia(ctx context.Context, referencia string) (*model.MovimientoFinanciero, error) {
	var m model.MovimientoFinanciero
	err := r.db.WithContext(ctx).Where("referencia = ?", referencia).First(&m).Error
	return &m, err
}

func (r *movimientoRepo) List(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoFinanciero, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimientoFinanciero{})
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.Metodo != "" {
		q = q.Where("metodo = ?", filter.Metodo)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.Desde != "" {
		q = q.Where("created_at >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("created_at < (?::date + interval '1 day')", filter.Hasta)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var movs []model.MovimientoFinanciero
	err := q.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit).
		Find(&movs).Error
	return movs, total, err
}

func (r *movimientoRepo) ListSinCierre(ctx context.Context, desde, hasta time.Time) ([]model.MovimientoFinanciero, error) {
	var movs []model.MovimientoFinanciero
	err := r.db.WithContext(ctx).
		Where("cierre_caja_id IS NULL AND created_at > ? AND created_at <= ?", desde, hasta).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *movimientoRepo) StampCierreTx(tx *gorm.DB, desde, hasta time.Time, cierreID uuid.UUID) error {
	return tx.Model(&model.MovimientoFinanciero{}).
		Where("cierre_caja_id IS NULL AND created_at > ? AND created_at <= ?", desde, hasta).
		Update("cierre_caja_id", cierreID).Error
}

func (r *movimientoRepo) DesestamparCierreTx(tx *gorm.DB, cierreID uuid.UUID) error {
	return tx.Model(&model.MovimientoFinanciero{}).
		Where("cierre_caja_id = ?", cierreID).
		Update("cierre_caja_id", nil).Error
}

func (r *movimientoRepo) SumDelDia(ctx context.Context, tipo string, dia time.Time) (decimal.Decimal, error) {
	inicio := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, dia.Location())
	var suma decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.MovimientoFinanciero{}).
		Select("COALESCE(SUM(monto), 0)").
		Where("tipo = ? AND created_at >= ? AND created_at < ?", tipo, inicio, inicio.AddDate(0, 0, 1)).
		Scan(&suma).Error
	if err != nil || !suma.Valid {
		return decimal.Zero, err
	}
	return suma.Decimal, nil
}

func (r *movimientoRepo) CreateCreditoTx(tx *gorm.DB, c *model.CreditoCliente) error {
	return tx.Create(c).Error
}

func (r *movimientoRepo) ListCreditosByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.CreditoCliente, error) {
	var creditos []model.CreditoCliente
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Order("created_at DESC").
		Find(&creditos).Error
	return creditos, err
}

func (r *movimientoRepo) SumCreditosVigentes(ctx context.Context) (decimal.Decimal, error) {
	var suma decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.CreditoCliente{}).
		Select("COALESCE(SUM(saldo), 0)").
		Where("estado = ?", model.CreditoDisponible).
		Scan(&suma).Error
	if err != nil || !suma.Valid {
		return decimal.Zero, err
	}
	return suma.Decimal, nil
}

func (r *movimientoRepo) DB() *gorm.DB { return r.db }
