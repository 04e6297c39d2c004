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

type PedidoRepository interface {
	Create(ctx context.Context, p *model.Pedido) error
	CreateTx(tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error)
	Update(ctx context.Context, p *model.Pedido) error
	UpdateTx(tx *gorm.DB, p *model.Pedido) error
	NextNumero(ctx context.Context, tx *gorm.DB) (int64, error)
	CountByCliente(ctx context.Context, clienteID uuid.UUID) (int64, error)
	CountByEstado(ctx context.Context, estado string) (int64, error)
	CountEntregadosDesde(ctx context.Context, desde time.Time) (int64, error)
	// ListVencidos returns POR_RECIBIR orders whose promised date is before ref.
	ListVencidos(ctx context.Context, ref time.Time) ([]model.Pedido, error)
	// SumSaldoPendiente aggregates TotalEfectivo − abonos over open orders.
	SumSaldoPendiente(ctx context.Context) (decimal.Decimal, error)
	CreateAbonoTx(tx *gorm.DB, a *model.Abono) error
	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) Create(ctx context.Context, p *model.Pedido) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) CreateTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).Preload("Abonos").Preload("Cliente").First(&p, id).Error
	return &p, err
}

func (r *pedidoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := tx.Preload("Abonos").Preload("Cliente").First(&p, id).Error
	return &p, err
}

func (r *pedidoRepo) List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Pedido{})
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Desde != "" {
		q = q.Where("created_at >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		// inclusive end of day
		q = q.Where("created_at < (?::date + interval '1 day')", filter.Hasta)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var pedidos []model.Pedido
	err := q.Preload("Abonos").Preload("Cliente").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit).
		Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepo) Update(ctx context.Context, p *model.Pedido) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *pedidoRepo) UpdateTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Save(p).Error
}

// NextNumero pulls the next order number from a dedicated sequence so that
// concurrent creations never collide.
func (r *pedidoRepo) NextNumero(_ context.Context, tx *gorm.DB) (int64, error) {
	var n int64
	err := tx.Raw("SELECT nextval('pedidos_numero_seq')").Scan(&n).Error
	return n, err
}

func (r *pedidoRepo) CountByCliente(ctx context.Context, clienteID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("cliente_id = ?", clienteID).Count(&n).Error
	return n, err
}

func (r *pedidoRepo) CountByEstado(ctx context.Context, estado string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("estado = ?", estado).Count(&n).Error
	return n, err
}

func (r *pedidoRepo) CountEntregadosDesde(ctx context.Context, desde time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("estado = ? AND fecha_entrega >= ?", model.EstadoEntregado, desde).Count(&n).Error
	return n, err
}

func (r *pedidoRepo) ListVencidos(ctx context.Context, ref time.Time) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Where("estado = ? AND fecha_prometida IS NOT NULL AND fecha_prometida < ?", model.EstadoPorRecibir, ref).
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) SumSaldoPendiente(ctx context.Context) (decimal.Decimal, error) {
	var saldo decimal.NullDecimal
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(GREATEST(COALESCE(p.total_factura_real, p.total) - COALESCE(a.abonado, 0), 0)), 0)
		FROM pedidos p
		LEFT JOIN (SELECT pedido_id, SUM(monto) AS abonado FROM abonos GROUP BY pedido_id) a
		  ON a.pedido_id = p.id
		WHERE p.estado IN (?, ?, ?)`,
		model.EstadoPorRecibir, model.EstadoRecibidoEnBodega, model.EstadoAtrasado).
		Scan(&saldo).Error
	if err != nil || !saldo.Valid {
		return decimal.Zero, err
	}
	return saldo.Decimal, nil
}

func (r *pedidoRepo) CreateAbonoTx(tx *gorm.DB, a *model.Abono) error {
	return tx.Create(a).Error
}

func (r *pedidoRepo) DB() *gorm.DB { return r.db }
