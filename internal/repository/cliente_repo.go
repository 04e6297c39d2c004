package repository

import (
	"context"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context, texto string, page, limit int) ([]model.Cliente, int64, error)
	Update(ctx context.Context, c *model.Cliente) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountActivos(ctx context.Context) (int64, error)
	// SumarPuntosTx adjusts the loyalty balance by delta inside tx.
	SumarPuntosTx(tx *gorm.DB, id uuid.UUID, delta int) error
	// ResetPuntosTx zeroes the loyalty balance (redemption).
	ResetPuntosTx(tx *gorm.DB, id uuid.UUID) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context, texto string, page, limit int) ([]model.Cliente, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("activo = true")
	if texto != "" {
		like := "%" + texto + "%"
		q = q.Where("nombre ILIKE ? OR apellido ILIKE ? OR identificacion ILIKE ?", like, like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var clientes []model.Cliente
	err := q.Order("apellido ASC, nombre ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&clientes).Error
	return clientes, total, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Cliente{}, id).Error
}

func (r *clienteRepo) CountActivos(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("activo = true").Count(&n).Error
	return n, err
}

func (r *clienteRepo) SumarPuntosTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Cliente{}).Where("id = ?", id).
		Update("puntos_fidelizacion", gorm.Expr("puntos_fidelizacion + ?", delta)).Error
}

func (r *clienteRepo) ResetPuntosTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.Cliente{}).Where("id = ?", id).
		Update("puntos_fidelizacion", 0).Error
}
