package repository

import (
	"context"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CuentaRepository interface {
	Create(ctx context.Context, c *model.CuentaBancaria) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CuentaBancaria, error)
	List(ctx context.Context) ([]model.CuentaBancaria, error)
	// AjustarSaldoTx moves the account balance by delta (negative for egresos)
	// inside the transaction that records the ledger entry.
	AjustarSaldoTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
}

type cuentaRepo struct{ db *gorm.DB }

func NewCuentaRepository(db *gorm.DB) CuentaRepository { return &cuentaRepo{db: db} }

func (r *cuentaRepo) Create(ctx context.Context, c *model.CuentaBancaria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cuentaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CuentaBancaria, error) {
	var c model.CuentaBancaria
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *cuentaRepo) List(ctx context.Context) ([]model.CuentaBancaria, error) {
	var cuentas []model.CuentaBancaria
	err := r.db.WithContext(ctx).Where("activa = true").Order("banco ASC").Find(&cuentas).Error
	return cuentas, err
}

func (r *cuentaRepo) AjustarSaldoTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.CuentaBancaria{}).Where("id = ?", id).
		Update("saldo", gorm.Expr("saldo + ?", delta)).Error
}
