package repository

import (
	"context"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CierreRepository interface {
	CreateTx(tx *gorm.DB, c *model.CierreCaja) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CierreCaja, error)
	// FindUltimo returns the most recent closure, or gorm.ErrRecordNotFound
	// when none exists yet (first period runs from epoch).
	FindUltimo(ctx context.Context) (*model.CierreCaja, error)
	List(ctx context.Context, page, limit int) ([]model.CierreCaja, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error
	DB() *gorm.DB
}

type cierreRepo struct{ db *gorm.DB }

func NewCierreRepository(db *gorm.DB) CierreRepository { return &cierreRepo{db: db} }

func (r *cierreRepo) CreateTx(tx *gorm.DB, c *model.CierreCaja) error {
	return tx.Create(c).Error
}

func (r *cierreRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CierreCaja, error) {
	var c model.CierreCaja
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *cierreRepo) FindUltimo(ctx context.Context) (*model.CierreCaja, error) {
	var c model.CierreCaja
	err := r.db.WithContext(ctx).Order("fecha_hasta DESC").First(&c).Error
	return &c, err
}

func (r *cierreRepo) List(ctx context.Context, page, limit int) ([]model.CierreCaja, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.CierreCaja{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var cierres []model.CierreCaja
	err := r.db.WithContext(ctx).Order("fecha_hasta DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&cierres).Error
	return cierres, total, err
}

func (r *cierreRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CierreCaja{}, id).Error
}

func (r *cierreRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.CierreCaja{}, id).Error
}

func (r *cierreRepo) UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.CierreCaja{}).
		Where("id = ?", id).Update("pdf_path", path).Error
}

func (r *cierreRepo) DB() *gorm.DB { return r.db }
