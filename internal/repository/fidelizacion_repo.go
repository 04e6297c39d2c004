package repository

import (
	"context"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FidelizacionRepository interface {
	CreateRegla(ctx context.Context, r *model.ReglaFidelizacion) error
	CreateReglaTx(tx *gorm.DB, r *model.ReglaFidelizacion) error
	ListReglas(ctx context.Context) ([]model.ReglaFidelizacion, error)
	FindReglaByID(ctx context.Context, id uuid.UUID) (*model.ReglaFidelizacion, error)
	// FindReglaActiva returns the single active accrual rule.
	FindReglaActiva(ctx context.Context) (*model.ReglaFidelizacion, error)
	UpdateRegla(ctx context.Context, r *model.ReglaFidelizacion) error
	UpdateReglaTx(tx *gorm.DB, r *model.ReglaFidelizacion) error
	// DesactivarReglasTx clears the Activa flag on every rule; activating a
	// rule runs this first so only one stays active.
	DesactivarReglasTx(tx *gorm.DB) error

	CreatePremio(ctx context.Context, p *model.PremioFidelizacion) error
	ListPremios(ctx context.Context) ([]model.PremioFidelizacion, error)
	FindPremioByID(ctx context.Context, id uuid.UUID) (*model.PremioFidelizacion, error)
	UpdatePremio(ctx context.Context, p *model.PremioFidelizacion) error

	CreateCanjeTx(tx *gorm.DB, c *model.CanjeFidelizacion) error
	ListCanjes(ctx context.Context, clienteID *uuid.UUID) ([]model.CanjeFidelizacion, error)
	DB() *gorm.DB
}

type fidelizacionRepo struct{ db *gorm.DB }

func NewFidelizacionRepository(db *gorm.DB) FidelizacionRepository {
	return &fidelizacionRepo{db: db}
}

func (r *fidelizacionRepo) CreateRegla(ctx context.Context, m *model.ReglaFidelizacion) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *fidelizacionRepo) CreateReglaTx(tx *gorm.DB, m *model.ReglaFidelizacion) error {
	return tx.Create(m).Error
}

func (r *fidelizacionRepo) ListReglas(ctx context.Context) ([]model.ReglaFidelizacion, error) {
	var reglas []model.ReglaFidelizacion
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reglas).Error
	return reglas, err
}

func (r *fidelizacionRepo) FindReglaByID(ctx context.Context, id uuid.UUID) (*model.ReglaFidelizacion, error) {
	var regla model.ReglaFidelizacion
	err := r.db.WithContext(ctx).First(&regla, id).Error
	return &regla, err
}

func (r *fidelizacionRepo) FindReglaActiva(ctx context.Context) (*model.ReglaFidelizacion, error) {
	var regla model.ReglaFidelizacion
	err := r.db.WithContext(ctx).Where("activa = true").First(&regla).Error
	return &regla, err
}

func (r *fidelizacionRepo) UpdateRegla(ctx context.Context, m *model.ReglaFidelizacion) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *fidelizacionRepo) UpdateReglaTx(tx *gorm.DB, m *model.ReglaFidelizacion) error {
	return tx.Save(m).Error
}

func (r *fidelizacionRepo) DesactivarReglasTx(tx *gorm.DB) error {
	return tx.Model(&model.ReglaFidelizacion{}).Where("activa = true").Update("activa", false).Error
}

func (r *fidelizacionRepo) CreatePremio(ctx context.Context, p *model.PremioFidelizacion) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *fidelizacionRepo) ListPremios(ctx context.Context) ([]model.PremioFidelizacion, error) {
	var premios []model.PremioFidelizacion
	err := r.db.WithContext(ctx).Order("costo_puntos ASC").Find(&premios).Error
	return premios, err
}

func (r *fidelizacionRepo) FindPremioByID(ctx context.Context, id uuid.UUID) (*model.PremioFidelizacion, error) {
	var premio model.PremioFidelizacion
	err := r.db.WithContext(ctx).First(&premio, id).Error
	return &premio, err
}

func (r *fidelizacionRepo) UpdatePremio(ctx context.Context, p *model.PremioFidelizacion) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *fidelizacionRepo) CreateCanjeTx(tx *gorm.DB, c *model.CanjeFidelizacion) error {
	return tx.Create(c).Error
}

func (r *fidelizacionRepo) ListCanjes(ctx context.Context, clienteID *uuid.UUID) ([]model.CanjeFidelizacion, error) {
	q := r.db.WithContext(ctx).Preload("Premio")
	if clienteID != nil {
		q = q.Where("cliente_id = ?", *clienteID)
	}
	var canjes []model.CanjeFidelizacion
	err := q.Order("created_at DESC").Find(&canjes).Error
	return canjes, err
}

func (r *fidelizacionRepo) DB() *gorm.DB { return r.db }
