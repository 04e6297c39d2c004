package repository

import (
	"context"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"

	"gorm.io/gorm"
)

type AuditoriaRepository interface {
	Create(ctx context.Context, r *model.RegistroAuditoria) error
	List(ctx context.Context, filter dto.AuditoriaFilter, limit int) ([]model.RegistroAuditoria, int64, error)
}

type auditoriaRepo struct{ db *gorm.DB }

func NewAuditoriaRepository(db *gorm.DB) AuditoriaRepository { return &auditoriaRepo{db: db} }

func (r *auditoriaRepo) Create(ctx context.Context, m *model.RegistroAuditoria) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *auditoriaRepo) List(ctx context.Context, filter dto.AuditoriaFilter, limit int) ([]model.RegistroAuditoria, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.RegistroAuditoria{})
	if filter.Username != "" {
		q = q.Where("username = ?", filter.Username)
	}
	if filter.Modulo != "" {
		q = q.Where("modulo = ?", filter.Modulo)
	}
	if filter.Severidad != "" {
		q = q.Where("severidad = ?", filter.Severidad)
	}
	if filter.Texto != "" {
		like := "%" + filter.Texto + "%"
		q = q.Where("username ILIKE ? OR accion ILIKE ? OR detalle ILIKE ?", like, like, like)
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
	var registros []model.RegistroAuditoria
	err := q.Order("created_at DESC").
		Offset((filter.Page - 1) * limit).Limit(limit).
		Find(&registros).Error
	return registros, total, err
}
