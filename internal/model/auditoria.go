package model

import (
	"time"

	"github.com/google/uuid"
)

// Severidades de auditoría.
const (
	SeveridadInfo        = "INFO"
	SeveridadAdvertencia = "ADVERTENCIA"
	SeveridadCritico     = "CRITICO"
)

// RegistroAuditoria is an append-only record of a user action.
type RegistroAuditoria struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID *uuid.UUID `gorm:"type:uuid;index"`
	Username  string     `gorm:"not null;index"`
	Modulo    string     `gorm:"type:varchar(40);not null;index"`
	Accion    string     `gorm:"type:varchar(60);not null"`
	Severidad string     `gorm:"type:varchar(20);not null;default:'INFO'"`
	Detalle   string
	CreatedAt time.Time `gorm:"index"`
}
