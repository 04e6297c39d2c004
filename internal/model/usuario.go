package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system users. Each user has exactly one Rol; the role's
// permission set is embedded in the JWT at login.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string    `gorm:"not null"`
	RolID        uuid.UUID `gorm:"type:uuid;not null"`
	Activo       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Rol *Rol `gorm:"foreignKey:RolID"`
}

// Rol owns a set of "modulo.accion" permission strings.
type Rol struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Permisos    []Permiso `gorm:"foreignKey:RolID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Permiso is one "modulo.accion" grant, e.g. "pedidos.recibir".
type Permiso struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RolID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_rol_clave"`
	Clave string    `gorm:"not null;uniqueIndex:idx_rol_clave"`
}

// Claves returns the role's permission strings.
func (r *Rol) Claves() []string {
	claves := make([]string, 0, len(r.Permisos))
	for _, p := range r.Permisos {
		claves = append(claves, p.Clave)
	}
	return claves
}
