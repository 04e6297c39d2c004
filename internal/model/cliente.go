package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente holds identity and contact data for a buyer.
// Identificacion and Email carry unique constraints; violations are
// translated to user-facing messages at the service layer.
type Cliente struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Identificacion string    `gorm:"uniqueIndex;not null"`
	Nombre         string    `gorm:"index;not null"`
	Apellido       string    `gorm:"not null"`
	Email          *string   `gorm:"uniqueIndex"`
	Telefono       *string   `gorm:"type:varchar(20)"`
	Direccion      *string
	// PuntosFidelizacion is the loyalty balance; zeroed on redemption.
	PuntosFidelizacion int  `gorm:"not null;default:0"`
	Activo             bool `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
