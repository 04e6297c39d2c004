package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReglaFidelizacion defines accrual: one point per MontoPorPunto spent.
// Only one rule is active at a time; the service enforces it.
type ReglaFidelizacion struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string          `gorm:"not null"`
	MontoPorPunto decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Activa        bool            `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PremioFidelizacion is a prize redeemable for points.
type PremioFidelizacion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null"`
	Descripcion *string
	CostoPuntos int  `gorm:"not null"`
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanjeFidelizacion records a redemption. Redeeming zeroes the client's
// whole point balance, so PuntosUtilizados stores the balance at canje time.
type CanjeFidelizacion struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID        uuid.UUID `gorm:"type:uuid;index;not null"`
	PremioID         uuid.UUID `gorm:"type:uuid;not null"`
	PuntosUtilizados int       `gorm:"not null"`
	CreatedAt        time.Time

	Premio *PremioFidelizacion `gorm:"foreignKey:PremioID"`
}
