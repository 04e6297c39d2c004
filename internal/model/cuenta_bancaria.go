package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CuentaBancaria tracks a bank account balance. Bank-mediated movements
// (TRANSFERENCIA/DEPOSITO/CHEQUE) adjust Saldo inside the same transaction
// that creates the ledger entry.
type CuentaBancaria struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Banco        string          `gorm:"not null"`
	NumeroCuenta string          `gorm:"uniqueIndex;not null"`
	Titular      string          `gorm:"not null"`
	Saldo        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Activa       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
