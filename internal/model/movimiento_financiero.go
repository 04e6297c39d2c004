package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de movimiento financiero.
const (
	MovimientoIngreso = "INGRESO"
	MovimientoEgreso  = "EGRESO"
)

// Métodos de pago. Bank-mediated methods require a globally unique reference.
const (
	MetodoEfectivo      = "EFECTIVO"
	MetodoTransferencia = "TRANSFERENCIA"
	MetodoDeposito      = "DEPOSITO"
	MetodoCheque        = "CHEQUE"
)

// RequiereReferencia reports whether a payment method is bank-mediated and
// therefore needs a non-empty, globally unique reference number.
func RequiereReferencia(metodo string) bool {
	switch metodo {
	case MetodoTransferencia, MetodoDeposito, MetodoCheque:
		return true
	}
	return false
}

// MovimientoFinanciero is an immutable ledger entry. Rows are never updated
// or deleted — reversals create inverse entries. CierreCajaID is stamped when
// a cash closure snapshots the period containing the movement.
type MovimientoFinanciero struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo   string          `gorm:"type:varchar(10);not null;index"`
	Metodo string          `gorm:"type:varchar(20);not null"`
	Monto  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Referencia is unique among non-null values (partial index, see infra).
	Referencia  *string `gorm:"type:varchar(60)"`
	Descripcion string  `gorm:"not null"`

	ClienteID        *uuid.UUID `gorm:"type:uuid;index"`
	PedidoID         *uuid.UUID `gorm:"type:uuid;index"`
	CuentaBancariaID *uuid.UUID `gorm:"type:uuid;index"`
	CierreCajaID     *uuid.UUID `gorm:"type:uuid;index"`

	// RegistradoPor is the username of the operator; shown verbatim in the
	// duplicate-reference rejection message.
	RegistradoPor string `gorm:"not null"`
	CreatedAt     time.Time
}

// Estados de un crédito de cliente.
const (
	CreditoDisponible = "DISPONIBLE"
	CreditoConsumido  = "CONSUMIDO"
)

// CreditoCliente is the balance created when a payment exceeds the pending
// amount of its pedido. Saldo decreases as future payments consume it.
type CreditoCliente struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	MovimientoID uuid.UUID       `gorm:"type:uuid;not null"`
	Monto        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Saldo        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado       string          `gorm:"type:varchar(20);not null;default:'DISPONIBLE'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
