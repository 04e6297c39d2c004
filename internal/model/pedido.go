package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido.
// RECIBIDO is a legacy alias of RECIBIDO_EN_BODEGA found in historical rows;
// it is accepted wherever RECIBIDO_EN_BODEGA is required but never written.
const (
	EstadoPorRecibir       = "POR_RECIBIR"
	EstadoRecibidoEnBodega = "RECIBIDO_EN_BODEGA"
	EstadoEntregado        = "ENTREGADO"
	EstadoAtrasado         = "ATRASADO"
	EstadoCancelado        = "CANCELADO"
	EstadoRecibidoLegacy   = "RECIBIDO"
)

// ToleranciaEntrega is the maximum pending balance allowed when delivering.
// UmbralCredito is the minimum overpayment that generates a client credit —
// amounts are exact decimals, so these are business thresholds, not float
// comparison guards.
var (
	ToleranciaEntrega = decimal.RequireFromString("0.01")
	UmbralCredito     = decimal.RequireFromString("0.001")
)

var (
	ErrRecepcionInvalida = errors.New("el pedido solo puede recibirse desde POR_RECIBIR o ATRASADO")
	ErrEntregaInvalida   = errors.New("el pedido debe estar RECIBIDO_EN_BODEGA para entregarse")
	ErrSaldoPendiente    = errors.New("el pedido tiene saldo pendiente; registre el pago antes de entregar")
	ErrReversionInvalida = errors.New("solo puede revertirse un pedido RECIBIDO_EN_BODEGA")
)

// Pedido is a client purchase order moving through reception and delivery.
// Total is the estimate taken at order placement; TotalFacturaReal is the
// confirmed invoice total set at warehouse reception. While the latter is
// nil the estimate governs all balance arithmetic.
type Pedido struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero    int64     `gorm:"uniqueIndex;not null"`
	ClienteID uuid.UUID `gorm:"type:uuid;index;not null"`

	Descripcion      *string
	Total            decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	TotalFacturaReal *decimal.Decimal `gorm:"type:decimal(12,2)"`
	NumeroFactura    *string          `gorm:"type:varchar(50)"`
	Estado           string           `gorm:"type:varchar(30);not null;default:'POR_RECIBIR';index"`

	FechaPrometida *time.Time
	FechaRecepcion *time.Time
	FechaEntrega   *time.Time

	Abonos  []Abono  `gorm:"foreignKey:PedidoID"`
	Cliente *Cliente `gorm:"foreignKey:ClienteID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Abono is a payment applied to a pedido. It mirrors the ledger entry that
// originated it (MovimientoID) so reception-batch abonos and manual payments
// share one shape.
type Abono struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	MovimientoID *uuid.UUID `gorm:"type:uuid"`
	Metodo       string     `gorm:"type:varchar(20);not null"`
	Monto        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt    time.Time
}

// TotalEfectivo returns the governing total: the real invoice total when
// reception confirmed one, the estimate otherwise.
func (p *Pedido) TotalEfectivo() decimal.Decimal {
	if p.TotalFacturaReal != nil {
		return *p.TotalFacturaReal
	}
	return p.Total
}

// TotalAbonado sums every payment applied to the pedido.
func (p *Pedido) TotalAbonado() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Abonos {
		total = total.Add(a.Monto)
	}
	return total
}

// SaldoPendiente = TotalEfectivo − TotalAbonado. Negative when the client
// overpaid (a credit exists or will be issued).
func (p *Pedido) SaldoPendiente() decimal.Decimal {
	return p.TotalEfectivo().Sub(p.TotalAbonado())
}

// SaldoMostrado clamps the pending balance at zero for display; the signed
// value stays available through SaldoPendiente.
func (p *Pedido) SaldoMostrado() decimal.Decimal {
	saldo := p.SaldoPendiente()
	if saldo.IsNegative() {
		return decimal.Zero
	}
	return saldo
}

// Recibir confirms warehouse reception with the real invoice total.
// Existing abonos are never recomputed.
func (p *Pedido) Recibir(totalReal decimal.Decimal, now time.Time) error {
	if p.Estado != EstadoPorRecibir && p.Estado != EstadoAtrasado {
		return ErrRecepcionInvalida
	}
	p.TotalFacturaReal = &totalReal
	p.FechaRecepcion = &now
	p.Estado = EstadoRecibidoEnBodega
	return nil
}

// Entregar marks the pedido delivered. The pending balance must not exceed
// ToleranciaEntrega — callers force a payment registration first otherwise.
func (p *Pedido) Entregar(now time.Time) error {
	if p.Estado != EstadoRecibidoEnBodega && p.Estado != EstadoRecibidoLegacy {
		return ErrEntregaInvalida
	}
	if p.SaldoPendiente().GreaterThan(ToleranciaEntrega) {
		return ErrSaldoPendiente
	}
	p.FechaEntrega = &now
	p.Estado = EstadoEntregado
	return nil
}

// RevertirRecepcion undoes a reception: clears the real total and reception
// date and returns the pedido to POR_RECIBIR. Abonos are kept.
func (p *Pedido) RevertirRecepcion() error {
	if p.Estado != EstadoRecibidoEnBodega && p.Estado != EstadoRecibidoLegacy {
		return ErrReversionInvalida
	}
	p.TotalFacturaReal = nil
	p.FechaRecepcion = nil
	p.NumeroFactura = nil
	p.Estado = EstadoPorRecibir
	return nil
}
