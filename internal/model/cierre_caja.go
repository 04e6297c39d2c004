package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CierreCaja snapshots the financial ledger over a period. The period always
// starts where the previous closure ended (or at epoch for the first one).
// Rows are immutable after creation; deletion is admin-gated.
type CierreCaja struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FechaDesde time.Time `gorm:"not null;index"`
	FechaHasta time.Time `gorm:"not null;index"`

	EfectivoEsperado  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EfectivoDeclarado decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Diferencia = declarado − esperado. Descuadre when |Diferencia| > 0.01;
	// it flags the closure, never blocks it.
	Diferencia decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descuadre  bool            `gorm:"not null;default:false"`

	TotalIngresos        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalEgresos         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CantidadMovimientos  int             `gorm:"not null"`
	// ReporteDetallado is the JSON document used to render the PDF report.
	ReporteDetallado string  `gorm:"type:jsonb"`
	PDFPath          *string `gorm:"column:pdf_path"`

	RealizadoPor string `gorm:"not null"`
	CreatedAt    time.Time
}

// UmbralDescuadre is the maximum tolerated |declarado − esperado|.
var UmbralDescuadre = decimal.RequireFromString("0.01")
