package dto

import "github.com/shopspring/decimal"

// PreviaCierreResponse is fully computed server-side; the client only
// displays it and compares the counted cash against EfectivoEsperado.
type PreviaCierreResponse struct {
	FechaDesde          string               `json:"fecha_desde"`
	FechaHasta          string               `json:"fecha_hasta"`
	EfectivoEsperado    decimal.Decimal      `json:"efectivo_esperado"`
	TotalIngresos       decimal.Decimal      `json:"total_ingresos"`
	TotalEgresos        decimal.Decimal      `json:"total_egresos"`
	CantidadMovimientos int                  `json:"cantidad_movimientos"`
	Movimientos         []MovimientoResponse `json:"movimientos"`
	Cuentas             []CuentaResponse     `json:"cuentas"`
}

type ConfirmarCierreRequest struct {
	FechaHasta        string          `json:"fecha_hasta"        validate:"required"`
	EfectivoDeclarado decimal.Decimal `json:"efectivo_declarado" validate:"min=0"`
}

type CierreResponse struct {
	ID                  string          `json:"id"`
	FechaDesde          string          `json:"fecha_desde"`
	FechaHasta          string          `json:"fecha_hasta"`
	EfectivoEsperado    decimal.Decimal `json:"efectivo_esperado"`
	EfectivoDeclarado   decimal.Decimal `json:"efectivo_declarado"`
	Diferencia          decimal.Decimal `json:"diferencia"`
	Descuadre           bool            `json:"descuadre"`
	TotalIngresos       decimal.Decimal `json:"total_ingresos"`
	TotalEgresos        decimal.Decimal `json:"total_egresos"`
	CantidadMovimientos int             `json:"cantidad_movimientos"`
	RealizadoPor        string          `json:"realizado_por"`
	PDFPath             *string         `json:"pdf_path"`
	CreatedAt           string          `json:"created_at"`
}
