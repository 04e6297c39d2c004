package dto

import "github.com/shopspring/decimal"

type RegistrarPagoRequest struct {
	PedidoID         string          `json:"pedido_id"          validate:"required,uuid"`
	Monto            decimal.Decimal `json:"monto"              validate:"required,gt=0"`
	Metodo           string          `json:"metodo"             validate:"required,oneof=EFECTIVO TRANSFERENCIA DEPOSITO CHEQUE"`
	Referencia       *string         `json:"referencia"`
	CuentaBancariaID *string         `json:"cuenta_bancaria_id" validate:"omitempty,uuid"`
}

type MovimientoManualRequest struct {
	Tipo             string          `json:"tipo"               validate:"required,oneof=INGRESO EGRESO"`
	Metodo           string          `json:"metodo"             validate:"required,oneof=EFECTIVO TRANSFERENCIA DEPOSITO CHEQUE"`
	Monto            decimal.Decimal `json:"monto"              validate:"required,gt=0"`
	Descripcion      string          `json:"descripcion"        validate:"required,min=3"`
	Referencia       *string         `json:"referencia"`
	CuentaBancariaID *string         `json:"cuenta_bancaria_id" validate:"omitempty,uuid"`
}

type MovimientoFilter struct {
	Tipo      string `form:"tipo"`
	Metodo    string `form:"metodo"`
	ClienteID string `form:"cliente_id"`
	Desde     string `form:"desde"`
	Hasta     string `form:"hasta"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type MovimientoResponse struct {
	ID            string          `json:"id"`
	Tipo          string          `json:"tipo"`
	Metodo        string          `json:"metodo"`
	Monto         decimal.Decimal `json:"monto"`
	Referencia    *string         `json:"referencia"`
	Descripcion   string          `json:"descripcion"`
	ClienteID     *string         `json:"cliente_id"`
	PedidoID      *string         `json:"pedido_id"`
	RegistradoPor string          `json:"registrado_por"`
	CreatedAt     string          `json:"created_at"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// PagoResponse is returned by RegistrarPago; CreditoGenerado is non-nil when
// the payment exceeded the pending balance and a credit was issued.
type PagoResponse struct {
	Movimiento      MovimientoResponse `json:"movimiento"`
	SaldoAnterior   decimal.Decimal    `json:"saldo_anterior"`
	SaldoNuevo      decimal.Decimal    `json:"saldo_nuevo"`
	CreditoGenerado *CreditoResponse   `json:"credito_generado"`
}

type CreditoResponse struct {
	ID        string          `json:"id"`
	ClienteID string          `json:"cliente_id"`
	Monto     decimal.Decimal `json:"monto"`
	Saldo     decimal.Decimal `json:"saldo"`
	Estado    string          `json:"estado"`
	CreatedAt string          `json:"created_at"`
}
