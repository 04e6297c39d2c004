package dto

import "github.com/shopspring/decimal"

type CrearPedidoRequest struct {
	ClienteID      string          `json:"cliente_id"      validate:"required,uuid"`
	Descripcion    *string         `json:"descripcion"`
	Total          decimal.Decimal `json:"total"           validate:"required,gt=0"`
	FechaPrometida *string         `json:"fecha_prometida" validate:"omitempty,datetime=2006-01-02"`
}

type ActualizarPedidoRequest struct {
	Descripcion    *string          `json:"descripcion"`
	Total          *decimal.Decimal `json:"total"           validate:"omitempty,gt=0"`
	FechaPrometida *string          `json:"fecha_prometida" validate:"omitempty,datetime=2006-01-02"`
}

type RecibirPedidoRequest struct {
	TotalFacturaReal decimal.Decimal `json:"total_factura_real" validate:"required,gt=0"`
	NumeroFactura    *string         `json:"numero_factura"`
}

type PedidoFilter struct {
	ClienteID string `form:"cliente_id"`
	Estado    string `form:"estado"`
	Desde     string `form:"desde"`
	Hasta     string `form:"hasta"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type AbonoResponse struct {
	ID        string          `json:"id"`
	Metodo    string          `json:"metodo"`
	Monto     decimal.Decimal `json:"monto"`
	CreatedAt string          `json:"created_at"`
}

type PedidoResponse struct {
	ID               string           `json:"id"`
	Numero           int64            `json:"numero"`
	ClienteID        string           `json:"cliente_id"`
	ClienteNombre    string           `json:"cliente_nombre"`
	Descripcion      *string          `json:"descripcion"`
	Total            decimal.Decimal  `json:"total"`
	TotalFacturaReal *decimal.Decimal `json:"total_factura_real"`
	TotalEfectivo    decimal.Decimal  `json:"total_efectivo"`
	TotalAbonado     decimal.Decimal  `json:"total_abonado"`
	SaldoPendiente   decimal.Decimal  `json:"saldo_pendiente"`
	NumeroFactura    *string          `json:"numero_factura"`
	Estado           string           `json:"estado"`
	FechaPrometida   *string          `json:"fecha_prometida"`
	FechaRecepcion   *string          `json:"fecha_recepcion"`
	FechaEntrega     *string          `json:"fecha_entrega"`
	Abonos           []AbonoResponse  `json:"abonos"`
	CreatedAt        string           `json:"created_at"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
