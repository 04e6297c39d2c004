package dto

import "github.com/shopspring/decimal"

// RecepcionItem carries the per-order overrides entered in the reception
// screen: the confirmed invoice total, an optional abono taken at reception
// and the supplier invoice number.
type RecepcionItem struct {
	PedidoID      string          `json:"pedido_id"      validate:"required,uuid"`
	TotalFactura  decimal.Decimal `json:"total_factura"  validate:"required,gt=0"`
	Abono         decimal.Decimal `json:"abono"          validate:"min=0"`
	NumeroFactura *string         `json:"numero_factura"`
}

type RecepcionLoteRequest struct {
	Items []RecepcionItem `json:"items" validate:"required,min=1,dive"`
}

// RecepcionItemResult reports the outcome per order. GeneraCredito is set
// when the abono pushed the balance below zero and a credit was issued;
// CreditoExistente when the order already carried a negative balance and the
// abono was rejected for that row.
type RecepcionItemResult struct {
	PedidoID         string          `json:"pedido_id"`
	Numero           int64           `json:"numero"`
	Estado           string          `json:"estado"`
	SaldoReal        decimal.Decimal `json:"saldo_real"`
	SaldoTrasAbono   decimal.Decimal `json:"saldo_tras_abono"`
	GeneraCredito    bool            `json:"genera_credito"`
	CreditoExistente bool            `json:"credito_existente"`
	Error            *string         `json:"error"`
}

type RecepcionLoteResponse struct {
	Resultados []RecepcionItemResult `json:"resultados"`
	Recibidos  int                   `json:"recibidos"`
	// EtiquetasEncoladas indicates the label PDF job was enqueued.
	EtiquetasEncoladas bool `json:"etiquetas_encoladas"`
}
