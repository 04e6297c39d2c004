package dto

import "github.com/shopspring/decimal"

type CrearCuentaRequest struct {
	Banco        string          `json:"banco"         validate:"required"`
	NumeroCuenta string          `json:"numero_cuenta" validate:"required,min=4"`
	Titular      string          `json:"titular"       validate:"required"`
	SaldoInicial decimal.Decimal `json:"saldo_inicial" validate:"min=0"`
}

type CuentaResponse struct {
	ID           string          `json:"id"`
	Banco        string          `json:"banco"`
	NumeroCuenta string          `json:"numero_cuenta"`
	Titular      string          `json:"titular"`
	Saldo        decimal.Decimal `json:"saldo"`
	Activa       bool            `json:"activa"`
}
