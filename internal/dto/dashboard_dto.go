package dto

import "github.com/shopspring/decimal"

// ResumenResponse feeds the dashboard. Cached in redis for a short TTL and
// invalidated on payment/closure mutations.
type ResumenResponse struct {
	PedidosPorRecibir  int64           `json:"pedidos_por_recibir"`
	PedidosEnBodega    int64           `json:"pedidos_en_bodega"`
	PedidosAtrasados   int64           `json:"pedidos_atrasados"`
	EntregadosDelMes   int64           `json:"entregados_del_mes"`
	SaldoPorCobrar     decimal.Decimal `json:"saldo_por_cobrar"`
	IngresosDelDia     decimal.Decimal `json:"ingresos_del_dia"`
	EgresosDelDia      decimal.Decimal `json:"egresos_del_dia"`
	ClientesActivos    int64           `json:"clientes_activos"`
	CreditosVigentes   decimal.Decimal `json:"creditos_vigentes"`
}
