package service

import (
	"context"
	"testing"
	"time"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumenAgregaIndicadores(t *testing.T) {
	pedidos := newPedidoRepoStub()
	movs := newMovimientoRepoStub()
	clientes := newClienteRepoStub()
	svc := NewDashboardService(pedidos, movs, clientes, nil)

	cliente := clientes.agregar(&model.Cliente{
		Identificacion: "0910000010", Nombre: "Tania", Apellido: "Mora", Activo: true,
	})
	clientes.agregar(&model.Cliente{
		Identificacion: "0910000011", Nombre: "Ex", Apellido: "Cliente", Activo: false,
	})

	pedidos.agregar(&model.Pedido{ClienteID: cliente.ID, Total: dec("100.00"), Estado: model.EstadoPorRecibir})
	pedidos.agregar(&model.Pedido{ClienteID: cliente.ID, Total: dec("50.00"), Estado: model.EstadoAtrasado})
	entrega := time.Now().UTC()
	pedidos.agregar(&model.Pedido{
		ClienteID: cliente.ID, Total: dec("80.00"),
		Estado: model.EstadoEntregado, FechaEntrega: &entrega,
	})

	sembrarMovimiento(movs, model.MovimientoIngreso, model.MetodoEfectivo, "120.00")
	sembrarMovimiento(movs, model.MovimientoEgreso, model.MetodoEfectivo, "20.00")
	require.NoError(t, movs.CreateCreditoTx(nil, &model.CreditoCliente{
		ClienteID: cliente.ID, MovimientoID: uuid.New(),
		Monto: dec("10.00"), Saldo: dec("10.00"), Estado: model.CreditoDisponible,
	}))

	resumen, err := svc.Resumen(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resumen.PedidosPorRecibir)
	assert.Equal(t, int64(1), resumen.PedidosAtrasados)
	assert.Equal(t, int64(0), resumen.PedidosEnBodega)
	assert.Equal(t, int64(1), resumen.EntregadosDelMes)
	assert.Equal(t, int64(1), resumen.ClientesActivos)
	// Solo los pedidos abiertos suman al saldo por cobrar.
	assert.True(t, resumen.SaldoPorCobrar.Equal(dec("150.00")))
	assert.True(t, resumen.IngresosDelDia.Equal(dec("120.00")))
	assert.True(t, resumen.EgresosDelDia.Equal(dec("20.00")))
	assert.True(t, resumen.CreditosVigentes.Equal(dec("10.00")))
}
