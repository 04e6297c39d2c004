package service

import (
	"context"
	"testing"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevaRecepcion(pedidos *pedidoRepoStub, movs *movimientoRepoStub) RecepcionService {
	return NewRecepcionService(pedidos, movs, &auditoriaStub{}, nil, nil)
}

func TestProcesarLoteRecibeYAbona(t *testing.T) {
	pedidos := newPedidoRepoStub()
	movs := newMovimientoRepoStub()
	svc := nuevaRecepcion(pedidos, movs)

	p := pedidos.agregar(&model.Pedido{
		ClienteID: uuid.New(),
		Total:     dec("100.00"),
		Estado:    model.EstadoPorRecibir,
	})
	factura := "F-1001"

	resp, err := svc.ProcesarLote(context.Background(), dto.RecepcionLoteRequest{
		Items: []dto.RecepcionItem{{
			PedidoID:      p.ID.String(),
			TotalFactura:  dec("120.00"),
			Abono:         dec("30.00"),
			NumeroFactura: &factura,
		}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Resultados, 1)
	assert.Equal(t, 1, resp.Recibidos)

	res := resp.Resultados[0]
	assert.Nil(t, res.Error)
	assert.Equal(t, model.EstadoRecibidoEnBodega, res.Estado)
	assert.True(t, res.SaldoReal.Equal(dec("120.00")))
	assert.True(t, res.SaldoTrasAbono.Equal(dec("90.00")))
	assert.False(t, res.GeneraCredito)

	recargado, err := pedidos.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, recargado.NumeroFactura)
	assert.Equal(t, "F-1001", *recargado.NumeroFactura)
	assert.True(t, recargado.SaldoPendiente().Equal(dec("90.00")))

	require.Len(t, movs.movimientos, 1)
	assert.Equal(t, model.MetodoEfectivo, movs.movimientos[0].Metodo)
}

func TestProcesarLoteAbonoExcesivoGeneraCredito(t *testing.T) {
	pedidos := newPedidoRepoStub()
	movs := newMovimientoRepoStub()
	svc := nuevaRecepcion(pedidos, movs)

	p := pedidos.agregar(&model.Pedido{
		ClienteID: uuid.New(),
		Total:     dec("100.00"),
		Estado:    model.EstadoPorRecibir,
	})

	resp, err := svc.ProcesarLote(context.Background(), dto.RecepcionLoteRequest{
		Items: []dto.RecepcionItem{{
			PedidoID:     p.ID.String(),
			TotalFactura: dec("120.00"),
			Abono:        dec("130.00"),
		}},
	})
	require.NoError(t, err)

	res := resp.Resultados[0]
	assert.Nil(t, res.Error)
	assert.True(t, res.GeneraCredito)
	assert.True(t, res.SaldoTrasAbono.Equal(dec("-10.00")))

	require.Len(t, movs.creditos, 1)
	assert.True(t, movs.creditos[0].Monto.Equal(dec("10.00")))
}

func TestProcesarLoteRechazaAbonoConSaldoAFavor(t *testing.T) {
	pedidos := newPedidoRepoStub()
	movs := newMovimientoRepoStub()
	svc := nuevaRecepcion(pedidos, movs)

	// Abonos previos de 150 sobre una factura real de 120: ya hay saldo a favor.
	p := pedidos.agregar(&model.Pedido{
		ClienteID: uuid.New(),
		Total:     dec("140.00"),
		Estado:    model.EstadoPorRecibir,
		Abonos:    []model.Abono{{Metodo: model.MetodoEfectivo, Monto: dec("150.00")}},
	})

	resp, err := svc.ProcesarLote(context.Background(), dto.RecepcionLoteRequest{
		Items: []dto.RecepcionItem{{
			PedidoID:     p.ID.String(),
			TotalFactura: dec("120.00"),
			Abono:        dec("20.00"),
		}},
	})
	require.NoError(t, err)
	// El pedido sí se recibe; solo el abono de la fila se rechaza.
	assert.Equal(t, 1, resp.Recibidos)

	res := resp.Resultados[0]
	assert.True(t, res.CreditoExistente)
	require.NotNil(t, res.Error)
	assert.Contains(t, *res.Error, "saldo a favor")
	assert.Equal(t, model.EstadoRecibidoEnBodega, res.Estado)

	// Ni movimiento ni abono nuevos.
	assert.Empty(t, movs.movimientos)
	recargado, err := pedidos.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, recargado.TotalAbonado().Equal(dec("150.00")))
}

func TestProcesarLoteFilasInvalidasNoTumbanElLote(t *testing.T) {
	pedidos := newPedidoRepoStub()
	svc := nuevaRecepcion(pedidos, newMovimientoRepoStub())

	valido := pedidos.agregar(&model.Pedido{
		ClienteID: uuid.New(),
		Total:     dec("50.00"),
		Estado:    model.EstadoPorRecibir,
	})
	entregado := pedidos.agregar(&model.Pedido{
		ClienteID: uuid.New(),
		Total:     dec("80.00"),
		Estado:    model.EstadoEntregado,
	})

	resp, err := svc.ProcesarLote(context.Background(), dto.RecepcionLoteRequest{
		Items: []dto.RecepcionItem{
			{PedidoID: valido.ID.String(), TotalFactura: dec("55.00")},
			{PedidoID: entregado.ID.String(), TotalFactura: dec("80.00")},
			{PedidoID: "no-es-uuid", TotalFactura: dec("10.00")},
			{PedidoID: uuid.NewString(), TotalFactura: dec("10.00")},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Resultados, 4)
	assert.Equal(t, 1, resp.Recibidos)

	assert.Nil(t, resp.Resultados[0].Error)
	require.NotNil(t, resp.Resultados[1].Error)
	assert.Equal(t, model.ErrRecepcionInvalida.Error(), *resp.Resultados[1].Error)
	require.NotNil(t, resp.Resultados[2].Error)
	assert.Contains(t, *resp.Resultados[2].Error, "inválido")
	require.NotNil(t, resp.Resultados[3].Error)
	assert.Contains(t, *resp.Resultados[3].Error, "no encontrado")
}
