package service

import (
	"context"
	"testing"
	"time"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoPedidoService(pedidos *pedidoRepoStub, clientes *clienteRepoStub, fide FidelizacionService) PedidoService {
	if fide == nil {
		fide = NewFidelizacionService(newFideRepoStub(), clientes, &auditoriaStub{})
	}
	return NewPedidoService(pedidos, clientes, fide, &auditoriaStub{}, nil)
}

func clienteDePrueba(clientes *clienteRepoStub) *model.Cliente {
	return clientes.agregar(&model.Cliente{
		Identificacion: "0955555555", Nombre: "Carla", Apellido: "Vega", Activo: true,
	})
}

func TestCrearPedidoAsignaNumeroSecuencial(t *testing.T) {
	pedidos := newPedidoRepoStub()
	clientes := newClienteRepoStub()
	svc := nuevoPedidoService(pedidos, clientes, nil)
	cliente := clienteDePrueba(clientes)

	fecha := "2026-09-15"
	primero, err := svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID:      cliente.ID.String(),
		Total:          dec("100.00"),
		FechaPrometida: &fecha,
	})
	require.NoError(t, err)
	segundo, err := svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID: cliente.ID.String(),
		Total:     dec("75.50"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), primero.Numero)
	assert.Equal(t, int64(2), segundo.Numero)
	assert.Equal(t, model.EstadoPorRecibir, primero.Estado)
	require.NotNil(t, primero.FechaPrometida)
	assert.Equal(t, "2026-09-15", *primero.FechaPrometida)
	assert.True(t, primero.SaldoPendiente.Equal(dec("100.00")))
}

func TestCrearPedidoClienteInexistente(t *testing.T) {
	svc := nuevoPedidoService(newPedidoRepoStub(), newClienteRepoStub(), nil)
	_, err := svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID: uuid.NewString(),
		Total:     dec("10.00"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cliente no encontrado")
}

func TestCancelarPedidoConAbonos(t *testing.T) {
	pedidos := newPedidoRepoStub()
	clientes := newClienteRepoStub()
	svc := nuevoPedidoService(pedidos, clientes, nil)
	cliente := clienteDePrueba(clientes)

	p := pedidos.agregar(&model.Pedido{
		ClienteID: cliente.ID,
		Total:     dec("100.00"),
		Estado:    model.EstadoPorRecibir,
		Abonos:    []model.Abono{{Metodo: model.MetodoEfectivo, Monto: dec("30.00")}},
	})
	err := svc.Cancelar(context.Background(), p.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "abonos registrados")
	assert.Equal(t, model.EstadoPorRecibir, p.Estado)
}

func TestCancelarPedidoSinAbonos(t *testing.T) {
	pedidos := newPedidoRepoStub()
	clientes := newClienteRepoStub()
	svc := nuevoPedidoService(pedidos, clientes, nil)
	cliente := clienteDePrueba(clientes)

	p := pedidos.agregar(&model.Pedido{
		ClienteID: cliente.ID,
		Total:     dec("100.00"),
		Estado:    model.EstadoAtrasado,
	})
	require.NoError(t, svc.Cancelar(context.Background(), p.ID))
	assert.Equal(t, model.EstadoCancelado, p.Estado)
}

func TestCancelarPedidoRecibidoNoPermitido(t *testing.T) {
	pedidos := newPedidoRepoStub()
	clientes := newClienteRepoStub()
	svc := nuevoPedidoService(pedidos, clientes, nil)
	cliente := clienteDePrueba(clientes)

	p := pedidos.agregar(&model.Pedido{
		ClienteID: cliente.ID,
		Total:     dec("100.00"),
		Estado:    model.EstadoRecibidoEnBodega,
	})
	err := svc.Cancelar(context.Background(), p.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pendiente de recibir")
}

func TestEntregarAcreditaPuntosDeFidelizacion(t *testing.T) {
	pedidos := newPedidoRepoStub()
	clientes := newClienteRepoStub()
	fideRepo := newFideRepoStub()
	require.NoError(t, fideRepo.CreateReglaTx(nil, &model.ReglaFidelizacion{
		Nombre: "base", MontoPorPunto: dec("10.00"), Activa: true,
	}))
	fide := NewFidelizacionService(fideRepo, clientes, &auditoriaStub{})
	svc := nuevoPedidoService(pedidos, clientes, fide)

	cliente := clienteDePrueba(clientes)
	real := dec("120.00")
	p := pedidos.agregar(&model.Pedido{
		ClienteID:        cliente.ID,
		Total:            dec("100.00"),
		TotalFacturaReal: &real,
		Estado:           model.EstadoRecibidoEnBodega,
		Abonos:           []model.Abono{{Metodo: model.MetodoEfectivo, Monto: dec("120.00")}},
	})

	resp, err := svc.Entregar(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoEntregado, resp.Estado)
	require.NotNil(t, resp.FechaEntrega)
	// 120 / 10 por punto = 12 puntos sobre el total efectivo.
	assert.Equal(t, 12, cliente.PuntosFidelizacion)
}

func TestEntregarConSaldoPendiente(t *testing.T) {
	pedidos := newPedidoRepoStub()
	clientes := newClienteRepoStub()
	svc := nuevoPedidoService(pedidos, clientes, nil)
	cliente := clienteDePrueba(clientes)

	real := dec("120.00")
	p := pedidos.agregar(&model.Pedido{
		ClienteID:        cliente.ID,
		Total:            dec("100.00"),
		TotalFacturaReal: &real,
		Estado:           model.EstadoRecibidoEnBodega,
		Abonos:           []model.Abono{{Metodo: model.MetodoEfectivo, Monto: dec("30.00")}},
	})
	_, err := svc.Entregar(context.Background(), p.ID)
	assert.ErrorIs(t, err, model.ErrSaldoPendiente)
	assert.Equal(t, model.EstadoRecibidoEnBodega, p.Estado)
}

func TestMarcarAtrasados(t *testing.T) {
	pedidos := newPedidoRepoStub()
	clientes := newClienteRepoStub()
	svc := nuevoPedidoService(pedidos, clientes, nil)
	cliente := clienteDePrueba(clientes)

	ayer := time.Now().UTC().Add(-24 * time.Hour)
	manana := time.Now().UTC().Add(24 * time.Hour)

	vencido1 := pedidos.agregar(&model.Pedido{
		ClienteID: cliente.ID, Total: dec("10.00"),
		Estado: model.EstadoPorRecibir, FechaPrometida: &ayer,
	})
	vencido2 := pedidos.agregar(&model.Pedido{
		ClienteID: cliente.ID, Total: dec("20.00"),
		Estado: model.EstadoPorRecibir, FechaPrometida: &ayer,
	})
	vigente := pedidos.agregar(&model.Pedido{
		ClienteID: cliente.ID, Total: dec("30.00"),
		Estado: model.EstadoPorRecibir, FechaPrometida: &manana,
	})
	sinFecha := pedidos.agregar(&model.Pedido{
		ClienteID: cliente.ID, Total: dec("40.00"),
		Estado: model.EstadoPorRecibir,
	})

	marcados, err := svc.MarcarAtrasados(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 2, marcados)

	assert.Equal(t, model.EstadoAtrasado, pedidos.pedidos[vencido1.ID].Estado)
	assert.Equal(t, model.EstadoAtrasado, pedidos.pedidos[vencido2.ID].Estado)
	assert.Equal(t, model.EstadoPorRecibir, pedidos.pedidos[vigente.ID].Estado)
	assert.Equal(t, model.EstadoPorRecibir, pedidos.pedidos[sinFecha.ID].Estado)
}

func TestActualizarSoloPendientes(t *testing.T) {
	pedidos := newPedidoRepoStub()
	clientes := newClienteRepoStub()
	svc := nuevoPedidoService(pedidos, clientes, nil)
	cliente := clienteDePrueba(clientes)

	real := dec("120.00")
	p := pedidos.agregar(&model.Pedido{
		ClienteID:        cliente.ID,
		Total:            dec("100.00"),
		TotalFacturaReal: &real,
		Estado:           model.EstadoRecibidoEnBodega,
	})
	nuevoTotal := dec("200.00")
	_, err := svc.Actualizar(context.Background(), p.ID, dto.ActualizarPedidoRequest{Total: &nuevoTotal})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pendiente de recibir")
}
