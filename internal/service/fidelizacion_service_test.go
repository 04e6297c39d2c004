package service

import (
	"context"
	"testing"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanjearConsumeTodoElSaldoDePuntos(t *testing.T) {
	fide := newFideRepoStub()
	clientes := newClienteRepoStub()
	audit := &auditoriaStub{}
	svc := NewFidelizacionService(fide, clientes, audit)

	cliente := clientes.agregar(&model.Cliente{
		Identificacion: "0912345678", Nombre: "Rosa", Apellido: "Mera",
		PuntosFidelizacion: 120, Activo: true,
	})
	premio := &model.PremioFidelizacion{Nombre: "Plancha de cabello", CostoPuntos: 100, Activo: true}
	require.NoError(t, fide.CreatePremio(context.Background(), premio))

	resp, err := svc.Canjear(context.Background(), dto.CanjearRequest{
		ClienteID: cliente.ID.String(),
		PremioID:  premio.ID.String(),
	})
	require.NoError(t, err)

	// El canje consume el saldo completo, no solo el costo del premio.
	assert.Equal(t, 120, resp.PuntosUtilizados)
	assert.Equal(t, 0, cliente.PuntosFidelizacion)
	assert.Contains(t, audit.acciones, "canjear")
}

func TestCanjearPuntosInsuficientes(t *testing.T) {
	fide := newFideRepoStub()
	clientes := newClienteRepoStub()
	svc := NewFidelizacionService(fide, clientes, &auditoriaStub{})

	cliente := clientes.agregar(&model.Cliente{
		Identificacion: "0911111111", Nombre: "Luis", Apellido: "Paz",
		PuntosFidelizacion: 50, Activo: true,
	})
	premio := &model.PremioFidelizacion{Nombre: "Licuadora", CostoPuntos: 100, Activo: true}
	require.NoError(t, fide.CreatePremio(context.Background(), premio))

	_, err := svc.Canjear(context.Background(), dto.CanjearRequest{
		ClienteID: cliente.ID.String(),
		PremioID:  premio.ID.String(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "puntos insuficientes")
	assert.Equal(t, 50, cliente.PuntosFidelizacion)
}

func TestCanjearPremioInactivo(t *testing.T) {
	fide := newFideRepoStub()
	clientes := newClienteRepoStub()
	svc := NewFidelizacionService(fide, clientes, &auditoriaStub{})

	cliente := clientes.agregar(&model.Cliente{
		Identificacion: "0922222222", Nombre: "Eva", Apellido: "Ruiz",
		PuntosFidelizacion: 500, Activo: true,
	})
	premio := &model.PremioFidelizacion{Nombre: "Descontinuado", CostoPuntos: 10, Activo: false}
	require.NoError(t, fide.CreatePremio(context.Background(), premio))

	_, err := svc.Canjear(context.Background(), dto.CanjearRequest{
		ClienteID: cliente.ID.String(),
		PremioID:  premio.ID.String(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no está disponible")
}

func TestAcreditarPorEntregaRedondeaHaciaAbajo(t *testing.T) {
	fide := newFideRepoStub()
	clientes := newClienteRepoStub()
	svc := NewFidelizacionService(fide, clientes, &auditoriaStub{})

	cliente := clientes.agregar(&model.Cliente{
		Identificacion: "0933333333", Nombre: "Pia", Apellido: "Coro", Activo: true,
	})
	require.NoError(t, fide.CreateReglaTx(nil, &model.ReglaFidelizacion{
		Nombre: "1 punto por cada 10", MontoPorPunto: dec("10.00"), Activa: true,
	}))

	puntos, err := svc.AcreditarPorEntregaTx(context.Background(), nil, cliente.ID, dec("125.00"))
	require.NoError(t, err)
	assert.Equal(t, 12, puntos)
	assert.Equal(t, 12, cliente.PuntosFidelizacion)
}

func TestAcreditarSinReglaActivaNoEsError(t *testing.T) {
	fide := newFideRepoStub()
	clientes := newClienteRepoStub()
	svc := NewFidelizacionService(fide, clientes, &auditoriaStub{})

	cliente := clientes.agregar(&model.Cliente{
		Identificacion: "0944444444", Nombre: "Ana", Apellido: "Toro", Activo: true,
	})
	puntos, err := svc.AcreditarPorEntregaTx(context.Background(), nil, cliente.ID, dec("999.00"))
	require.NoError(t, err)
	assert.Equal(t, 0, puntos)
	assert.Equal(t, 0, cliente.PuntosFidelizacion)
}

func TestCrearReglaActivaDesactivaLasDemas(t *testing.T) {
	fide := newFideRepoStub()
	svc := NewFidelizacionService(fide, newClienteRepoStub(), &auditoriaStub{})

	_, err := svc.CrearRegla(context.Background(), dto.ReglaRequest{
		Nombre: "Regla vieja", MontoPorPunto: dec("5.00"), Activa: true,
	})
	require.NoError(t, err)
	nueva, err := svc.CrearRegla(context.Background(), dto.ReglaRequest{
		Nombre: "Regla nueva", MontoPorPunto: dec("8.00"), Activa: true,
	})
	require.NoError(t, err)

	activa, err := fide.FindReglaActiva(context.Background())
	require.NoError(t, err)
	assert.Equal(t, nueva.ID, activa.ID.String())
	assert.Equal(t, "Regla nueva", activa.Nombre)
}
