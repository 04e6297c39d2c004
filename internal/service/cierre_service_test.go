package service

import (
	"context"
	"testing"
	"time"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoCierreService(cierres *cierreRepoStub, movs *movimientoRepoStub) CierreService {
	return NewCierreService(cierres, movs, newCuentaRepoStub(), &auditoriaStub{}, nil, nil)
}

func sembrarMovimiento(movs *movimientoRepoStub, tipo, metodo, monto string) {
	_ = movs.CreateTx(nil, &model.MovimientoFinanciero{
		Tipo:          tipo,
		Metodo:        metodo,
		Monto:         dec(monto),
		Descripcion:   "movimiento de prueba",
		RegistradoPor: "cajero",
	})
}

func TestPreviaTotalizaSoloEfectivoEnCaja(t *testing.T) {
	movs := newMovimientoRepoStub()
	sembrarMovimiento(movs, model.MovimientoIngreso, model.MetodoEfectivo, "100.00")
	sembrarMovimiento(movs, model.MovimientoEgreso, model.MetodoEfectivo, "40.00")
	sembrarMovimiento(movs, model.MovimientoIngreso, model.MetodoTransferencia, "200.00")

	svc := nuevoCierreService(newCierreRepoStub(), movs)
	hasta := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)

	previa, err := svc.Previa(context.Background(), hasta)
	require.NoError(t, err)

	assert.True(t, previa.EfectivoEsperado.Equal(dec("60.00")))
	assert.True(t, previa.TotalIngresos.Equal(dec("300.00")))
	assert.True(t, previa.TotalEgresos.Equal(dec("40.00")))
	assert.Equal(t, 3, previa.CantidadMovimientos)
}

func TestConfirmarCierreConDescuadre(t *testing.T) {
	movs := newMovimientoRepoStub()
	sembrarMovimiento(movs, model.MovimientoIngreso, model.MetodoEfectivo, "500.00")

	cierres := newCierreRepoStub()
	audit := &auditoriaStub{}
	svc := NewCierreService(cierres, movs, newCuentaRepoStub(), audit, nil, nil)
	hasta := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)

	// Esperado 500, declarado 505: el descuadre marca pero nunca bloquea.
	resp, err := svc.Confirmar(context.Background(), dto.ConfirmarCierreRequest{
		FechaHasta:        hasta,
		EfectivoDeclarado: dec("505.00"),
	})
	require.NoError(t, err)

	assert.True(t, resp.EfectivoEsperado.Equal(dec("500.00")))
	assert.True(t, resp.Diferencia.Equal(dec("5.00")))
	assert.True(t, resp.Descuadre)

	require.Len(t, cierres.cierres, 1)
	assert.True(t, cierres.cierres[0].Descuadre)
	// Todos los movimientos del período quedan estampados.
	require.NotNil(t, movs.movimientos[0].CierreCajaID)
	assert.Contains(t, audit.acciones, "confirmar")
}

func TestConfirmarCierreCuadrado(t *testing.T) {
	movs := newMovimientoRepoStub()
	sembrarMovimiento(movs, model.MovimientoIngreso, model.MetodoEfectivo, "500.00")

	svc := nuevoCierreService(newCierreRepoStub(), movs)
	hasta := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)

	resp, err := svc.Confirmar(context.Background(), dto.ConfirmarCierreRequest{
		FechaHasta:        hasta,
		EfectivoDeclarado: dec("500.00"),
	})
	require.NoError(t, err)
	assert.False(t, resp.Descuadre)
	assert.True(t, resp.Diferencia.IsZero())
}

func TestConfirmarRechazaFechaAnteriorAlUltimoCierre(t *testing.T) {
	cierres := newCierreRepoStub()
	require.NoError(t, cierres.CreateTx(nil, &model.CierreCaja{
		FechaDesde: time.Unix(0, 0).UTC(),
		FechaHasta: time.Now().UTC().Add(24 * time.Hour),
	}))

	svc := nuevoCierreService(cierres, newMovimientoRepoStub())
	_, err := svc.Confirmar(context.Background(), dto.ConfirmarCierreRequest{
		FechaHasta:        time.Now().UTC().Format(time.RFC3339),
		EfectivoDeclarado: dec("0"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "posterior al último cierre")
}

func TestPeriodoEncadenaDesdeElCierreAnterior(t *testing.T) {
	movs := newMovimientoRepoStub()
	cierres := newCierreRepoStub()
	svc := nuevoCierreService(cierres, movs)

	sembrarMovimiento(movs, model.MovimientoIngreso, model.MetodoEfectivo, "100.00")
	hasta1 := time.Now().UTC().Add(time.Minute).Format(time.RFC3339)
	_, err := svc.Confirmar(context.Background(), dto.ConfirmarCierreRequest{
		FechaHasta: hasta1, EfectivoDeclarado: dec("100.00"),
	})
	require.NoError(t, err)

	// El movimiento ya cerrado no entra en la previa del siguiente período.
	hasta2 := time.Now().UTC().Add(2 * time.Hour).Format(time.RFC3339)
	previa, err := svc.Previa(context.Background(), hasta2)
	require.NoError(t, err)
	assert.Equal(t, 0, previa.CantidadMovimientos)
	assert.True(t, previa.EfectivoEsperado.IsZero())
}

func TestEliminarCierreLiberaMovimientos(t *testing.T) {
	movs := newMovimientoRepoStub()
	sembrarMovimiento(movs, model.MovimientoIngreso, model.MetodoEfectivo, "250.00")

	cierres := newCierreRepoStub()
	svc := nuevoCierreService(cierres, movs)
	hasta := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)

	resp, err := svc.Confirmar(context.Background(), dto.ConfirmarCierreRequest{
		FechaHasta: hasta, EfectivoDeclarado: dec("250.00"),
	})
	require.NoError(t, err)
	require.NotNil(t, movs.movimientos[0].CierreCajaID)

	id := cierres.cierres[0].ID
	require.Equal(t, resp.ID, id.String())
	require.NoError(t, svc.Eliminar(context.Background(), id))

	assert.Empty(t, cierres.cierres)
	assert.Nil(t, movs.movimientos[0].CierreCajaID)
}

func TestParseFechaHoraAceptaFechaSimple(t *testing.T) {
	fin, err := parseFechaHora("2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, 23, fin.Hour())
	assert.Equal(t, 59, fin.Minute())

	_, err = parseFechaHora("31/08/2026")
	assert.Error(t, err)
}
