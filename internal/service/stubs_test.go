package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repositorios en memoria para las pruebas de servicio. DB() devuelve nil, de
// modo que runTx ejecuta la función directamente sin transacción real.

// ── Pedidos ───────────────────────────────────────────────────────────────────

type pedidoRepoStub struct {
	pedidos map[uuid.UUID]*model.Pedido
	abonos  map[uuid.UUID][]model.Abono
	numero  int64
}

func newPedidoRepoStub() *pedidoRepoStub {
	return &pedidoRepoStub{
		pedidos: make(map[uuid.UUID]*model.Pedido),
		abonos:  make(map[uuid.UUID][]model.Abono),
	}
}

// agregar siembra un pedido; los abonos embebidos pasan al almacén de abonos.
func (r *pedidoRepoStub) agregar(p *model.Pedido) *model.Pedido {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Numero == 0 {
		r.numero++
		p.Numero = r.numero
	}
	for _, a := range p.Abonos {
		a.PedidoID = p.ID
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		r.abonos[p.ID] = append(r.abonos[p.ID], a)
	}
	p.Abonos = nil
	r.pedidos[p.ID] = p
	return p
}

func (r *pedidoRepoStub) find(id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.Abonos = append([]model.Abono(nil), r.abonos[p.ID]...)
	return p, nil
}

func (r *pedidoRepoStub) Create(_ context.Context, p *model.Pedido) error { return r.CreateTx(nil, p) }

func (r *pedidoRepoStub) CreateTx(_ *gorm.DB, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.pedidos[p.ID] = p
	return nil
}

func (r *pedidoRepoStub) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	return r.find(id)
}

func (r *pedidoRepoStub) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Pedido, error) {
	return r.find(id)
}

func (r *pedidoRepoStub) List(_ context.Context, _ dto.PedidoFilter) ([]model.Pedido, int64, error) {
	all := make([]model.Pedido, 0, len(r.pedidos))
	for _, p := range r.pedidos {
		all = append(all, *p)
	}
	return all, int64(len(all)), nil
}

func (r *pedidoRepoStub) Update(_ context.Context, p *model.Pedido) error { return r.UpdateTx(nil, p) }

func (r *pedidoRepoStub) UpdateTx(_ *gorm.DB, p *model.Pedido) error {
	r.pedidos[p.ID] = p
	return nil
}

func (r *pedidoRepoStub) NextNumero(_ context.Context, _ *gorm.DB) (int64, error) {
	r.numero++
	return r.numero, nil
}

func (r *pedidoRepoStub) CountByCliente(_ context.Context, clienteID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.pedidos {
		if p.ClienteID == clienteID {
			n++
		}
	}
	return n, nil
}

func (r *pedidoRepoStub) CountByEstado(_ context.Context, estado string) (int64, error) {
	var n int64
	for _, p := range r.pedidos {
		if p.Estado == estado {
			n++
		}
	}
	return n, nil
}

func (r *pedidoRepoStub) CountEntregadosDesde(_ context.Context, desde time.Time) (int64, error) {
	var n int64
	for _, p := range r.pedidos {
		if p.Estado == model.EstadoEntregado && p.FechaEntrega != nil && !p.FechaEntrega.Before(desde) {
			n++
		}
	}
	return n, nil
}

func (r *pedidoRepoStub) ListVencidos(_ context.Context, ref time.Time) ([]model.Pedido, error) {
	var vencidos []model.Pedido
	for _, p := range r.pedidos {
		if p.Estado == model.EstadoPorRecibir && p.FechaPrometida != nil && p.FechaPrometida.Before(ref) {
			vencidos = append(vencidos, *p)
		}
	}
	return vencidos, nil
}

func (r *pedidoRepoStub) SumSaldoPendiente(_ context.Context) (decimal.Decimal, error) {
	suma := decimal.Zero
	for _, p := range r.pedidos {
		switch p.Estado {
		case model.EstadoPorRecibir, model.EstadoRecibidoEnBodega, model.EstadoAtrasado:
			q, _ := r.find(p.ID)
			suma = suma.Add(q.SaldoMostrado())
		}
	}
	return suma, nil
}

func (r *pedidoRepoStub) CreateAbonoTx(_ *gorm.DB, a *model.Abono) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	r.abonos[a.PedidoID] = append(r.abonos[a.PedidoID], *a)
	return nil
}

func (r *pedidoRepoStub) DB() *gorm.DB { return nil }

var _ repository.PedidoRepository = (*pedidoRepoStub)(nil)

// ── Movimientos y créditos ────────────────────────────────────────────────────

type movimientoRepoStub struct {
	movimientos []*model.MovimientoFinanciero
	creditos    []*model.CreditoCliente
}

func newMovimientoRepoStub() *movimientoRepoStub { return &movimientoRepoStub{} }

func (r *movimientoRepoStub) Create(_ context.Context, m *model.MovimientoFinanciero) error {
	return r.CreateTx(nil, m)
}

func (r *movimientoRepoStub) CreateTx(_ *gorm.DB, m *model.MovimientoFinanciero) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.movimientos = append(r.movimientos, m)
	return nil
}

func (r *movimientoRepoStub) FindByReferencia(_ context.Context, referencia string) (*model.MovimientoFinanciero, error) {
	for _, m := range r.movimientos {
		if m.Referencia != nil && *m.Referencia == referencia {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *movimientoRepoStub) List(_ context.Context, _ dto.MovimientoFilter) ([]model.MovimientoFinanciero, int64, error) {
	all := make([]model.MovimientoFinanciero, 0, len(r.movimientos))
	for _, m := range r.movimientos {
		all = append(all, *m)
	}
	return all, int64(len(all)), nil
}

func (r *movimientoRepoStub) ListSinCierre(_ context.Context, desde, hasta time.Time) ([]model.MovimientoFinanciero, error) {
	var movs []model.MovimientoFinanciero
	for _, m := range r.movimientos {
		if m.CierreCajaID == nil && m.CreatedAt.After(desde) && !m.CreatedAt.After(hasta) {
			movs = append(movs, *m)
		}
	}
	return movs, nil
}

func (r *movimientoRepoStub) StampCierreTx(_ *gorm.DB, desde, hasta time.Time, cierreID uuid.UUID) error {
	for _, m := range r.movimientos {
		if m.CierreCajaID == nil && m.CreatedAt.After(desde) && !m.CreatedAt.After(hasta) {
			id := cierreID
			m.CierreCajaID = &id
		}
	}
	return nil
}

func (r *movimientoRepoStub) DesestamparCierreTx(_ *gorm.DB, cierreID uuid.UUID) error {
	for _, m := range r.movimientos {
		if m.CierreCajaID != nil && *m.CierreCajaID == cierreID {
			m.CierreCajaID = nil
		}
	}
	return nil
}

func (r *movimientoRepoStub) SumDelDia(_ context.Context, tipo string, dia time.Time) (decimal.Decimal, error) {
	suma := decimal.Zero
	for _, m := range r.movimientos {
		if m.Tipo == tipo && m.CreatedAt.Year() == dia.Year() && m.CreatedAt.YearDay() == dia.YearDay() {
			suma = suma.Add(m.Monto)
		}
	}
	return suma, nil
}

func (r *movimientoRepoStub) CreateCreditoTx(_ *gorm.DB, c *model.CreditoCliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.creditos = append(r.creditos, c)
	return nil
}

func (r *movimientoRepoStub) ListCreditosByCliente(_ context.Context, clienteID uuid.UUID) ([]model.CreditoCliente, error) {
	var creditos []model.CreditoCliente
	for _, c := range r.creditos {
		if c.ClienteID == clienteID {
			creditos = append(creditos, *c)
		}
	}
	return creditos, nil
}

func (r *movimientoRepoStub) SumCreditosVigentes(_ context.Context) (decimal.Decimal, error) {
	suma := decimal.Zero
	for _, c := range r.creditos {
		if c.Estado == model.CreditoDisponible {
			suma = suma.Add(c.Saldo)
		}
	}
	return suma, nil
}

func (r *movimientoRepoStub) DB() *gorm.DB { return nil }

var _ repository.MovimientoRepository = (*movimientoRepoStub)(nil)

// ── Cuentas bancarias ─────────────────────────────────────────────────────────

type cuentaRepoStub struct {
	cuentas map[uuid.UUID]*model.CuentaBancaria
}

func newCuentaRepoStub() *cuentaRepoStub {
	return &cuentaRepoStub{cuentas: make(map[uuid.UUID]*model.CuentaBancaria)}
}

func (r *cuentaRepoStub) Create(_ context.Context, c *model.CuentaBancaria) error {
	for _, otra := range r.cuentas {
		if otra.NumeroCuenta == c.NumeroCuenta {
			return errors.New(`duplicate key value violates unique constraint "idx_cuenta_bancarias_numero_cuenta"`)
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cuentas[c.ID] = c
	return nil
}

func (r *cuentaRepoStub) FindByID(_ context.Context, id uuid.UUID) (*model.CuentaBancaria, error) {
	c, ok := r.cuentas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *cuentaRepoStub) List(_ context.Context) ([]model.CuentaBancaria, error) {
	all := make([]model.CuentaBancaria, 0, len(r.cuentas))
	for _, c := range r.cuentas {
		if c.Activa {
			all = append(all, *c)
		}
	}
	return all, nil
}

func (r *cuentaRepoStub) AjustarSaldoTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	c, ok := r.cuentas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Saldo = c.Saldo.Add(delta)
	return nil
}

var _ repository.CuentaRepository = (*cuentaRepoStub)(nil)

// ── Cierres ───────────────────────────────────────────────────────────────────

type cierreRepoStub struct {
	cierres []*model.CierreCaja
}

func newCierreRepoStub() *cierreRepoStub { return &cierreRepoStub{} }

func (r *cierreRepoStub) CreateTx(_ *gorm.DB, c *model.CierreCaja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.cierres = append(r.cierres, c)
	return nil
}

func (r *cierreRepoStub) FindByID(_ context.Context, id uuid.UUID) (*model.CierreCaja, error) {
	for _, c := range r.cierres {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *cierreRepoStub) FindUltimo(_ context.Context) (*model.CierreCaja, error) {
	var ultimo *model.CierreCaja
	for _, c := range r.cierres {
		if ultimo == nil || c.FechaHasta.After(ultimo.FechaHasta) {
			ultimo = c
		}
	}
	if ultimo == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return ultimo, nil
}

func (r *cierreRepoStub) List(_ context.Context, _, _ int) ([]model.CierreCaja, int64, error) {
	all := make([]model.CierreCaja, 0, len(r.cierres))
	for _, c := range r.cierres {
		all = append(all, *c)
	}
	return all, int64(len(all)), nil
}

func (r *cierreRepoStub) Delete(_ context.Context, id uuid.UUID) error { return r.DeleteTx(nil, id) }

func (r *cierreRepoStub) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	for i, c := range r.cierres {
		if c.ID == id {
			r.cierres = append(r.cierres[:i], r.cierres[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *cierreRepoStub) UpdatePDFPath(_ context.Context, id uuid.UUID, path string) error {
	for _, c := range r.cierres {
		if c.ID == id {
			c.PDFPath = &path
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *cierreRepoStub) DB() *gorm.DB { return nil }

var _ repository.CierreRepository = (*cierreRepoStub)(nil)

// ── Clientes ──────────────────────────────────────────────────────────────────

type clienteRepoStub struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newClienteRepoStub() *clienteRepoStub {
	return &clienteRepoStub{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *clienteRepoStub) agregar(c *model.Cliente) *model.Cliente {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return c
}

func (r *clienteRepoStub) Create(_ context.Context, c *model.Cliente) error {
	for _, otro := range r.clientes {
		if otro.Identificacion == c.Identificacion {
			return fmt.Errorf(`duplicate key value violates unique constraint "idx_clientes_identificacion"`)
		}
	}
	r.agregar(c)
	return nil
}

func (r *clienteRepoStub) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *clienteRepoStub) List(_ context.Context, _ string, _, _ int) ([]model.Cliente, int64, error) {
	all := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		all = append(all, *c)
	}
	return all, int64(len(all)), nil
}

func (r *clienteRepoStub) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *clienteRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clientes, id)
	return nil
}

func (r *clienteRepoStub) CountActivos(_ context.Context) (int64, error) {
	var n int64
	for _, c := range r.clientes {
		if c.Activo {
			n++
		}
	}
	return n, nil
}

func (r *clienteRepoStub) SumarPuntosTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.PuntosFidelizacion += delta
	return nil
}

func (r *clienteRepoStub) ResetPuntosTx(_ *gorm.DB, id uuid.UUID) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.PuntosFidelizacion = 0
	return nil
}

var _ repository.ClienteRepository = (*clienteRepoStub)(nil)

// ── Fidelización ──────────────────────────────────────────────────────────────

type fideRepoStub struct {
	reglas  []*model.ReglaFidelizacion
	premios map[uuid.UUID]*model.PremioFidelizacion
	canjes  []*model.CanjeFidelizacion
}

func newFideRepoStub() *fideRepoStub {
	return &fideRepoStub{premios: make(map[uuid.UUID]*model.PremioFidelizacion)}
}

func (r *fideRepoStub) CreateRegla(_ context.Context, m *model.ReglaFidelizacion) error {
	return r.CreateReglaTx(nil, m)
}

func (r *fideRepoStub) CreateReglaTx(_ *gorm.DB, m *model.ReglaFidelizacion) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.reglas = append(r.reglas, m)
	return nil
}

func (r *fideRepoStub) ListReglas(_ context.Context) ([]model.ReglaFidelizacion, error) {
	all := make([]model.ReglaFidelizacion, 0, len(r.reglas))
	for _, m := range r.reglas {
		all = append(all, *m)
	}
	return all, nil
}

func (r *fideRepoStub) FindReglaByID(_ context.Context, id uuid.UUID) (*model.ReglaFidelizacion, error) {
	for _, m := range r.reglas {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fideRepoStub) FindReglaActiva(_ context.Context) (*model.ReglaFidelizacion, error) {
	for _, m := range r.reglas {
		if m.Activa {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fideRepoStub) UpdateRegla(_ context.Context, m *model.ReglaFidelizacion) error {
	return r.UpdateReglaTx(nil, m)
}

func (r *fideRepoStub) UpdateReglaTx(_ *gorm.DB, m *model.ReglaFidelizacion) error {
	for i, otra := range r.reglas {
		if otra.ID == m.ID {
			r.reglas[i] = m
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fideRepoStub) DesactivarReglasTx(_ *gorm.DB) error {
	for _, m := range r.reglas {
		m.Activa = false
	}
	return nil
}

func (r *fideRepoStub) CreatePremio(_ context.Context, p *model.PremioFidelizacion) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.premios[p.ID] = p
	return nil
}

func (r *fideRepoStub) ListPremios(_ context.Context) ([]model.PremioFidelizacion, error) {
	all := make([]model.PremioFidelizacion, 0, len(r.premios))
	for _, p := range r.premios {
		all = append(all, *p)
	}
	return all, nil
}

func (r *fideRepoStub) FindPremioByID(_ context.Context, id uuid.UUID) (*model.PremioFidelizacion, error) {
	p, ok := r.premios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fideRepoStub) UpdatePremio(_ context.Context, p *model.PremioFidelizacion) error {
	r.premios[p.ID] = p
	return nil
}

func (r *fideRepoStub) CreateCanjeTx(_ *gorm.DB, c *model.CanjeFidelizacion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.canjes = append(r.canjes, c)
	return nil
}

func (r *fideRepoStub) ListCanjes(_ context.Context, clienteID *uuid.UUID) ([]model.CanjeFidelizacion, error) {
	var canjes []model.CanjeFidelizacion
	for _, c := range r.canjes {
		if clienteID == nil || c.ClienteID == *clienteID {
			canjes = append(canjes, *c)
		}
	}
	return canjes, nil
}

func (r *fideRepoStub) DB() *gorm.DB { return nil }

var _ repository.FidelizacionRepository = (*fideRepoStub)(nil)

// ── Auditoría ─────────────────────────────────────────────────────────────────

// auditoriaStub captura las acciones registradas para poder afirmarlas.
type auditoriaStub struct {
	acciones []string
}

func (s *auditoriaStub) Registrar(_ context.Context, _ *uuid.UUID, _, _, accion, _, _ string) {
	s.acciones = append(s.acciones, accion)
}

func (s *auditoriaStub) Listar(_ context.Context, filter dto.AuditoriaFilter) (*dto.AuditoriaListResponse, error) {
	return &dto.AuditoriaListResponse{Page: filter.Page}, nil
}

var _ AuditoriaService = (*auditoriaStub)(nil)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
