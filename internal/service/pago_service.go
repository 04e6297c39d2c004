package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/infra"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReferenciaDuplicadaError se devuelve al intentar registrar una referencia
// bancaria ya usada; el mensaje identifica quién la registró y cuándo.
type ReferenciaDuplicadaError struct {
	Referencia    string
	RegistradoPor string
	Fecha         time.Time
}

func (e *ReferenciaDuplicadaError) Error() string {
	return fmt.Sprintf("La referencia %s ya fue registrada por %s el %s",
		e.Referencia, e.RegistradoPor, e.Fecha.Format("2006-01-02"))
}

type PagoService interface {
	RegistrarPago(ctx context.Context, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error)
	RegistrarMovimientoManual(ctx context.Context, req dto.MovimientoManualRequest) (*dto.MovimientoResponse, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
	// ExportarLibroExcel genera el libro de movimientos filtrado como .xlsx.
	ExportarLibroExcel(ctx context.Context, filter dto.MovimientoFilter) ([]byte, string, error)
	ListarCreditos(ctx context.Context, clienteID uuid.UUID) ([]dto.CreditoResponse, error)

	CrearCuenta(ctx context.Context, req dto.CrearCuentaRequest) (*dto.CuentaResponse, error)
	ListarCuentas(ctx context.Context) ([]dto.CuentaResponse, error)
}

type pagoService struct {
	repo       repository.MovimientoRepository
	pedidoRepo repository.PedidoRepository
	cuentaRepo repository.CuentaRepository
	auditoria  AuditoriaService
	cache      *redis.Client
}

func NewPagoService(
	repo repository.MovimientoRepository,
	pedidoRepo repository.PedidoRepository,
	cuentaRepo repository.CuentaRepository,
	auditoria AuditoriaService,
	cache *redis.Client,
) PagoService {
	return &pagoService{
		repo:       repo,
		pedidoRepo: pedidoRepo,
		cuentaRepo: cuentaRepo,
		auditoria:  auditoria,
		cache:      cache,
	}
}

// validarReferencia exige referencia para métodos bancarios y rechaza las ya
// registradas ANTES de crear nada.
func (s *pagoService) validarReferencia(ctx context.Context, metodo string, referencia *string) (*string, error) {
	if !model.RequiereReferencia(metodo) {
		return nil, nil
	}
	if referencia == nil || strings.TrimSpace(*referencia) == "" {
		return nil, fmt.Errorf("el método %s requiere un número de referencia", metodo)
	}
	ref := strings.TrimSpace(*referencia)
	existente, err := s.repo.FindByReferencia(ctx, ref)
	if err == nil {
		return nil, &ReferenciaDuplicadaError{
			Referencia:    ref,
			RegistradoPor: existente.RegistradoPor,
			Fecha:         existente.CreatedAt,
		}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &ref, nil
}

func (s *pagoService) resolverCuenta(ctx context.Context, metodo string, cuentaID *string) (*uuid.UUID, error) {
	if cuentaID == nil {
		return nil, nil
	}
	if !model.RequiereReferencia(metodo) {
		return nil, errors.New("solo los métodos bancarios admiten cuenta bancaria")
	}
	id, err := uuid.Parse(*cuentaID)
	if err != nil {
		return nil, errors.New("cuenta_bancaria_id inválido")
	}
	cuenta, err := s.cuentaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cuenta bancaria no encontrada")
	}
	if !cuenta.Activa {
		return nil, errors.New("la cuenta bancaria está inactiva")
	}
	return &id, nil
}

func (s *pagoService) RegistrarPago(ctx context.Context, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error) {
	pedidoID, err := uuid.Parse(req.PedidoID)
	if err != nil {
		return nil, errors.New("pedido_id inválido")
	}
	pedido, err := s.pedidoRepo.FindByID(ctx, pedidoID)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	if pedido.Estado == model.EstadoCancelado {
		return nil, errors.New("no pueden registrarse pagos sobre un pedido cancelado")
	}

	referencia, err := s.validarReferencia(ctx, req.Metodo, req.Referencia)
	if err != nil {
		return nil, err
	}
	cuentaID, err := s.resolverCuenta(ctx, req.Metodo, req.CuentaBancariaID)
	if err != nil {
		return nil, err
	}

	actor := ActorDe(ctx)
	saldoAnterior := pedido.SaldoMostrado()
	// El abono se aplica completo; si excede el saldo mostrado en más del
	// umbral, el exceso se convierte en crédito del cliente.
	exceso := req.Monto.Sub(saldoAnterior)

	movimiento := &model.MovimientoFinanciero{
		Tipo:             model.MovimientoIngreso,
		Metodo:           req.Metodo,
		Monto:            req.Monto,
		Referencia:       referencia,
		Descripcion:      fmt.Sprintf("Abono al pedido #%d", pedido.Numero),
		ClienteID:        &pedido.ClienteID,
		PedidoID:         &pedidoID,
		CuentaBancariaID: cuentaID,
		RegistradoPor:    actor.Username,
	}
	var credito *model.CreditoCliente

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, movimiento); err != nil {
			return traducirErrorReferencia(err)
		}
		abono := &model.Abono{
			PedidoID:     pedidoID,
			MovimientoID: &movimiento.ID,
			Metodo:       req.Metodo,
			Monto:        req.Monto,
		}
		if err := s.pedidoRepo.CreateAbonoTx(tx, abono); err != nil {
			return err
		}
		if cuentaID != nil {
			if err := s.cuentaRepo.AjustarSaldoTx(tx, *cuentaID, req.Monto); err != nil {
				return err
			}
		}
		if exceso.GreaterThan(model.UmbralCredito) {
			credito = &model.CreditoCliente{
				ClienteID:    pedido.ClienteID,
				MovimientoID: movimiento.ID,
				Monto:        exceso,
				Saldo:        exceso,
				Estado:       model.CreditoDisponible,
			}
			return s.repo.CreateCreditoTx(tx, credito)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidarResumen(ctx, s.cache)
	detalle := fmt.Sprintf("Pago de %s (%s) al pedido #%d", req.Monto.StringFixed(2), req.Metodo, pedido.Numero)
	if credito != nil {
		detalle = fmt.Sprintf("%s; crédito generado por %s", detalle, credito.Monto.StringFixed(2))
	}
	s.auditoria.Registrar(ctx, actor.ID, actor.Username, "finanzas", "registrar_pago", model.SeveridadInfo, detalle)

	saldoNuevo := saldoAnterior.Sub(req.Monto)
	if saldoNuevo.IsNegative() {
		saldoNuevo = decimal.Zero
	}
	resp := &dto.PagoResponse{
		Movimiento:    movimientoToResponse(movimiento),
		SaldoAnterior: saldoAnterior,
		SaldoNuevo:    saldoNuevo,
	}
	if credito != nil {
		c := creditoToResponse(credito)
		resp.CreditoGenerado = &c
	}
	return resp, nil
}

func (s *pagoService) RegistrarMovimientoManual(ctx context.Context, req dto.MovimientoManualRequest) (*dto.MovimientoResponse, error) {
	referencia, err := s.validarReferencia(ctx, req.Metodo, req.Referencia)
	if err != nil {
		return nil, err
	}
	cuentaID, err := s.resolverCuenta(ctx, req.Metodo, req.CuentaBancariaID)
	if err != nil {
		return nil, err
	}

	actor := ActorDe(ctx)
	movimiento := &model.MovimientoFinanciero{
		Tipo:             req.Tipo,
		Metodo:           req.Metodo,
		Monto:            req.Monto,
		Referencia:       referencia,
		Descripcion:      req.Descripcion,
		CuentaBancariaID: cuentaID,
		RegistradoPor:    actor.Username,
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, movimiento); err != nil {
			return traducirErrorReferencia(err)
		}
		if cuentaID != nil {
			delta := req.Monto
			if req.Tipo == model.MovimientoEgreso {
				delta = delta.Neg()
			}
			return s.cuentaRepo.AjustarSaldoTx(tx, *cuentaID, delta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidarResumen(ctx, s.cache)
	s.auditoria.Registrar(ctx, actor.ID, actor.Username, "finanzas", "movimiento_manual",
		model.SeveridadInfo, fmt.Sprintf("%s manual de %s: %s", req.Tipo, req.Monto.StringFixed(2), req.Descripcion))

	resp := movimientoToResponse(movimiento)
	return &resp, nil
}

func (s *pagoService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	movimientos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoResponse, 0, len(movimientos))
	for i := range movimientos {
		data = append(data, movimientoToResponse(&movimientos[i]))
	}
	return &dto.MovimientoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *pagoService) ExportarLibroExcel(ctx context.Context, filter dto.MovimientoFilter) ([]byte, string, error) {
	// Exporta el período completo del filtro, no una página.
	filter.Page = 1
	filter.Limit = 10000
	movimientos, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	data, err := infra.ExportarLibroExcel(movimientos)
	if err != nil {
		return nil, "", err
	}
	nombre := fmt.Sprintf("libro-movimientos-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	actor := ActorDe(ctx)
	s.auditoria.Registrar(ctx, actor.ID, actor.Username, "finanzas", "exportar_libro",
		model.SeveridadInfo, fmt.Sprintf("Libro exportado: %d movimiento(s)", len(movimientos)))
	return data, nombre, nil
}

func (s *pagoService) ListarCreditos(ctx context.Context, clienteID uuid.UUID) ([]dto.CreditoResponse, error) {
	creditos, err := s.repo.ListCreditosByCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CreditoResponse, 0, len(creditos))
	for i := range creditos {
		resp = append(resp, creditoToResponse(&creditos[i]))
	}
	return resp, nil
}

// ── Cuentas bancarias ─────────────────────────────────────────────────────────

func (s *pagoService) CrearCuenta(ctx context.Context, req dto.CrearCuentaRequest) (*dto.CuentaResponse, error) {
	cuenta := &model.CuentaBancaria{
		Banco:        req.Banco,
		NumeroCuenta: req.NumeroCuenta,
		Titular:      req.Titular,
		Saldo:        req.SaldoInicial,
		Activa:       true,
	}
	if err := s.cuentaRepo.Create(ctx, cuenta); err != nil {
		if strings.Contains(err.Error(), "numero_cuenta") {
			return nil, errors.New("Ya existe una cuenta con ese número")
		}
		return nil, err
	}
	resp := cuentaToResponse(cuenta)
	return &resp, nil
}

func (s *pagoService) ListarCuentas(ctx context.Context) ([]dto.CuentaResponse, error) {
	cuentas, err := s.cuentaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CuentaResponse, 0, len(cuentas))
	for i := range cuentas {
		resp = append(resp, cuentaToResponse(&cuentas[i]))
	}
	return resp, nil
}

// traducirErrorReferencia cubre la carrera entre la validación previa y el
// índice único parcial de referencias.
func traducirErrorReferencia(err error) error {
	if strings.Contains(err.Error(), "referencia") {
		return errors.New("La referencia ya fue registrada")
	}
	return err
}

func movimientoToResponse(m *model.MovimientoFinanciero) dto.MovimientoResponse {
	resp := dto.MovimientoResponse{
		ID:            m.ID.String(),
		Tipo:          m.Tipo,
		Metodo:        m.Metodo,
		Monto:         m.Monto,
		Referencia:    m.Referencia,
		Descripcion:   m.Descripcion,
		RegistradoPor: m.RegistradoPor,
		CreatedAt:     fmtFecha(m.CreatedAt),
	}
	if m.ClienteID != nil {
		id := m.ClienteID.String()
		resp.ClienteID = &id
	}
	if m.PedidoID != nil {
		id := m.PedidoID.String()
		resp.PedidoID = &id
	}
	return resp
}

func creditoToResponse(c *model.CreditoCliente) dto.CreditoResponse {
	return dto.CreditoResponse{
		ID:        c.ID.String(),
		ClienteID: c.ClienteID.String(),
		Monto:     c.Monto,
		Saldo:     c.Saldo,
		Estado:    c.Estado,
		CreatedAt: fmtFecha(c.CreatedAt),
	}
}

func cuentaToResponse(c *model.CuentaBancaria) dto.CuentaResponse {
	return dto.CuentaResponse{
		ID:           c.ID.String(),
		Banco:        c.Banco,
		NumeroCuenta: c.NumeroCuenta,
		Titular:      c.Titular,
		Saldo:        c.Saldo,
		Activa:       c.Activa,
	}
}
