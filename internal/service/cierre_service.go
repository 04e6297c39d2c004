package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/repository"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CierreService interface {
	// Previa computa el período abierto hasta la fecha dada sin persistir
	// nada; es lo que la pantalla muestra antes de confirmar.
	Previa(ctx context.Context, hasta string) (*dto.PreviaCierreResponse, error)
	// Confirmar persiste el cierre. Un descuadre marca el registro, nunca
	// bloquea la confirmación.
	Confirmar(ctx context.Context, req dto.ConfirmarCierreRequest) (*dto.CierreResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CierreResponse, error)
	Listar(ctx context.Context, page, limit int) ([]dto.CierreResponse, int64, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type cierreService struct {
	repo       repository.CierreRepository
	movRepo    repository.MovimientoRepository
	cuentaRepo repository.CuentaRepository
	auditoria  AuditoriaService
	dispatcher *worker.Dispatcher
	cache      *redis.Client
}

func NewCierreService(
	repo repository.CierreRepository,
	movRepo repository.MovimientoRepository,
	cuentaRepo repository.CuentaRepository,
	auditoria AuditoriaService,
	dispatcher *worker.Dispatcher,
	cache *redis.Client,
) CierreService {
	return &cierreService{
		repo:       repo,
		movRepo:    movRepo,
		cuentaRepo: cuentaRepo,
		auditoria:  auditoria,
		dispatcher: dispatcher,
		cache:      cache,
	}
}

// periodo calcula el rango del cierre: desde el fin del último cierre (o
// época para el primero) hasta la fecha elegida.
func (s *cierreService) periodo(ctx context.Context, hasta string) (time.Time, time.Time, error) {
	fin, err := parseFechaHora(hasta)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("fecha_hasta inválida")
	}
	ultimo, err := s.repo.FindUltimo(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, time.Time{}, err
		}
		return time.Unix(0, 0).UTC(), fin, nil
	}
	if !fin.After(ultimo.FechaHasta) {
		return time.Time{}, time.Time{}, errors.New("la fecha debe ser posterior al último cierre")
	}
	return ultimo.FechaHasta, fin, nil
}

type totalesCierre struct {
	efectivoEsperado decimal.Decimal
	totalIngresos    decimal.Decimal
	totalEgresos     decimal.Decimal
}

// totalizar separa ingresos y egresos; el efectivo esperado en caja solo
// considera movimientos EFECTIVO.
func totalizar(movs []model.MovimientoFinanciero) totalesCierre {
	t := totalesCierre{
		efectivoEsperado: decimal.Zero,
		totalIngresos:    decimal.Zero,
		totalEgresos:     decimal.Zero,
	}
	for _, m := range movs {
		signo := decimal.NewFromInt(1)
		if m.Tipo == model.MovimientoEgreso {
			signo = decimal.NewFromInt(-1)
			t.totalEgresos = t.totalEgresos.Add(m.Monto)
		} else {
			t.totalIngresos = t.totalIngresos.Add(m.Monto)
		}
		if m.Metodo == model.MetodoEfectivo {
			t.efectivoEsperado = t.efectivoEsperado.Add(m.Monto.Mul(signo))
		}
	}
	return t
}

func (s *cierreService) Previa(ctx context.Context, hasta string) (*dto.PreviaCierreResponse, error) {
	desde, fin, err := s.periodo(ctx, hasta)
	if err != nil {
		return nil, err
	}
	movs, err := s.movRepo.ListSinCierre(ctx, desde, fin)
	if err != nil {
		return nil, err
	}
	t := totalizar(movs)

	cuentas, err := s.cuentaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	cuentasResp := make([]dto.CuentaResponse, 0, len(cuentas))
	for i := range cuentas {
		cuentasResp = append(cuentasResp, cuentaToResponse(&cuentas[i]))
	}
	movsResp := make([]dto.MovimientoResponse, 0, len(movs))
	for i := range movs {
		movsResp = append(movsResp, movimientoToResponse(&movs[i]))
	}

	return &dto.PreviaCierreResponse{
		FechaDesde:          fmtFecha(desde),
		FechaHasta:          fmtFecha(fin),
		EfectivoEsperado:    t.efectivoEsperado,
		TotalIngresos:       t.totalIngresos,
		TotalEgresos:        t.totalEgresos,
		CantidadMovimientos: len(movs),
		Movimientos:         movsResp,
		Cuentas:             cuentasResp,
	}, nil
}

func (s *cierreService) Confirmar(ctx context.Context, req dto.ConfirmarCierreRequest) (*dto.CierreResponse, error) {
	desde, fin, err := s.periodo(ctx, req.FechaHasta)
	if err != nil {
		return nil, err
	}
	movs, err := s.movRepo.ListSinCierre(ctx, desde, fin)
	if err != nil {
		return nil, err
	}
	t := totalizar(movs)

	diferencia := req.EfectivoDeclarado.Sub(t.efectivoEsperado)
	descuadre := diferencia.Abs().GreaterThan(model.UmbralDescuadre)

	reporte, err := json.Marshal(movs)
	if err != nil {
		return nil, err
	}

	actor := ActorDe(ctx)
	cierre := &model.CierreCaja{
		FechaDesde:          desde,
		FechaHasta:          fin,
		EfectivoEsperado:    t.efectivoEsperado,
		EfectivoDeclarado:   req.EfectivoDeclarado,
		Diferencia:          diferencia,
		Descuadre:           descuadre,
		TotalIngresos:       t.totalIngresos,
		TotalEgresos:        t.totalEgresos,
		CantidadMovimientos: len(movs),
		ReporteDetallado:    string(reporte),
		RealizadoPor:        actor.Username,
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, cierre); err != nil {
			return err
		}
		return s.movRepo.StampCierreTx(tx, desde, fin, cierre.ID)
	})
	if err != nil {
		return nil, err
	}

	invalidarResumen(ctx, s.cache)
	severidad := model.SeveridadInfo
	detalle := fmt.Sprintf("Cierre de caja confirmado: esperado %s, declarado %s",
		t.efectivoEsperado.StringFixed(2), req.EfectivoDeclarado.StringFixed(2))
	if descuadre {
		severidad = model.SeveridadAdvertencia
		detalle = fmt.Sprintf("%s, DESCUADRE de %s", detalle, diferencia.StringFixed(2))
	}
	s.auditoria.Registrar(ctx, actor.ID, actor.Username, "cierres", "confirmar", severidad, detalle)

	if s.dispatcher != nil {
		job := worker.DocumentoJob{Tipo: worker.DocReporteCierre, CierreID: cierre.ID.String()}
		if err := s.dispatcher.EncolarDocumento(ctx, job); err != nil {
			log.Error().Err(err).Str("cierre_id", cierre.ID.String()).Msg("cierres: no se pudo encolar el reporte")
		}
	}

	resp := cierreToResponse(cierre)
	return &resp, nil
}

func (s *cierreService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CierreResponse, error) {
	cierre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cierre no encontrado")
	}
	resp := cierreToResponse(cierre)
	return &resp, nil
}

func (s *cierreService) Listar(ctx context.Context, page, limit int) ([]dto.CierreResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	cierres, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.CierreResponse, 0, len(cierres))
	for i := range cierres {
		resp = append(resp, cierreToResponse(&cierres[i]))
	}
	return resp, total, nil
}

// Eliminar libera los movimientos del cierre de vuelta al período abierto.
func (s *cierreService) Eliminar(ctx context.Context, id uuid.UUID) error {
	cierre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("cierre no encontrado")
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.movRepo.DesestamparCierreTx(tx, id); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, id)
	})
	if err != nil {
		return err
	}
	invalidarResumen(ctx, s.cache)
	actor := ActorDe(ctx)
	s.auditoria.Registrar(ctx, actor.ID, actor.Username, "cierres", "eliminar",
		model.SeveridadCritico, fmt.Sprintf("Cierre del %s eliminado; %d movimiento(s) liberados",
			cierre.FechaHasta.Format("2006-01-02"), cierre.CantidadMovimientos))
	return nil
}

// parseFechaHora acepta timestamp completo o fecha simple (fin de ese día).
func parseFechaHora(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(24*time.Hour - time.Second).UTC(), nil
}

func cierreToResponse(c *model.CierreCaja) dto.CierreResponse {
	return dto.CierreResponse{
		ID:                  c.ID.String(),
		FechaDesde:          fmtFecha(c.FechaDesde),
		FechaHasta:          fmtFecha(c.FechaHasta),
		EfectivoEsperado:    c.EfectivoEsperado,
		EfectivoDeclarado:   c.EfectivoDeclarado,
		Diferencia:          c.Diferencia,
		Descuadre:           c.Descuadre,
		TotalIngresos:       c.TotalIngresos,
		TotalEgresos:        c.TotalEgresos,
		CantidadMovimientos: c.CantidadMovimientos,
		RealizadoPor:        c.RealizadoPor,
		PDFPath:             c.PDFPath,
		CreatedAt:           fmtFecha(c.CreatedAt),
	}
}
