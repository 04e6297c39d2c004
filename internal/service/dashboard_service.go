package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// resumenTTL mantiene el tablero fresco sin golpear la base en cada carga;
// las mutaciones financieras lo invalidan antes de vencer.
const resumenTTL = 60 * time.Second

type DashboardService interface {
	Resumen(ctx context.Context) (*dto.ResumenResponse, error)
}

type dashboardService struct {
	pedidoRepo  repository.PedidoRepository
	movRepo     repository.MovimientoRepository
	clienteRepo repository.ClienteRepository
	cache       *redis.Client
}

func NewDashboardService(
	pedidoRepo repository.PedidoRepository,
	movRepo repository.MovimientoRepository,
	clienteRepo repository.ClienteRepository,
	cache *redis.Client,
) DashboardService {
	return &dashboardService{
		pedidoRepo:  pedidoRepo,
		movRepo:     movRepo,
		clienteRepo: clienteRepo,
		cache:       cache,
	}
}

func (s *dashboardService) Resumen(ctx context.Context) (*dto.ResumenResponse, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, resumenCacheKey).Result(); err == nil {
			var resumen dto.ResumenResponse
			if err := json.Unmarshal([]byte(raw), &resumen); err == nil {
				return &resumen, nil
			}
		}
	}

	resumen, err := s.calcular(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(resumen); err == nil {
			if err := s.cache.Set(ctx, resumenCacheKey, data, resumenTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("dashboard: no se pudo cachear el resumen")
			}
		}
	}
	return resumen, nil
}

func (s *dashboardService) calcular(ctx context.Context) (*dto.ResumenResponse, error) {
	now := time.Now().UTC()
	inicioMes := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	porRecibir, err := s.pedidoRepo.CountByEstado(ctx, model.EstadoPorRecibir)
	if err != nil {
		return nil, err
	}
	enBodega, err := s.pedidoRepo.CountByEstado(ctx, model.EstadoRecibidoEnBodega)
	if err != nil {
		return nil, err
	}
	atrasados, err := s.pedidoRepo.CountByEstado(ctx, model.EstadoAtrasado)
	if err != nil {
		return nil, err
	}
	entregadosMes, err := s.pedidoRepo.CountEntregadosDesde(ctx, inicioMes)
	if err != nil {
		return nil, err
	}
	saldoPorCobrar, err := s.pedidoRepo.SumSaldoPendiente(ctx)
	if err != nil {
		return nil, err
	}
	ingresosDia, err := s.movRepo.SumDelDia(ctx, model.MovimientoIngreso, now)
	if err != nil {
		return nil, err
	}
	egresosDia, err := s.movRepo.SumDelDia(ctx, model.MovimientoEgreso, now)
	if err != nil {
		return nil, err
	}
	clientesActivos, err := s.clienteRepo.CountActivos(ctx)
	if err != nil {
		return nil, err
	}
	creditosVigentes, err := s.movRepo.SumCreditosVigentes(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ResumenResponse{
		PedidosPorRecibir: porRecibir,
		PedidosEnBodega:   enBodega,
		PedidosAtrasados:  atrasados,
		EntregadosDelMes:  entregadosMes,
		SaldoPorCobrar:    saldoPorCobrar,
		IngresosDelDia:    ingresosDia,
		EgresosDelDia:     egresosDia,
		ClientesActivos:   clientesActivos,
		CreditosVigentes:  creditosVigentes,
	}, nil
}
