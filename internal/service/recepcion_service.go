package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/repository"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RecepcionService interface {
	// ProcesarLote recibe varios pedidos en una sola transacción. Las filas
	// inválidas se reportan en su resultado y no tumban el lote.
	ProcesarLote(ctx context.Context, req dto.RecepcionLoteRequest) (*dto.RecepcionLoteResponse, error)
}

type recepcionService struct {
	pedidoRepo repository.PedidoRepository
	movRepo    repository.MovimientoRepository
	auditoria  AuditoriaService
	dispatcher *worker.Dispatcher
	cache      *redis.Client
}

func NewRecepcionService(
	pedidoRepo repository.PedidoRepository,
	movRepo repository.MovimientoRepository,
	auditoria AuditoriaService,
	dispatcher *worker.Dispatcher,
	cache *redis.Client,
) RecepcionService {
	return &recepcionService{
		pedidoRepo: pedidoRepo,
		movRepo:    movRepo,
		auditoria:  auditoria,
		dispatcher: dispatcher,
		cache:      cache,
	}
}

func (s *recepcionService) ProcesarLote(ctx context.Context, req dto.RecepcionLoteRequest) (*dto.RecepcionLoteResponse, error) {
	actor := ActorDe(ctx)
	resultados := make([]dto.RecepcionItemResult, 0, len(req.Items))
	recibidos := 0
	var recibidosIDs []string
	conAbonos := false

	err := runTx(ctx, s.pedidoRepo.DB(), func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for _, item := range req.Items {
			res := dto.RecepcionItemResult{PedidoID: item.PedidoID}

			pedidoID, err := uuid.Parse(item.PedidoID)
			if err != nil {
				res.Error = errStr("pedido_id inválido")
				resultados = append(resultados, res)
				continue
			}
			pedido, err := s.pedidoRepo.FindByIDTx(tx, pedidoID)
			if err != nil {
				res.Error = errStr("pedido no encontrado")
				resultados = append(resultados, res)
				continue
			}
			res.Numero = pedido.Numero

			if err := pedido.Recibir(item.TotalFactura, now); err != nil {
				res.Estado = pedido.Estado
				res.Error = errStr(err.Error())
				resultados = append(resultados, res)
				continue
			}
			if item.NumeroFactura != nil {
				pedido.NumeroFactura = item.NumeroFactura
			}
			if err := s.pedidoRepo.UpdateTx(tx, pedido); err != nil {
				return err
			}
			recibidos++
			recibidosIDs = append(recibidosIDs, pedidoID.String())

			// Saldo contra el total real recién confirmado, abonos previos
			// incluidos.
			saldoReal := pedido.SaldoPendiente()
			res.SaldoReal = saldoReal
			res.SaldoTrasAbono = saldoReal
			res.Estado = pedido.Estado

			if saldoReal.IsNegative() {
				// Los abonos previos ya superan el total real: hay un crédito
				// latente y el abono de recepción se rechaza para esta fila.
				res.CreditoExistente = true
				if item.Abono.IsPositive() {
					res.Error = errStr("el pedido ya tiene saldo a favor; no se aceptó el abono")
				}
				resultados = append(resultados, res)
				continue
			}

			if item.Abono.IsPositive() {
				conAbonos = true
				movimiento := &model.MovimientoFinanciero{
					Tipo:          model.MovimientoIngreso,
					Metodo:        model.MetodoEfectivo,
					Monto:         item.Abono,
					Descripcion:   fmt.Sprintf("Abono en recepción del pedido #%d", pedido.Numero),
					ClienteID:     &pedido.ClienteID,
					PedidoID:      &pedidoID,
					RegistradoPor: actor.Username,
				}
				if err := s.movRepo.CreateTx(tx, movimiento); err != nil {
					return err
				}
				abono := &model.Abono{
					PedidoID:     pedidoID,
					MovimientoID: &movimiento.ID,
					Metodo:       model.MetodoEfectivo,
					Monto:        item.Abono,
				}
				if err := s.pedidoRepo.CreateAbonoTx(tx, abono); err != nil {
					return err
				}
				res.SaldoTrasAbono = saldoReal.Sub(item.Abono)

				exceso := item.Abono.Sub(saldoReal)
				if exceso.GreaterThan(model.UmbralCredito) {
					credito := &model.CreditoCliente{
						ClienteID:    pedido.ClienteID,
						MovimientoID: movimiento.ID,
						Monto:        exceso,
						Saldo:        exceso,
						Estado:       model.CreditoDisponible,
					}
					if err := s.movRepo.CreateCreditoTx(tx, credito); err != nil {
						return err
					}
					res.GeneraCredito = true
				}
			}
			resultados = append(resultados, res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if conAbonos {
		invalidarResumen(ctx, s.cache)
	}
	s.auditoria.Registrar(ctx, actor.ID, actor.Username, "recepcion", "procesar_lote",
		model.SeveridadInfo, fmt.Sprintf("Lote procesado: %d de %d pedido(s) recibidos", recibidos, len(req.Items)))

	etiquetas := false
	if recibidos > 0 && s.dispatcher != nil {
		job := worker.DocumentoJob{Tipo: worker.DocEtiquetas, PedidoIDs: recibidosIDs}
		if err := s.dispatcher.EncolarDocumento(ctx, job); err != nil {
			log.Error().Err(err).Msg("recepcion: no se pudo encolar las etiquetas")
		} else {
			etiquetas = true
		}
	}

	return &dto.RecepcionLoteResponse{
		Resultados:         resultados,
		Recibidos:          recibidos,
		EtiquetasEncoladas: etiquetas,
	}, nil
}

func errStr(s string) *string { return &s }
