package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/repository"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PedidoService interface {
	Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID) error
	Recibir(ctx context.Context, id uuid.UUID, req dto.RecibirPedidoRequest) (*dto.PedidoResponse, error)
	Entregar(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	RevertirRecepcion(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	// MarcarAtrasados flags POR_RECIBIR orders past their promised date;
	// returns how many were flagged. Invoked by the daily cron.
	MarcarAtrasados(ctx context.Context, ref time.Time) (int, error)
}

type pedidoService struct {
	repo         repository.PedidoRepository
	clienteRepo  repository.ClienteRepository
	fidelizacion FidelizacionService
	auditoria    AuditoriaService
	dispatcher   *worker.Dispatcher
}

func NewPedidoService(
	repo repository.PedidoRepository,
	clienteRepo repository.ClienteRepository,
	fidelizacion FidelizacionService,
	auditoria AuditoriaService,
	dispatcher *worker.Dispatcher,
) PedidoService {
	return &pedidoService{
		repo:         repo,
		clienteRepo:  clienteRepo,
		fidelizacion: fidelizacion,
		auditoria:    auditoria,
		dispatcher:   dispatcher,
	}
}

func (s *pedidoService) Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, errors.New("cliente_id inválido")
	}
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return nil, errors.New("cliente no encontrado")
	}

	var fechaPrometida *time.Time
	if req.FechaPrometida != nil {
		t, err := time.Parse("2006-01-02", *req.FechaPrometida)
		if err != nil {
			return nil, errors.New("fecha_prometida inválida")
		}
		fechaPrometida = &t
	}

	pedido := &model.Pedido{
		ClienteID:      clienteID,
		Descripcion:    req.Descripcion,
		Total:          req.Total,
		Estado:         model.EstadoPorRecibir,
		FechaPrometida: fechaPrometida,
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.repo.NextNumero(ctx, tx)
		if err != nil {
			return err
		}
		pedido.Numero = numero
		return s.repo.CreateTx(tx, pedido)
	})
	if err != nil {
		return nil, err
	}

	actor := ActorDe(ctx)
	s.auditoria.Registrar(ctx, actor.ID, actor.Username, "pedidos", "crear",
		model.SeveridadInfo, fmt.Sprintf("Pedido #%d creado por %s", pedido.Numero, pedido.Total.StringFixed(2)))

	return s.responder(ctx, pedido.ID)
}

func (s *pedidoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	return s.responder(ctx, id)
}

func (s *pedidoService) Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	pedidos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		data = append(data, pedidoToResponse(&pedidos[i]))
	}
	return &dto.PedidoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Actualizar edita la estimación; solo tiene sentido antes de la recepción,
// después el total real de factura gobierna los saldos.
func (s *pedidoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	if pedido.Estado != model.EstadoPorRecibir && pedido.Estado != model.EstadoAtrasado {
		return nil, errors.New("solo puede editarse un pedido pendiente de recibir")
	}
	if req.Descripcion != nil {
		pedido.Descripcion = req.Descripcion
	}
	if req.Total != nil {
		pedido.Total = *req.Total
	}
	if req.FechaPrometida != nil {
		t, err := time.Parse("2006-01-02", *req.FechaPrometida)
		if err != nil {
			return nil, errors.New("fecha_prometida inválida")
		}
		pedido.FechaPrometida = &t
	}
	if err := s.repo.Update(ctx, pedido); err != nil {
		return nil, err
	}
	return s.responder(ctx, id)
}

// Cancelar rechaza pedidos con abonos: primero hay que resolver el dinero.
func (s *pedidoService) Cancelar(ctx context.Context, id uuid.UUID) error {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("pedido no encontrado")
	}
	if pedido.Estado != model.EstadoPorRecibir && pedido.Estado != model.EstadoAtrasado {
		return errors.New("solo puede cancelarse un pedido pendiente de recibir")
	}
	if pedido.TotalAbonado().IsPositive() {
		return errors.New("el pedido tiene abonos registrados; gestione la devolución antes de cancelar")
	}
	pedido.Estado = model.EstadoCancelado
	if err := s.repo.Update(ctx, pedido); err != nil {
		return err
	}
	actor := ActorDe(ctx)
	s.auditoria.Registrar(ctx, actor.ID, actor.Username, "pedidos", "cancelar",
		model.SeveridadAdvertencia, fmt.Sprintf("Pedido #%d cancelado", pedido.Numero))
	return nil
}

func (s *pedidoService) Recibir(ctx context.Context, id uuid.UUID, req dto.RecibirPedidoRequest) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	if err := pedido.Recibir(req.TotalFacturaReal, time.Now().UTC()); err != nil {
		return nil, err
	}
	if req.NumeroFactura != nil {
		pedido.NumeroFactura = req.NumeroFactura
	}
	if err := s.repo.Update(ctx, pedido); err != nil {
		return nil, err
	}

	actor := ActorDe(ctx)
	s.auditoria.Registrar(ctx, actor.ID, actor.Username, "pedidos", "recibir",
		model.SeveridadInfo, fmt.Sprintf("Pedido #%d recibido en bodega, total factura %s",
			pedido.Numero, req.TotalFacturaReal.StringFixed(2)))

	return s.responder(ctx, id)
}

func (s *pedidoService) Entregar(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	var pedido *model.Pedido
	var puntos int
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		pedido, err = s.repo.FindByIDTx(tx, id)
		if err != nil {
			return errors.New("pedido no encontrado")
		}
		if err := pedido.Entregar(time.Now().UTC()); err != nil {
			return err
		}
		if err := s.repo.UpdateTx(tx, pedido); err != nil {
			return err
		}
		puntos, err = s.fidelizacion.AcreditarPorEntregaTx(ctx, tx, pedido.ClienteID, pedido.TotalEfectivo())
		return err
	})
	if err != nil {
		return nil, err
	}

	actor := ActorDe(ctx)
	detalle := fmt.Sprintf("Pedido #%d entregado", pedido.Numero)
	if puntos > 0 {
		detalle = fmt.Sprintf("%s, %d punto(s) acreditados", detalle, puntos)
	}
	s.auditoria.Registrar(ctx, actor.ID, actor.Username, "pedidos", "entregar", model.SeveridadInfo, detalle)

	if s.dispatcher != nil {
		job := worker.DocumentoJob{Tipo: worker.DocReciboEntrega, PedidoID: id.String()}
		if err := s.dispatcher.EncolarDocumento(ctx, job); err != nil {
			log.Error().Err(err).Str("pedido_id", id.String()).Msg("pedidos: no se pudo encolar el recibo de entrega")
		}
	}
	return s.responder(ctx, id)
}

func (s *pedidoService) RevertirRecepcion(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	if err := pedido.RevertirRecepcion(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, pedido); err != nil {
		return nil, err
	}
	actor := ActorDe(ctx)
	s.auditoria.Registrar(ctx, actor.ID, actor.Username, "pedidos", "revertir_recepcion",
		model.SeveridadAdvertencia, fmt.Sprintf("Recepción del pedido #%d revertida", pedido.Numero))
	return s.responder(ctx, id)
}

func (s *pedidoService) MarcarAtrasados(ctx context.Context, ref time.Time) (int, error) {
	vencidos, err := s.repo.ListVencidos(ctx, ref)
	if err != nil {
		return 0, err
	}
	marcados := 0
	for i := range vencidos {
		vencidos[i].Estado = model.EstadoAtrasado
		if err := s.repo.Update(ctx, &vencidos[i]); err != nil {
			log.Error().Err(err).Int64("numero", vencidos[i].Numero).Msg("pedidos: no se pudo marcar atrasado")
			continue
		}
		marcados++
	}
	if marcados > 0 {
		s.auditoria.Registrar(ctx, nil, "sistema", "pedidos", "marcar_atrasados",
			model.SeveridadAdvertencia, fmt.Sprintf("%d pedido(s) marcados como atrasados", marcados))
	}
	return marcados, nil
}

// responder vuelve a cargar el pedido con sus relaciones para la respuesta.
func (s *pedidoService) responder(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	resp := pedidoToResponse(pedido)
	return &resp, nil
}

func pedidoToResponse(p *model.Pedido) dto.PedidoResponse {
	abonos := make([]dto.AbonoResponse, 0, len(p.Abonos))
	for _, a := range p.Abonos {
		abonos = append(abonos, dto.AbonoResponse{
			ID:        a.ID.String(),
			Metodo:    a.Metodo,
			Monto:     a.Monto,
			CreatedAt: fmtFecha(a.CreatedAt),
		})
	}
	clienteNombre := ""
	if p.Cliente != nil {
		clienteNombre = p.Cliente.Nombre + " " + p.Cliente.Apellido
	}
	var fechaPrometida *string
	if p.FechaPrometida != nil {
		f := p.FechaPrometida.Format("2006-01-02")
		fechaPrometida = &f
	}
	return dto.PedidoResponse{
		ID:               p.ID.String(),
		Numero:           p.Numero,
		ClienteID:        p.ClienteID.String(),
		ClienteNombre:    clienteNombre,
		Descripcion:      p.Descripcion,
		Total:            p.Total,
		TotalFacturaReal: p.TotalFacturaReal,
		TotalEfectivo:    p.TotalEfectivo(),
		TotalAbonado:     p.TotalAbonado(),
		SaldoPendiente:   p.SaldoMostrado(),
		NumeroFactura:    p.NumeroFactura,
		Estado:           p.Estado,
		FechaPrometida:   fechaPrometida,
		FechaRecepcion:   fmtFechaPtr(p.FechaRecepcion),
		FechaEntrega:     fmtFechaPtr(p.FechaEntrega),
		Abonos:           abonos,
		CreatedAt:        fmtFecha(p.CreatedAt),
	}
}
