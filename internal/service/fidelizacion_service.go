package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FidelizacionService interface {
	CrearRegla(ctx context.Context, req dto.ReglaRequest) (*dto.ReglaResponse, error)
	ListarReglas(ctx context.Context) ([]dto.ReglaResponse, error)
	ActualizarRegla(ctx context.Context, id uuid.UUID, req dto.ReglaRequest) (*dto.ReglaResponse, error)

	CrearPremio(ctx context.Context, req dto.PremioRequest) (*dto.PremioResponse, error)
	ListarPremios(ctx context.Context) ([]dto.PremioResponse, error)
	ActualizarPremio(ctx context.Context, id uuid.UUID, req dto.PremioRequest) (*dto.PremioResponse, error)

	// Canjear consume el saldo COMPLETO de puntos del cliente a cambio del
	// premio; el saldo debe cubrir el costo.
	Canjear(ctx context.Context, req dto.CanjearRequest) (*dto.CanjeResponse, error)
	ListarCanjes(ctx context.Context, clienteID *uuid.UUID) ([]dto.CanjeResponse, error)

	// AcreditarPorEntregaTx otorga floor(total / monto_por_punto) puntos según
	// la regla activa, dentro de la transacción de entrega. Sin regla activa
	// no acredita nada y no es error.
	AcreditarPorEntregaTx(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID, total decimal.Decimal) (int, error)
}

type fidelizacionService struct {
	repo        repository.FidelizacionRepository
	clienteRepo repository.ClienteRepository
	auditoria   AuditoriaService
}

func NewFidelizacionService(
	repo repository.FidelizacionRepository,
	clienteRepo repository.ClienteRepository,
	auditoria AuditoriaService,
) FidelizacionService {
	return &fidelizacionService{repo: repo, clienteRepo: clienteRepo, auditoria: auditoria}
}

// ── Reglas ────────────────────────────────────────────────────────────────────

func (s *fidelizacionService) CrearRegla(ctx context.Context, req dto.ReglaRequest) (*dto.ReglaResponse, error) {
	regla := &model.ReglaFidelizacion{
		Nombre:        req.Nombre,
		MontoPorPunto: req.MontoPorPunto,
		Activa:        req.Activa,
	}
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if regla.Activa {
			if err := s.repo.DesactivarReglasTx(tx); err != nil {
				return err
			}
		}
		return s.repo.CreateReglaTx(tx, regla)
	})
	if err != nil {
		return nil, err
	}
	resp := reglaToResponse(regla)
	return &resp, nil
}

func (s *fidelizacionService) ListarReglas(ctx context.Context) ([]dto.ReglaResponse, error) {
	reglas, err := s.repo.ListReglas(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ReglaResponse, 0, len(reglas))
	for i := range reglas {
		resp = append(resp, reglaToResponse(&reglas[i]))
	}
	return resp, nil
}

func (s *fidelizacionService) ActualizarRegla(ctx context.Context, id uuid.UUID, req dto.ReglaRequest) (*dto.ReglaResponse, error) {
	regla, err := s.repo.FindReglaByID(ctx, id)
	if err != nil {
		return nil, errors.New("regla no encontrada")
	}
	regla.Nombre = req.Nombre
	regla.MontoPorPunto = req.MontoPorPunto
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if req.Activa && !regla.Activa {
			if err := s.repo.DesactivarReglasTx(tx); err != nil {
				return err
			}
		}
		regla.Activa = req.Activa
		return s.repo.UpdateReglaTx(tx, regla)
	})
	if err != nil {
		return nil, err
	}
	resp := reglaToResponse(regla)
	return &resp, nil
}

// ── Premios ───────────────────────────────────────────────────────────────────

func (s *fidelizacionService) CrearPremio(ctx context.Context, req dto.PremioRequest) (*dto.PremioResponse, error) {
	premio := &model.PremioFidelizacion{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		CostoPuntos: req.CostoPuntos,
		Activo:      req.Activo,
	}
	if err := s.repo.CreatePremio(ctx, premio); err != nil {
		return nil, err
	}
	resp := premioToResponse(premio)
	return &resp, nil
}

func (s *fidelizacionService) ListarPremios(ctx context.Context) ([]dto.PremioResponse, error) {
	premios, err := s.repo.ListPremios(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PremioResponse, 0, len(premios))
	for i := range premios {
		resp = append(resp, premioToResponse(&premios[i]))
	}
	return resp, nil
}

func (s *fidelizacionService) ActualizarPremio(ctx context.Context, id uuid.UUID, req dto.PremioRequest) (*dto.PremioResponse, error) {
	premio, err := s.repo.FindPremioByID(ctx, id)
	if err != nil {
		return nil, errors.New("premio no encontrado")
	}
	premio.Nombre = req.Nombre
	premio.Descripcion = req.Descripcion
	premio.CostoPuntos = req.CostoPuntos
	premio.Activo = req.Activo
	if err := s.repo.UpdatePremio(ctx, premio); err != nil {
		return nil, err
	}
	resp := premioToResponse(premio)
	return &resp, nil
}

// ── Canjes ────────────────────────────────────────────────────────────────────

func (s *fidelizacionService) Canjear(ctx context.Context, req dto.CanjearRequest) (*dto.CanjeResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, errors.New("cliente_id inválido")
	}
	premioID, err := uuid.Parse(req.PremioID)
	if err != nil {
		return nil, errors.New("premio_id inválido")
	}
	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	premio, err := s.repo.FindPremioByID(ctx, premioID)
	if err != nil {
		return nil, errors.New("premio no encontrado")
	}
	if !premio.Activo {
		return nil, errors.New("el premio no está disponible")
	}
	if cliente.PuntosFidelizacion < premio.CostoPuntos {
		return nil, fmt.Errorf("puntos insuficientes: el cliente tiene %d y el premio cuesta %d",
			cliente.PuntosFidelizacion, premio.CostoPuntos)
	}

	canje := &model.CanjeFidelizacion{
		ClienteID:        clienteID,
		PremioID:         premioID,
		PuntosUtilizados: cliente.PuntosFidelizacion,
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateCanjeTx(tx, canje); err != nil {
			return err
		}
		return s.clienteRepo.ResetPuntosTx(tx, clienteID)
	})
	if err != nil {
		return nil, err
	}

	actor := ActorDe(ctx)
	s.auditoria.Registrar(ctx, actor.ID, actor.Username, "fidelizacion", "canjear",
		model.SeveridadInfo, fmt.Sprintf("Canje de %d punto(s) por %q para cliente %s",
			canje.PuntosUtilizados, premio.Nombre, cliente.Identificacion))

	return &dto.CanjeResponse{
		ID:               canje.ID.String(),
		ClienteID:        clienteID.String(),
		PremioID:         premioID.String(),
		PremioNombre:     premio.Nombre,
		PuntosUtilizados: canje.PuntosUtilizados,
		CreatedAt:        fmtFecha(canje.CreatedAt),
	}, nil
}

func (s *fidelizacionService) ListarCanjes(ctx context.Context, clienteID *uuid.UUID) ([]dto.CanjeResponse, error) {
	canjes, err := s.repo.ListCanjes(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CanjeResponse, 0, len(canjes))
	for _, c := range canjes {
		item := dto.CanjeResponse{
			ID:               c.ID.String(),
			ClienteID:        c.ClienteID.String(),
			PremioID:         c.PremioID.String(),
			PuntosUtilizados: c.PuntosUtilizados,
			CreatedAt:        fmtFecha(c.CreatedAt),
		}
		if c.Premio != nil {
			item.PremioNombre = c.Premio.Nombre
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func (s *fidelizacionService) AcreditarPorEntregaTx(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID, total decimal.Decimal) (int, error) {
	regla, err := s.repo.FindReglaActiva(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if regla.MontoPorPunto.IsZero() {
		return 0, nil
	}
	puntos := int(total.Div(regla.MontoPorPunto).IntPart())
	if puntos <= 0 {
		return 0, nil
	}
	if err := s.clienteRepo.SumarPuntosTx(tx, clienteID, puntos); err != nil {
		return 0, err
	}
	return puntos, nil
}

func reglaToResponse(r *model.ReglaFidelizacion) dto.ReglaResponse {
	return dto.ReglaResponse{
		ID:            r.ID.String(),
		Nombre:        r.Nombre,
		MontoPorPunto: r.MontoPorPunto,
		Activa:        r.Activa,
		CreatedAt:     fmtFecha(r.CreatedAt),
	}
}

func premioToResponse(p *model.PremioFidelizacion) dto.PremioResponse {
	return dto.PremioResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		CostoPuntos: p.CostoPuntos,
		Activo:      p.Activo,
		CreatedAt:   fmtFecha(p.CreatedAt),
	}
}
