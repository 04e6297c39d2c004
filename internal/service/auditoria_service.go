package service

import (
	"context"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// auditoriaPageSize is fixed: the audit screen paginates 20 rows at a time.
const auditoriaPageSize = 20

type AuditoriaService interface {
	// Registrar appends an audit record. Best-effort: a failed append is
	// logged, never propagated — auditing must not break the main action.
	Registrar(ctx context.Context, usuarioID *uuid.UUID, username, modulo, accion, severidad, detalle string)
	Listar(ctx context.Context, filter dto.AuditoriaFilter) (*dto.AuditoriaListResponse, error)
}

type auditoriaService struct {
	repo repository.AuditoriaRepository
}

func NewAuditoriaService(repo repository.AuditoriaRepository) AuditoriaService {
	return &auditoriaService{repo: repo}
}

func (s *auditoriaService) Registrar(ctx context.Context, usuarioID *uuid.UUID, username, modulo, accion, severidad, detalle string) {
	registro := &model.RegistroAuditoria{
		UsuarioID: usuarioID,
		Username:  username,
		Modulo:    modulo,
		Accion:    accion,
		Severidad: severidad,
		Detalle:   detalle,
	}
	if err := s.repo.Create(ctx, registro); err != nil {
		log.Error().Err(err).
			Str("modulo", modulo).
			Str("accion", accion).
			Msg("auditoria: no se pudo registrar el evento")
	}
}

func (s *auditoriaService) Listar(ctx context.Context, filter dto.AuditoriaFilter) (*dto.AuditoriaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	registros, total, err := s.repo.List(ctx, filter, auditoriaPageSize)
	if err != nil {
		return nil, err
	}
	data := make([]dto.AuditoriaResponse, 0, len(registros))
	for _, r := range registros {
		data = append(data, dto.AuditoriaResponse{
			ID:        r.ID.String(),
			Username:  r.Username,
			Modulo:    r.Modulo,
			Accion:    r.Accion,
			Severidad: r.Severidad,
			Detalle:   r.Detalle,
			CreatedAt: fmtFecha(r.CreatedAt),
		})
	}
	return &dto.AuditoriaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: auditoriaPageSize,
	}, nil
}
