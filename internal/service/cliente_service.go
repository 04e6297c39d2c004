package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, texto string, page, limit int) (*dto.ClienteListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo       repository.ClienteRepository
	pedidoRepo repository.PedidoRepository
}

func NewClienteService(repo repository.ClienteRepository, pedidoRepo repository.PedidoRepository) ClienteService {
	return &clienteService{repo: repo, pedidoRepo: pedidoRepo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	cliente := &model.Cliente{
		Identificacion: req.Identificacion,
		Nombre:         req.Nombre,
		Apellido:       req.Apellido,
		Email:          req.Email,
		Telefono:       req.Telefono,
		Direccion:      req.Direccion,
		Activo:         true,
	}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, traducirErrorUnicidad(err)
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) Listar(ctx context.Context, texto string, page, limit int) (*dto.ClienteListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	clientes, total, err := s.repo.List(ctx, texto, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		data = append(data, clienteToResponse(&clientes[i]))
	}
	return &dto.ClienteListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	if req.Nombre != nil {
		cliente.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		cliente.Apellido = *req.Apellido
	}
	if req.Email != nil {
		cliente.Email = req.Email
	}
	if req.Telefono != nil {
		cliente.Telefono = req.Telefono
	}
	if req.Direccion != nil {
		cliente.Direccion = req.Direccion
	}
	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, traducirErrorUnicidad(err)
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

// Eliminar rejects the deletion while any pedido references the client.
func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("cliente no encontrado")
	}
	n, err := s.pedidoRepo.CountByCliente(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("No se puede eliminar: el cliente tiene %d pedido(s) asociado(s)", n)
	}
	return s.repo.Delete(ctx, id)
}

// traducirErrorUnicidad maps postgres unique-constraint violations on the
// cliente table to user-facing Spanish messages.
func traducirErrorUnicidad(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "identificacion"):
		return errors.New("Ya existe un cliente con esa identificación")
	case strings.Contains(msg, "email"):
		return errors.New("Ya existe un cliente con ese correo electrónico")
	}
	return err
}

func clienteToResponse(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:                 c.ID.String(),
		Identificacion:     c.Identificacion,
		Nombre:             c.Nombre,
		Apellido:           c.Apellido,
		Email:              c.Email,
		Telefono:           c.Telefono,
		Direccion:          c.Direccion,
		PuntosFidelizacion: c.PuntosFidelizacion,
		Activo:             c.Activo,
		CreatedAt:          fmtFecha(c.CreatedAt),
	}
}
