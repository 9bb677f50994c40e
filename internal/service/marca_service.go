package service

import (
	"context"
	"errors"
	"fmt"

	"galeriapos/internal/dto"
	"galeriapos/internal/model"
	"galeriapos/internal/repository"

	"github.com/google/uuid"
)

type MarcaService interface {
	Crear(ctx context.Context, req dto.CrearMarcaRequest) (*dto.MarcaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMarcaRequest) (*dto.MarcaResponse, error)
	Listar(ctx context.Context, incluirInactivas bool) ([]dto.MarcaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type marcaService struct {
	repo repository.MarcaRepository
}

func NewMarcaService(repo repository.MarcaRepository) MarcaService {
	return &marcaService{repo: repo}
}

func (s *marcaService) Crear(ctx context.Context, req dto.CrearMarcaRequest) (*dto.MarcaResponse, error) {
	// Unlike the settlement's permissive default, registering a marca with
	// an unknown contract type is a hard error: the label set is closed.
	tipo, ok := model.ParseTipoContrato(req.TipoContrato)
	if !ok {
		return nil, fmt.Errorf("tipo de contrato desconocido: %q", req.TipoContrato)
	}

	marca := &model.Marca{
		Nombre:        req.Nombre,
		Duenio:        req.Duenio,
		Telefono:      req.Telefono,
		TipoContrato:  tipo,
		ValorContrato: req.ValorContrato,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, marca); err != nil {
		return nil, err
	}
	return marcaToResponse(marca), nil
}

func (s *marcaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMarcaRequest) (*dto.MarcaResponse, error) {
	marca, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("marca no encontrada")
	}
	if req.Nombre != nil {
		marca.Nombre = *req.Nombre
	}
	if req.Duenio != nil {
		marca.Duenio = req.Duenio
	}
	if req.Telefono != nil {
		marca.Telefono = req.Telefono
	}
	if req.TipoContrato != nil {
		tipo, ok := model.ParseTipoContrato(*req.TipoContrato)
		if !ok {
			return nil, fmt.Errorf("tipo de contrato desconocido: %q", *req.TipoContrato)
		}
		marca.TipoContrato = tipo
	}
	if req.ValorContrato != nil {
		marca.ValorContrato = *req.ValorContrato
	}
	if err := s.repo.Update(ctx, marca); err != nil {
		return nil, err
	}
	return marcaToResponse(marca), nil
}

func (s *marcaService) Listar(ctx context.Context, incluirInactivas bool) ([]dto.MarcaResponse, error) {
	marcas, err := s.repo.List(ctx, incluirInactivas)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MarcaResponse, 0, len(marcas))
	for i := range marcas {
		items = append(items, *marcaToResponse(&marcas[i]))
	}
	return items, nil
}

func (s *marcaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("marca no encontrada")
	}
	return s.repo.SetActivo(ctx, id, false)
}

func marcaToResponse(m *model.Marca) *dto.MarcaResponse {
	return &dto.MarcaResponse{
		ID:            m.ID.String(),
		Nombre:        m.Nombre,
		Duenio:        m.Duenio,
		Telefono:      m.Telefono,
		TipoContrato:  string(m.TipoContrato),
		ValorContrato: m.ValorContrato,
		Activo:        m.Activo,
	}
}
