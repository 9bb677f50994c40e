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

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, marcaID *uuid.UUID) ([]dto.ProductoResponse, error)
}

type productoService struct {
	repo      repository.ProductoRepository
	marcaRepo repository.MarcaRepository
}

func NewProductoService(repo repository.ProductoRepository, marcaRepo repository.MarcaRepository) ProductoService {
	return &productoService{repo: repo, marcaRepo: marcaRepo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	marcaID, err := uuid.Parse(req.MarcaID)
	if err != nil {
		return nil, fmt.Errorf("marca_id inválido: %w", err)
	}
	marca, err := s.marcaRepo.FindByID(ctx, marcaID)
	if err != nil {
		return nil, errors.New("marca no encontrada")
	}

	producto := &model.Producto{
		Codigo:      req.Codigo,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		MarcaID:     marcaID,
		Precio:      req.Precio,
		Stock:       req.Stock,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, producto); err != nil {
		return nil, err
	}
	producto.Marca = marca
	return productoToResponse(producto), nil
}

func (s *productoService) Listar(ctx context.Context, marcaID *uuid.UUID) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx, marcaID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, *productoToResponse(&productos[i]))
	}
	return items, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:          p.ID.String(),
		Codigo:      p.Codigo,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		MarcaID:     p.MarcaID.String(),
		Precio:      p.Precio,
		Stock:       p.Stock,
		Activo:      p.Activo,
	}
	if p.Marca != nil {
		resp.MarcaNombre = p.Marca.Nombre
	}
	return resp
}
