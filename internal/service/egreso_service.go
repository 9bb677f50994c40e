package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"galeriapos/internal/dto"
	"galeriapos/internal/model"
	"galeriapos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EgresoService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarEgresoRequest) (*dto.EgresoResponse, error)
	Listar(ctx context.Context, desde, hasta string, page, limit int) ([]dto.EgresoResponse, int64, error)
}

type egresoService struct {
	repo      repository.EgresoRepository
	corteRepo repository.CorteRepository
}

func NewEgresoService(repo repository.EgresoRepository, corteRepo repository.CorteRepository) EgresoService {
	return &egresoService{repo: repo, corteRepo: corteRepo}
}

func (s *egresoService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarEgresoRequest) (*dto.EgresoResponse, error) {
	fecha, err := time.Parse(fechaLayout, req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida: %w", err)
	}
	if req.Monto.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("el monto del egreso debe ser mayor a cero")
	}

	// Same period lock as ventas: settled history stays closed, and a failed
	// lookup must not disarm the lock.
	corte, err := s.corteRepo.FindPorFecha(ctx, fecha)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("no se pudo verificar el periodo: %w", err)
	}
	if corte != nil {
		return nil, ErrPeriodoConCorte
	}

	egreso := &model.Egreso{
		Monto:      req.Monto,
		Concepto:   req.Concepto,
		MetodoPago: req.MetodoPago,
		Fecha:      fecha,
		UsuarioID:  usuarioID,
	}
	if err := s.repo.Create(ctx, egreso); err != nil {
		return nil, err
	}
	return egresoToResponse(egreso), nil
}

func (s *egresoService) Listar(ctx context.Context, desde, hasta string, page, limit int) ([]dto.EgresoResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	egresos, total, err := s.repo.List(ctx, desde, hasta, page, limit)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.EgresoResponse, 0, len(egresos))
	for i := range egresos {
		items = append(items, *egresoToResponse(&egresos[i]))
	}
	return items, total, nil
}

func egresoToResponse(e *model.Egreso) *dto.EgresoResponse {
	resp := &dto.EgresoResponse{
		ID:         e.ID.String(),
		Monto:      e.Monto,
		Concepto:   e.Concepto,
		MetodoPago: e.MetodoPago,
		Fecha:      e.Fecha.Format(fechaLayout),
		CreatedAt:  e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if e.CorteID != nil {
		cid := e.CorteID.String()
		resp.CorteID = &cid
	}
	return resp
}
