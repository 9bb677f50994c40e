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

// ErrPeriodoConCorte rejects new sales dated inside an already settled
// period. Settled history is closed — the sale must be recorded with a date
// outside the corte's range or the corte removed first (admin override).
var ErrPeriodoConCorte = errors.New("la fecha pertenece a un periodo ya cerrado por un corte")

type VentaService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	Anular(ctx context.Context, id uuid.UUID) error
}

type ventaService struct {
	repo      repository.VentaRepository
	marcaRepo repository.MarcaRepository
	corteRepo repository.CorteRepository
}

func NewVentaService(
	repo repository.VentaRepository,
	marcaRepo repository.MarcaRepository,
	corteRepo repository.CorteRepository,
) VentaService {
	return &ventaService{repo: repo, marcaRepo: marcaRepo, corteRepo: corteRepo}
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// 1. Resolve the marca and snapshot its contract onto the sale.
// 2. Validate the payment-method amounts sum to the total.
// 3. Reject dates falling inside an already settled period.

func (s *ventaService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	marcaID, err := uuid.Parse(req.MarcaID)
	if err != nil {
		return nil, fmt.Errorf("marca_id inválido: %w", err)
	}
	marca, err := s.marcaRepo.FindByID(ctx, marcaID)
	if err != nil {
		return nil, errors.New("marca no encontrada")
	}
	if !marca.Activo {
		return nil, errors.New("la marca está inactiva y no puede vender")
	}

	fecha, err := time.Parse(fechaLayout, req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida: %w", err)
	}

	suma := req.MontoEfectivo.Add(req.MontoTarjeta).Add(req.MontoTransferencia)
	if !suma.Equal(req.Monto) {
		return nil, errors.New("los montos por método de pago no suman el total de la venta")
	}
	if req.Monto.LessThan(decimal.Zero) {
		return nil, errors.New("el monto no puede ser negativo")
	}

	// Period lock: once a corte covers the date, history is closed. A failed
	// lookup must not disarm the lock, so only "no corte" lets the write pass.
	corte, err := s.corteRepo.FindPorFecha(ctx, fecha)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("no se pudo verificar el periodo: %w", err)
	}
	if corte != nil {
		return nil, ErrPeriodoConCorte
	}

	venta := &model.Venta{
		MarcaID:            marcaID,
		UsuarioID:          usuarioID,
		Monto:              req.Monto,
		MontoEfectivo:      req.MontoEfectivo,
		MontoTarjeta:       req.MontoTarjeta,
		MontoTransferencia: req.MontoTransferencia,
		TipoContrato:       marca.TipoContrato,
		ValorContrato:      marca.ValorContrato,
		Fecha:              fecha,
	}
	if req.ProductoID != nil {
		pid, err := uuid.Parse(*req.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		venta.ProductoID = &pid
	}

	if err := s.repo.Create(ctx, venta); err != nil {
		return nil, err
	}
	venta.Marca = marca
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Anular removes an unsettled sale. Sales already absorbed by a corte are
// immutable history.
func (s *ventaService) Anular(ctx context.Context, id uuid.UUID) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("venta no encontrada")
	}
	if venta.CorteID != nil {
		return errors.New("la venta pertenece a un corte y no puede anularse")
	}
	return s.repo.Delete(ctx, id)
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:                 v.ID.String(),
		MarcaID:            v.MarcaID.String(),
		Monto:              v.Monto,
		MontoEfectivo:      v.MontoEfectivo,
		MontoTarjeta:       v.MontoTarjeta,
		MontoTransferencia: v.MontoTransferencia,
		TipoContrato:       string(v.TipoContrato),
		ValorContrato:      v.ValorContrato,
		Fecha:              v.Fecha.Format(fechaLayout),
		CreatedAt:          v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if v.Marca != nil {
		resp.MarcaNombre = v.Marca.Nombre
	}
	if v.ProductoID != nil {
		pid := v.ProductoID.String()
		resp.ProductoID = &pid
	}
	if v.CorteID != nil {
		cid := v.CorteID.String()
		resp.CorteID = &cid
	}
	return resp
}
