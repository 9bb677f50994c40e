package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"galeriapos/internal/dto"
	"galeriapos/internal/model"
	"galeriapos/internal/repository"
	"galeriapos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrPeriodoYaCerrado is the domain conflict: a corte for the derived periodo
// already exists. The existing corte is never touched.
var ErrPeriodoYaCerrado = errors.New("el periodo ya fue cerrado con un corte anterior")

const fechaLayout = "2006-01-02"

type CorteService interface {
	Generar(ctx context.Context, generadoPor uuid.UUID, req dto.GenerarCorteRequest) (*dto.CorteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CorteResponse, error)
	Listar(ctx context.Context, page, limit int) (*dto.CorteListResponse, error)
	// Eliminar is an explicit admin override, not part of settlement
	// semantics: it unwinds the corte and releases its ventas/egresos.
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type corteService struct {
	repo       repository.CorteRepository
	ventaRepo  repository.VentaRepository
	egresoRepo repository.EgresoRepository
	dispatcher *worker.Dispatcher
}

func NewCorteService(
	repo repository.CorteRepository,
	ventaRepo repository.VentaRepository,
	egresoRepo repository.EgresoRepository,
	dispatcher *worker.Dispatcher,
) CorteService {
	return &corteService{
		repo:       repo,
		ventaRepo:  ventaRepo,
		egresoRepo: egresoRepo,
		dispatcher: dispatcher,
	}
}

// ── Generar ───────────────────────────────────────────────────────────────────
// 1. Validate the date range.
// 2. Friendly pre-check: reject if the periodo already has a corte.
// 3. Resolve the unsettled ventas/egresos for the range.
// 4. CalcularCorte (pure).
// 5. Persist corte + detalles and stamp the records, in one transaction.
//    The unique index on periodo arbitrates concurrent generation — the
//    loser gets ErrPeriodoYaCerrado, nothing half-written.
// 6. (async) enqueue the PDF report job.

func (s *corteService) Generar(ctx context.Context, generadoPor uuid.UUID, req dto.GenerarCorteRequest) (*dto.CorteResponse, error) {
	inicio, err := time.Parse(fechaLayout, req.FechaInicio)
	if err != nil {
		return nil, fmt.Errorf("fecha_inicio inválida: %w", err)
	}
	fin, err := time.Parse(fechaLayout, req.FechaFin)
	if err != nil {
		return nil, fmt.Errorf("fecha_fin inválida: %w", err)
	}
	if fin.Before(inicio) {
		return nil, ErrRangoFechasInvalido
	}

	periodo := Periodo(inicio)
	if existe, err := s.repo.ExistePeriodo(ctx, periodo); err != nil {
		return nil, err
	} else if existe {
		return nil, ErrPeriodoYaCerrado
	}

	ventas, err := s.ventaRepo.ListSinCortePorRango(ctx, inicio, fin)
	if err != nil {
		return nil, err
	}
	egresos, err := s.egresoRepo.ListSinCortePorRango(ctx, inicio, fin)
	if err != nil {
		return nil, err
	}

	corte, err := CalcularCorte(CalculoCorte{
		Ventas:      ventas,
		Egresos:     egresos,
		FechaInicio: inicio,
		FechaFin:    fin,
		GeneradoPor: generadoPor,
	})
	if err != nil {
		return nil, err
	}

	ventaIDs := make([]uuid.UUID, len(ventas))
	for i := range ventas {
		ventaIDs[i] = ventas[i].ID
	}
	egresoIDs := make([]uuid.UUID, len(egresos))
	for i := range egresos {
		egresoIDs[i] = egresos[i].ID
	}

	if err := s.repo.Crear(ctx, corte, ventaIDs, egresoIDs); err != nil {
		if errors.Is(err, repository.ErrPeriodoDuplicado) {
			return nil, ErrPeriodoYaCerrado
		}
		return nil, err
	}

	log.Info().
		Str("corte_id", corte.ID.String()).
		Str("periodo", corte.Periodo).
		Int("ventas", corte.CantidadVentas).
		Int("egresos", corte.CantidadEgresos).
		Msg("corte generado")

	// Report job is best-effort — the corte exists regardless.
	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueReporteCorte(ctx, worker.ReporteCortePayload{
			CorteID: corte.ID.String(),
		}); err != nil {
			log.Warn().Err(err).Str("corte_id", corte.ID.String()).Msg("no se pudo encolar el reporte del corte")
		}
	}

	return corteToResponse(corte), nil
}

func (s *corteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CorteResponse, error) {
	corte, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("corte no encontrado")
	}
	return corteToResponse(corte), nil
}

func (s *corteService) Listar(ctx context.Context, page, limit int) (*dto.CorteListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	cortes, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CorteResponse, 0, len(cortes))
	for i := range cortes {
		items = append(items, *corteToResponse(&cortes[i]))
	}
	return &dto.CorteListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *corteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	corte, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("corte no encontrado")
	}
	if err := s.repo.Eliminar(ctx, corte.ID); err != nil {
		return err
	}
	log.Warn().
		Str("corte_id", corte.ID.String()).
		Str("periodo", corte.Periodo).
		Msg("corte eliminado por override administrativo")
	return nil
}

func corteToResponse(c *model.Corte) *dto.CorteResponse {
	detalles := make([]dto.CorteMarcaResponse, 0, len(c.Detalles))
	for _, d := range c.Detalles {
		detalles = append(detalles, dto.CorteMarcaResponse{
			MarcaID:        d.MarcaID.String(),
			MarcaNombre:    d.MarcaNombre,
			TipoContrato:   string(d.TipoContrato),
			ValorContrato:  d.ValorContrato,
			Total:          d.Total,
			CantidadVentas: d.CantidadVentas,
		})
	}
	return &dto.CorteResponse{
		ID:                   c.ID.String(),
		Periodo:              c.Periodo,
		FechaInicio:          c.FechaInicio.Format(fechaLayout),
		FechaFin:             c.FechaFin.Format(fechaLayout),
		TotalVentas:          c.TotalVentas,
		TotalComisionTarjeta: c.TotalComisionTarjeta,
		TotalMarcas:          c.TotalMarcas,
		TotalTiendas:         c.TotalTiendas,
		TotalEgresos:         c.TotalEgresos,
		CantidadVentas:       c.CantidadVentas,
		CantidadEgresos:      c.CantidadEgresos,
		Detalles:             detalles,
		GeneradoPor:          c.GeneradoPor.String(),
		CreatedAt:            c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
