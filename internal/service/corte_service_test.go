package service

import (
	"context"
	"testing"
	"time"

	"galeriapos/internal/dto"
	"galeriapos/internal/model"
	"galeriapos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory CorteRepository stub ───────────────────────────────────────────

type memCorteRepo struct {
	cortes map[uuid.UUID]*model.Corte
	// crearErr forces Crear to fail, simulating the unique-index race.
	crearErr error
	// findPorFechaErr forces FindPorFecha to fail, simulating a dropped
	// connection during the period-lock check.
	findPorFechaErr error
}

func newMemCorteRepo() *memCorteRepo {
	return &memCorteRepo{cortes: make(map[uuid.UUID]*model.Corte)}
}

func (r *memCorteRepo) Crear(_ context.Context, c *model.Corte, ventaIDs, egresoIDs []uuid.UUID) error {
	if r.crearErr != nil {
		return r.crearErr
	}
	for _, existing := range r.cortes {
		if existing.Periodo == c.Periodo {
			return repository.ErrPeriodoDuplicado
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.cortes[c.ID] = c
	return nil
}

func (r *memCorteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Corte, error) {
	c, ok := r.cortes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *memCorteRepo) ExistePeriodo(_ context.Context, periodo string) (bool, error) {
	for _, c := range r.cortes {
		if c.Periodo == periodo {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCorteRepo) FindPorFecha(_ context.Context, fecha time.Time) (*model.Corte, error) {
	if r.findPorFechaErr != nil {
		return nil, r.findPorFechaErr
	}
	for _, c := range r.cortes {
		if !fecha.Before(c.FechaInicio) && !fecha.After(c.FechaFin) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCorteRepo) List(_ context.Context, page, limit int) ([]model.Corte, int64, error) {
	all := make([]model.Corte, 0, len(r.cortes))
	for _, c := range r.cortes {
		all = append(all, *c)
	}
	return all, int64(len(all)), nil
}

func (r *memCorteRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	if _, ok := r.cortes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.cortes, id)
	return nil
}

var _ repository.CorteRepository = (*memCorteRepo)(nil)

// ── Minimal venta/egreso repo stubs (corte only needs the range query) ───────

type memVentaRepo struct {
	ventas []model.Venta
}

func (r *memVentaRepo) Create(_ context.Context, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ventas = append(r.ventas, *v)
	return nil
}

func (r *memVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	for i := range r.ventas {
		if r.ventas[i].ID == id {
			return &r.ventas[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memVentaRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.ventas {
		if r.ventas[i].ID == id {
			r.ventas = append(r.ventas[:i], r.ventas[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	return r.ventas, int64(len(r.ventas)), nil
}

func (r *memVentaRepo) ListSinCortePorRango(_ context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if v.CorteID == nil && !v.Fecha.Before(desde) && !v.Fecha.After(hasta) {
			out = append(out, v)
		}
	}
	return out, nil
}

var _ repository.VentaRepository = (*memVentaRepo)(nil)

type memEgresoRepo struct {
	egresos []model.Egreso
}

func (r *memEgresoRepo) Create(_ context.Context, e *model.Egreso) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.egresos = append(r.egresos, *e)
	return nil
}

func (r *memEgresoRepo) List(_ context.Context, desde, hasta string, page, limit int) ([]model.Egreso, int64, error) {
	return r.egresos, int64(len(r.egresos)), nil
}

func (r *memEgresoRepo) ListSinCortePorRango(_ context.Context, desde, hasta time.Time) ([]model.Egreso, error) {
	var out []model.Egreso
	for _, e := range r.egresos {
		if e.CorteID == nil && !e.Fecha.Before(desde) && !e.Fecha.After(hasta) {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ repository.EgresoRepository = (*memEgresoRepo)(nil)

// ── Tests ────────────────────────────────────────────────────────────────────

func TestGenerarCorte(t *testing.T) {
	corteRepo := newMemCorteRepo()
	ventaRepo := &memVentaRepo{}
	egresoRepo := &memEgresoRepo{}
	svc := NewCorteService(corteRepo, ventaRepo, egresoRepo, nil)

	marca := uuid.New()
	v := venta(marca, model.ContratoPorcentaje, "20", "1000", "1000")
	v.Fecha, _ = time.Parse("2006-01-02", "2025-01-10")
	require.NoError(t, ventaRepo.Create(context.Background(), &v))
	require.NoError(t, egresoRepo.Create(context.Background(), &model.Egreso{
		Monto: dec("100"),
		Fecha: v.Fecha,
	}))

	resp, err := svc.Generar(context.Background(), uuid.New(), dto.GenerarCorteRequest{
		FechaInicio: "2025-01-01",
		FechaFin:    "2025-01-31",
	})
	require.NoError(t, err)

	assert.Equal(t, "0125", resp.Periodo)
	eqDec(t, "1000", resp.TotalVentas)
	eqDec(t, "46.00", resp.TotalComisionTarjeta)
	eqDec(t, "763.20", resp.TotalMarcas)
	eqDec(t, "190.80", resp.TotalTiendas)
	eqDec(t, "100", resp.TotalEgresos)
	assert.Equal(t, 1, resp.CantidadVentas)
	assert.Equal(t, 1, resp.CantidadEgresos)
	require.Len(t, resp.Detalles, 1)
	assert.Equal(t, marca.String(), resp.Detalles[0].MarcaID)
	assert.Len(t, corteRepo.cortes, 1)
}

func TestGenerarCortePeriodoYaCerrado(t *testing.T) {
	corteRepo := newMemCorteRepo()
	svc := NewCorteService(corteRepo, &memVentaRepo{}, &memEgresoRepo{}, nil)

	req := dto.GenerarCorteRequest{FechaInicio: "2025-01-01", FechaFin: "2025-01-31"}
	_, err := svc.Generar(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	// Second corte for the same periodo, even with a different range.
	_, err = svc.Generar(context.Background(), uuid.New(), dto.GenerarCorteRequest{
		FechaInicio: "2025-01-15", FechaFin: "2025-02-10",
	})
	require.ErrorIs(t, err, ErrPeriodoYaCerrado)
	assert.Len(t, corteRepo.cortes, 1, "the existing corte must be untouched")
}

func TestGenerarCorteCarreraConcurrente(t *testing.T) {
	// Both requests pass the pre-check; the unique index arbitrates and the
	// loser surfaces the same domain conflict.
	corteRepo := newMemCorteRepo()
	corteRepo.crearErr = repository.ErrPeriodoDuplicado
	svc := NewCorteService(corteRepo, &memVentaRepo{}, &memEgresoRepo{}, nil)

	_, err := svc.Generar(context.Background(), uuid.New(), dto.GenerarCorteRequest{
		FechaInicio: "2025-01-01", FechaFin: "2025-01-31",
	})
	require.ErrorIs(t, err, ErrPeriodoYaCerrado)
}

func TestGenerarCorteRangoInvalido(t *testing.T) {
	svc := NewCorteService(newMemCorteRepo(), &memVentaRepo{}, &memEgresoRepo{}, nil)
	_, err := svc.Generar(context.Background(), uuid.New(), dto.GenerarCorteRequest{
		FechaInicio: "2025-02-01", FechaFin: "2025-01-01",
	})
	require.ErrorIs(t, err, ErrRangoFechasInvalido)
}

func TestGenerarCorteIgnoraVentasYaCortadas(t *testing.T) {
	corteRepo := newMemCorteRepo()
	ventaRepo := &memVentaRepo{}
	svc := NewCorteService(corteRepo, ventaRepo, &memEgresoRepo{}, nil)

	previo := uuid.New()
	settled := venta(uuid.New(), model.ContratoDCE, "0", "999", "0")
	settled.Fecha, _ = time.Parse("2006-01-02", "2025-01-05")
	settled.CorteID = &previo
	require.NoError(t, ventaRepo.Create(context.Background(), &settled))

	resp, err := svc.Generar(context.Background(), uuid.New(), dto.GenerarCorteRequest{
		FechaInicio: "2025-01-01", FechaFin: "2025-01-31",
	})
	require.NoError(t, err)
	assert.Zero(t, resp.CantidadVentas)
	eqDec(t, "0", resp.TotalVentas)
}

func TestEliminarCorte(t *testing.T) {
	corteRepo := newMemCorteRepo()
	svc := NewCorteService(corteRepo, &memVentaRepo{}, &memEgresoRepo{}, nil)

	resp, err := svc.Generar(context.Background(), uuid.New(), dto.GenerarCorteRequest{
		FechaInicio: "2025-01-01", FechaFin: "2025-01-31",
	})
	require.NoError(t, err)

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Eliminar(context.Background(), id))
	assert.Empty(t, corteRepo.cortes)

	// The periodo can be settled again after the override.
	_, err = svc.Generar(context.Background(), uuid.New(), dto.GenerarCorteRequest{
		FechaInicio: "2025-01-01", FechaFin: "2025-01-31",
	})
	require.NoError(t, err)
}

func TestEliminarCorteInexistente(t *testing.T) {
	svc := NewCorteService(newMemCorteRepo(), &memVentaRepo{}, &memEgresoRepo{}, nil)
	err := svc.Eliminar(context.Background(), uuid.New())
	require.Error(t, err)
}
