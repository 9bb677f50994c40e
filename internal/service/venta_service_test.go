package service

import (
	"context"
	"errors"
	"testing"

	"galeriapos/internal/dto"
	"galeriapos/internal/model"
	"galeriapos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory MarcaRepository stub ───────────────────────────────────────────

type memMarcaRepo struct {
	marcas map[uuid.UUID]*model.Marca
}

func newMemMarcaRepo() *memMarcaRepo {
	return &memMarcaRepo{marcas: make(map[uuid.UUID]*model.Marca)}
}

func (r *memMarcaRepo) Create(_ context.Context, m *model.Marca) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.marcas[m.ID] = m
	return nil
}

func (r *memMarcaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Marca, error) {
	m, ok := r.marcas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *memMarcaRepo) Update(_ context.Context, m *model.Marca) error {
	r.marcas[m.ID] = m
	return nil
}

func (r *memMarcaRepo) List(_ context.Context, incluirInactivas bool) ([]model.Marca, error) {
	var out []model.Marca
	for _, m := range r.marcas {
		if incluirInactivas || m.Activo {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *memMarcaRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	m, ok := r.marcas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Activo = activo
	return nil
}

var _ repository.MarcaRepository = (*memMarcaRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

func seedMarca(t *testing.T, repo *memMarcaRepo, tipo model.TipoContrato, valor string) *model.Marca {
	t.Helper()
	m := &model.Marca{
		Nombre:        "Aretes del Sol",
		TipoContrato:  tipo,
		ValorContrato: dec(valor),
		Activo:        true,
	}
	require.NoError(t, repo.Create(context.Background(), m))
	return m
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRegistrarVenta(t *testing.T) {
	marcaRepo := newMemMarcaRepo()
	ventaRepo := &memVentaRepo{}
	svc := NewVentaService(ventaRepo, marcaRepo, newMemCorteRepo())

	marca := seedMarca(t, marcaRepo, model.ContratoPorcentaje, "20")

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MarcaID:       marca.ID.String(),
		Monto:         dec("750.00"),
		MontoEfectivo: dec("250.00"),
		MontoTarjeta:  dec("500.00"),
		Fecha:         "2025-03-12",
	})
	require.NoError(t, err)

	// The contract is snapshotted at registration time.
	assert.Equal(t, "Porcentaje", resp.TipoContrato)
	eqDec(t, "20", resp.ValorContrato)
	assert.Equal(t, "2025-03-12", resp.Fecha)
	assert.Equal(t, "Aretes del Sol", resp.MarcaNombre)
	require.Len(t, ventaRepo.ventas, 1)
}

func TestRegistrarVentaSnapshotInmune(t *testing.T) {
	// Changing the marca's contract after the sale does not touch the sale.
	marcaRepo := newMemMarcaRepo()
	ventaRepo := &memVentaRepo{}
	svc := NewVentaService(ventaRepo, marcaRepo, newMemCorteRepo())

	marca := seedMarca(t, marcaRepo, model.ContratoPorcentaje, "10")
	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MarcaID:       marca.ID.String(),
		Monto:         dec("100"),
		MontoEfectivo: dec("100"),
		Fecha:         "2025-03-12",
	})
	require.NoError(t, err)

	marca.ValorContrato = dec("50")
	require.NoError(t, marcaRepo.Update(context.Background(), marca))

	eqDec(t, "10", ventaRepo.ventas[0].ValorContrato)
}

func TestRegistrarVentaMontosNoSuman(t *testing.T) {
	marcaRepo := newMemMarcaRepo()
	svc := NewVentaService(&memVentaRepo{}, marcaRepo, newMemCorteRepo())
	marca := seedMarca(t, marcaRepo, model.ContratoDCE, "0")

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MarcaID:       marca.ID.String(),
		Monto:         dec("100"),
		MontoEfectivo: dec("50"),
		MontoTarjeta:  dec("30"),
		Fecha:         "2025-03-12",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no suman")
}

func TestRegistrarVentaEnPeriodoCerrado(t *testing.T) {
	marcaRepo := newMemMarcaRepo()
	corteRepo := newMemCorteRepo()
	svc := NewVentaService(&memVentaRepo{}, marcaRepo, corteRepo)
	marca := seedMarca(t, marcaRepo, model.ContratoDCE, "0")

	inicio, fin := fechas("2025-03-01", "2025-03-31")
	require.NoError(t, corteRepo.Crear(context.Background(), &model.Corte{
		Periodo:     "0325",
		FechaInicio: inicio,
		FechaFin:    fin,
	}, nil, nil))

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MarcaID:       marca.ID.String(),
		Monto:         dec("100"),
		MontoEfectivo: dec("100"),
		Fecha:         "2025-03-15",
	})
	require.ErrorIs(t, err, ErrPeriodoConCorte)

	// A date outside the settled range is accepted.
	_, err = svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MarcaID:       marca.ID.String(),
		Monto:         dec("100"),
		MontoEfectivo: dec("100"),
		Fecha:         "2025-04-01",
	})
	require.NoError(t, err)
}

func TestRegistrarVentaVerificacionDePeriodoFalla(t *testing.T) {
	// The lock check hitting a dead connection must block the write, not
	// silently let it through into a possibly closed period.
	marcaRepo := newMemMarcaRepo()
	ventaRepo := &memVentaRepo{}
	corteRepo := newMemCorteRepo()
	corteRepo.findPorFechaErr = errors.New("driver: bad connection")
	svc := NewVentaService(ventaRepo, marcaRepo, corteRepo)
	marca := seedMarca(t, marcaRepo, model.ContratoDCE, "0")

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MarcaID:       marca.ID.String(),
		Monto:         dec("100"),
		MontoEfectivo: dec("100"),
		Fecha:         "2025-03-15",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPeriodoConCorte)
	assert.Empty(t, ventaRepo.ventas)
}

func TestRegistrarVentaMarcaInactiva(t *testing.T) {
	marcaRepo := newMemMarcaRepo()
	svc := NewVentaService(&memVentaRepo{}, marcaRepo, newMemCorteRepo())
	marca := seedMarca(t, marcaRepo, model.ContratoDCE, "0")
	marca.Activo = false

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MarcaID:       marca.ID.String(),
		Monto:         dec("100"),
		MontoEfectivo: dec("100"),
		Fecha:         "2025-03-12",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactiva")
}

func TestAnularVentaCortada(t *testing.T) {
	marcaRepo := newMemMarcaRepo()
	ventaRepo := &memVentaRepo{}
	svc := NewVentaService(ventaRepo, marcaRepo, newMemCorteRepo())

	corteID := uuid.New()
	v := venta(uuid.New(), model.ContratoDCE, "0", "100", "0")
	v.CorteID = &corteID
	require.NoError(t, ventaRepo.Create(context.Background(), &v))

	err := svc.Anular(context.Background(), v.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corte")
	assert.Len(t, ventaRepo.ventas, 1, "settled sales are immutable history")
}

func TestAnularVentaSinCorte(t *testing.T) {
	ventaRepo := &memVentaRepo{}
	svc := NewVentaService(ventaRepo, newMemMarcaRepo(), newMemCorteRepo())

	v := venta(uuid.New(), model.ContratoDCE, "0", "100", "0")
	require.NoError(t, ventaRepo.Create(context.Background(), &v))
	require.NoError(t, svc.Anular(context.Background(), v.ID))
	assert.Empty(t, ventaRepo.ventas)
}
