package service

import (
	"context"
	"errors"
	"testing"

	"galeriapos/internal/dto"
	"galeriapos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrarEgreso(t *testing.T) {
	egresoRepo := &memEgresoRepo{}
	svc := NewEgresoService(egresoRepo, newMemCorteRepo())

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarEgresoRequest{
		Monto:      dec("320.50"),
		Concepto:   "Bolsas de papel",
		MetodoPago: "efectivo",
		Fecha:      "2025-03-10",
	})
	require.NoError(t, err)
	eqDec(t, "320.50", resp.Monto)
	assert.Equal(t, "2025-03-10", resp.Fecha)
	assert.Len(t, egresoRepo.egresos, 1)
}

func TestRegistrarEgresoMontoInvalido(t *testing.T) {
	svc := NewEgresoService(&memEgresoRepo{}, newMemCorteRepo())

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarEgresoRequest{
		Monto:      dec("0"),
		Concepto:   "Nada",
		MetodoPago: "efectivo",
		Fecha:      "2025-03-10",
	})
	require.Error(t, err)
}

func TestRegistrarEgresoVerificacionDePeriodoFalla(t *testing.T) {
	egresoRepo := &memEgresoRepo{}
	corteRepo := newMemCorteRepo()
	corteRepo.findPorFechaErr = errors.New("driver: bad connection")
	svc := NewEgresoService(egresoRepo, corteRepo)

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarEgresoRequest{
		Monto:      dec("100"),
		Concepto:   "Limpieza",
		MetodoPago: "efectivo",
		Fecha:      "2025-03-20",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPeriodoConCorte)
	assert.Empty(t, egresoRepo.egresos)
}

func TestRegistrarEgresoEnPeriodoCerrado(t *testing.T) {
	corteRepo := newMemCorteRepo()
	svc := NewEgresoService(&memEgresoRepo{}, corteRepo)

	inicio, fin := fechas("2025-03-01", "2025-03-31")
	require.NoError(t, corteRepo.Crear(context.Background(), &model.Corte{
		Periodo:     "0325",
		FechaInicio: inicio,
		FechaFin:    fin,
	}, nil, nil))

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarEgresoRequest{
		Monto:      dec("100"),
		Concepto:   "Limpieza",
		MetodoPago: "transferencia",
		Fecha:      "2025-03-20",
	})
	require.ErrorIs(t, err, ErrPeriodoConCorte)
}
