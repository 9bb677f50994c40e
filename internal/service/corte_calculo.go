package service

import (
	"errors"
	"fmt"
	"time"

	"galeriapos/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// comisionTarjeta is the card processor's fixed commission rate, applied to
// the card-paid portion of each sale only. Cash and transfers carry none.
var comisionTarjeta = decimal.NewFromFloat(0.046)

var cien = decimal.NewFromInt(100)

// ErrRangoFechasInvalido rejects a corte whose end date precedes its start.
var ErrRangoFechasInvalido = errors.New("la fecha de fin es anterior a la fecha de inicio")

// CalculoCorte is the input to CalcularCorte. Ventas and egresos are assumed
// pre-filtered to [FechaInicio, FechaFin] by the caller — the calculator does
// not re-validate period membership.
type CalculoCorte struct {
	Ventas      []model.Venta
	Egresos     []model.Egreso
	FechaInicio time.Time
	FechaFin    time.Time
	GeneradoPor uuid.UUID
}

// RepartoVenta is the computed split for a single sale.
type RepartoVenta struct {
	ComisionTarjeta decimal.Decimal
	Neto            decimal.Decimal
	Marca           decimal.Decimal
	Tienda          decimal.Decimal
}

// Periodo derives the settlement period identifier from a start date:
// two-digit month followed by two-digit year, e.g. "0125" for January 2025.
// It depends on the start date only — any corte starting in the same calendar
// month maps to the same periodo.
func Periodo(fechaInicio time.Time) string {
	return fmt.Sprintf("%02d%02d", int(fechaInicio.Month()), fechaInicio.Year()%100)
}

// RepartirVenta computes the commission and the marca/tienda split for one
// sale. Rounding happens at two points only: the commission is rounded to the
// cent, and for percentage contracts the tienda share is rounded to the cent
// with the marca receiving the exact remainder — so marca + tienda always
// equals the net amount to the last cent.
func RepartirVenta(v *model.Venta) RepartoVenta {
	comision := v.MontoTarjeta.Mul(comisionTarjeta).Round(2)
	neto := v.Monto.Sub(comision)

	var marca, tienda decimal.Decimal
	switch v.TipoContrato {
	case model.ContratoPorcentaje:
		tienda = neto.Mul(v.ValorContrato).Div(cien).Round(2)
		marca = neto.Sub(tienda)
	case model.ContratoEsteticaUnisex:
		// House brand: both columns carry the full net. This is not a split —
		// the tienda is the marca, the breakdown just reports both views.
		marca = neto
		tienda = neto
	default:
		// DCE, Piso, and any unknown contract label: full net to the marca.
		marca = neto
		tienda = decimal.Zero
	}

	return RepartoVenta{
		ComisionTarjeta: comision,
		Neto:            neto,
		Marca:           marca,
		Tienda:          tienda,
	}
}

// CalcularCorte aggregates a period's sales and outflows into a settlement
// record. It is pure and deterministic: no I/O, no clock access, inputs are
// never mutated — calling it twice with the same inputs yields identical
// output. Persisting the result (and enforcing periodo uniqueness) is the
// caller's job.
func CalcularCorte(in CalculoCorte) (*model.Corte, error) {
	if in.FechaFin.Before(in.FechaInicio) {
		return nil, ErrRangoFechasInvalido
	}

	corte := &model.Corte{
		Periodo:     Periodo(in.FechaInicio),
		FechaInicio: in.FechaInicio,
		FechaFin:    in.FechaFin,
		GeneradoPor: in.GeneradoPor,

		TotalVentas:          decimal.Zero,
		TotalComisionTarjeta: decimal.Zero,
		TotalMarcas:          decimal.Zero,
		TotalTiendas:         decimal.Zero,
		TotalEgresos:         decimal.Zero,
	}

	// Rollup keyed by MarcaID; orden tracks first-seen order of brands in
	// the sale set so the breakdown is reproducible.
	porMarca := make(map[uuid.UUID]*model.CorteMarca)
	var ordenMarcas []uuid.UUID
	desconocidos := make(map[model.TipoContrato]bool)

	for i := range in.Ventas {
		v := &in.Ventas[i]

		if !v.TipoContrato.Valido() && !desconocidos[v.TipoContrato] {
			desconocidos[v.TipoContrato] = true
			log.Warn().
				Str("tipo_contrato", string(v.TipoContrato)).
				Str("venta_id", v.ID.String()).
				Msg("tipo de contrato desconocido, se reparte como DCE")
		}

		reparto := RepartirVenta(v)

		corte.TotalVentas = corte.TotalVentas.Add(v.Monto)
		corte.TotalComisionTarjeta = corte.TotalComisionTarjeta.Add(reparto.ComisionTarjeta)
		corte.TotalMarcas = corte.TotalMarcas.Add(reparto.Marca)
		corte.TotalTiendas = corte.TotalTiendas.Add(reparto.Tienda)
		corte.CantidadVentas++

		det, ok := porMarca[v.MarcaID]
		if !ok {
			det = &model.CorteMarca{
				MarcaID: v.MarcaID,
				Total:   decimal.Zero,
				Orden:   len(ordenMarcas),
			}
			porMarca[v.MarcaID] = det
			ordenMarcas = append(ordenMarcas, v.MarcaID)
		}
		det.Total = det.Total.Add(reparto.Marca)
		det.CantidadVentas++
		// Contract data is last-seen within the period; the per-sale split
		// above already honored each sale's own snapshot.
		det.TipoContrato = v.TipoContrato
		det.ValorContrato = v.ValorContrato
		if v.Marca != nil {
			det.MarcaNombre = v.Marca.Nombre
		}
	}

	for _, e := range in.Egresos {
		corte.TotalEgresos = corte.TotalEgresos.Add(e.Monto)
		corte.CantidadEgresos++
	}

	corte.Detalles = make([]model.CorteMarca, 0, len(ordenMarcas))
	for _, id := range ordenMarcas {
		corte.Detalles = append(corte.Detalles, *porMarca[id])
	}

	return corte, nil
}
