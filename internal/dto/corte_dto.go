package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type GenerarCorteRequest struct {
	// Dates in "2006-01-02" format, both inclusive.
	FechaInicio string `json:"fecha_inicio" validate:"required,datetime=2006-01-02"`
	FechaFin    string `json:"fecha_fin"    validate:"required,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CorteMarcaResponse struct {
	MarcaID        string          `json:"marca_id"`
	MarcaNombre    string          `json:"marca_nombre"`
	TipoContrato   string          `json:"tipo_contrato"`
	ValorContrato  decimal.Decimal `json:"valor_contrato"`
	Total          decimal.Decimal `json:"total"`
	CantidadVentas int             `json:"cantidad_ventas"`
}

type CorteResponse struct {
	ID          string `json:"id"`
	Periodo     string `json:"periodo"`
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`

	TotalVentas          decimal.Decimal `json:"total_ventas"`
	TotalComisionTarjeta decimal.Decimal `json:"total_comision_tarjeta"`
	TotalMarcas          decimal.Decimal `json:"total_marcas"`
	TotalTiendas         decimal.Decimal `json:"total_tiendas"`
	TotalEgresos         decimal.Decimal `json:"total_egresos"`

	CantidadVentas  int `json:"cantidad_ventas"`
	CantidadEgresos int `json:"cantidad_egresos"`

	Detalles []CorteMarcaResponse `json:"detalles"`

	GeneradoPor string `json:"generado_por"`
	CreatedAt   string `json:"created_at"`
}

type CorteListResponse struct {
	Data  []CorteResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
