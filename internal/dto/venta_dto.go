package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarVentaRequest struct {
	MarcaID    string  `json:"marca_id"    validate:"required,uuid"`
	ProductoID *string `json:"producto_id" validate:"omitempty,uuid"`

	Monto              decimal.Decimal `json:"monto"               validate:"required"`
	MontoEfectivo      decimal.Decimal `json:"monto_efectivo"      validate:"min=0"`
	MontoTarjeta       decimal.Decimal `json:"monto_tarjeta"       validate:"min=0"`
	MontoTransferencia decimal.Decimal `json:"monto_transferencia" validate:"min=0"`

	// Fecha "2006-01-02"; defaults to nothing — the caller must be explicit,
	// the server never fills in "today".
	Fecha string `json:"fecha" validate:"required,datetime=2006-01-02"`
}

type VentaFilter struct {
	FechaDesde string // "2006-01-02", optional
	FechaHasta string
	SinCorte   bool // only sales not yet absorbed by a corte
	Page       int
	Limit      int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaResponse struct {
	ID          string `json:"id"`
	MarcaID     string `json:"marca_id"`
	MarcaNombre string `json:"marca_nombre,omitempty"`
	ProductoID  *string `json:"producto_id,omitempty"`

	Monto              decimal.Decimal `json:"monto"`
	MontoEfectivo      decimal.Decimal `json:"monto_efectivo"`
	MontoTarjeta       decimal.Decimal `json:"monto_tarjeta"`
	MontoTransferencia decimal.Decimal `json:"monto_transferencia"`

	TipoContrato  string          `json:"tipo_contrato"`
	ValorContrato decimal.Decimal `json:"valor_contrato"`

	Fecha     string  `json:"fecha"`
	CorteID   *string `json:"corte_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
