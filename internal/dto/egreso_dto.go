package dto

import "github.com/shopspring/decimal"

type RegistrarEgresoRequest struct {
	Monto      decimal.Decimal `json:"monto"       validate:"required"`
	Concepto   string          `json:"concepto"    validate:"required,min=3"`
	MetodoPago string          `json:"metodo_pago" validate:"required,oneof=efectivo tarjeta transferencia"`
	Fecha      string          `json:"fecha"       validate:"required,datetime=2006-01-02"`
}

type EgresoResponse struct {
	ID         string          `json:"id"`
	Monto      decimal.Decimal `json:"monto"`
	Concepto   string          `json:"concepto"`
	MetodoPago string          `json:"metodo_pago"`
	Fecha      string          `json:"fecha"`
	CorteID    *string         `json:"corte_id,omitempty"`
	CreatedAt  string          `json:"created_at"`
}
