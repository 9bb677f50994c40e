package dto

import "github.com/shopspring/decimal"

type CrearMarcaRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=2"`
	Duenio   *string `json:"duenio"`
	Telefono *string `json:"telefono"`
	// TipoContrato: DCE | Piso | Porcentaje | Estetica Unisex
	TipoContrato  string          `json:"tipo_contrato"  validate:"required"`
	ValorContrato decimal.Decimal `json:"valor_contrato" validate:"min=0,max=100"`
}

type ActualizarMarcaRequest struct {
	Nombre        *string          `json:"nombre"         validate:"omitempty,min=2"`
	Duenio        *string          `json:"duenio"`
	Telefono      *string          `json:"telefono"`
	TipoContrato  *string          `json:"tipo_contrato"`
	ValorContrato *decimal.Decimal `json:"valor_contrato" validate:"omitempty,min=0,max=100"`
}

type MarcaResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Duenio        *string         `json:"duenio,omitempty"`
	Telefono      *string         `json:"telefono,omitempty"`
	TipoContrato  string          `json:"tipo_contrato"`
	ValorContrato decimal.Decimal `json:"valor_contrato"`
	Activo        bool            `json:"activo"`
}
