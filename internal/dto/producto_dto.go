package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Codigo      string          `json:"codigo"      validate:"required"`
	Nombre      string          `json:"nombre"      validate:"required,min=2"`
	Descripcion *string         `json:"descripcion"`
	MarcaID     string          `json:"marca_id"    validate:"required,uuid"`
	Precio      decimal.Decimal `json:"precio"      validate:"required,gt=0"`
	Stock       int             `json:"stock"       validate:"min=0"`
}

type ProductoResponse struct {
	ID          string          `json:"id"`
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion,omitempty"`
	MarcaID     string          `json:"marca_id"`
	MarcaNombre string          `json:"marca_nombre,omitempty"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	Activo      bool            `json:"activo"`
}

// ConsultaPrecioResponse is the cached payload of the public price endpoint.
type ConsultaPrecioResponse struct {
	Nombre      string          `json:"nombre"`
	Precio      decimal.Decimal `json:"precio"`
	MarcaNombre string          `json:"marca_nombre"`
	Stock       int             `json:"stock"`
}
