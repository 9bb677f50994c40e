package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Marca is a brand partner selling through the tienda.
// TipoContrato/ValorContrato are the CURRENT contract; every Venta snapshots
// them at registration time so mid-period contract changes do not rewrite
// history.
type Marca struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"index;not null"`
	// Duenio is the contact name of the brand owner.
	Duenio       *string
	Telefono     *string
	TipoContrato TipoContrato `gorm:"type:varchar(30);not null"`
	// ValorContrato: percentage (0-100) for Porcentaje, monthly floor amount
	// for Piso, unused otherwise.
	ValorContrato decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Activo        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
