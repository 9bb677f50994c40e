package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Corte is the immutable settlement record for one period. Once persisted it
// closes the period: the unique index on Periodo is the arbiter against
// concurrent generation, and ventas dated inside [FechaInicio, FechaFin] are
// rejected afterwards.
//
// Cortes are never updated. Deletion exists only as an explicit admin
// override that also restores the linked ventas/egresos to unsettled state.
type Corte struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Periodo is MM + two-digit year of FechaInicio, e.g. "0125" for any
	// corte starting in January 2025.
	Periodo     string    `gorm:"type:varchar(4);uniqueIndex;not null"`
	FechaInicio time.Time `gorm:"type:date;not null"`
	FechaFin    time.Time `gorm:"type:date;not null"`

	TotalVentas          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalComisionTarjeta decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalMarcas          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalTiendas         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalEgresos         decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	CantidadVentas  int `gorm:"not null"`
	CantidadEgresos int `gorm:"not null"`

	GeneradoPor uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time

	Detalles []CorteMarca `gorm:"foreignKey:CorteID"`
}

// CorteMarca is the per-brand rollup inside a corte. Keyed by MarcaID (stable
// identifier); MarcaNombre is carried as a display attribute only. Orden
// preserves first-seen order of the brands in the sale set.
type CorteMarca struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CorteID uuid.UUID `gorm:"type:uuid;index;not null"`
	MarcaID uuid.UUID `gorm:"type:uuid;index;not null"`

	MarcaNombre  string       `gorm:"not null"`
	TipoContrato TipoContrato `gorm:"type:varchar(30);not null"`
	// ValorContrato is last-seen within the period: if a brand's contract
	// changed mid-period the breakdown shows the latest snapshot, while the
	// per-sale split already honored each sale's own snapshot.
	ValorContrato decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Total          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CantidadVentas int             `gorm:"not null"`
	Orden          int             `gorm:"not null"`
}
