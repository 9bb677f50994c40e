package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Egreso is a cash outflow (supplies, services, withdrawals). Egresos are
// informational in the corte: they are summed but do not participate in the
// marca/tienda split.
type Egreso struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Monto      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Concepto   string          `gorm:"not null"`
	MetodoPago string          `gorm:"type:varchar(30);not null;default:'efectivo'"`
	Fecha      time.Time       `gorm:"type:date;index;not null"`
	UsuarioID  uuid.UUID       `gorm:"type:uuid;not null"`

	// CorteID links the egreso to the settlement that absorbed it.
	CorteID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
}
