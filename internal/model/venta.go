package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is an immutable sale record. Monetary fields use decimal(12,2);
// MontoEfectivo + MontoTarjeta + MontoTransferencia must equal Monto
// (enforced at registration, trusted afterwards).
//
// TipoContrato/ValorContrato are snapshots of the marca's contract at sale
// time — the corte reads the snapshot, never the live marca row.
type Venta struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MarcaID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProductoID *uuid.UUID `gorm:"type:uuid;index"`
	UsuarioID  uuid.UUID  `gorm:"type:uuid;not null"`

	Monto              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoEfectivo      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontoTarjeta       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontoTransferencia decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	TipoContrato  TipoContrato    `gorm:"type:varchar(30);not null"`
	ValorContrato decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	// Fecha is the calendar date the sale occurred — authoritative for
	// period membership, independent of CreatedAt.
	Fecha time.Time `gorm:"type:date;index;not null"`

	// CorteID is set when the sale is included in a settlement; a non-nil
	// value means the sale belongs to closed history.
	CorteID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time

	Marca    *Marca    `gorm:"foreignKey:MarcaID"`
	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
