package model

// TipoContrato defines how a sale's net proceeds (after card commission) are
// split between the marca and the tienda. The string values are the contract
// labels used by the partner agreements — they travel as-is through the API
// and are snapshotted onto each Venta at registration time.
type TipoContrato string

const (
	// ContratoDCE: the full net goes to the marca; the tienda settles
	// through a separate fixed fee outside the corte.
	ContratoDCE TipoContrato = "DCE"
	// ContratoPiso: floor rental — same split as DCE, the floor amount is
	// invoiced independently.
	ContratoPiso TipoContrato = "Piso"
	// ContratoPorcentaje: the tienda keeps ValorContrato percent of the net,
	// the marca receives the rest.
	ContratoPorcentaje TipoContrato = "Porcentaje"
	// ContratoEsteticaUnisex: house brand — both columns carry the full net
	// (the tienda IS the marca, the split is bookkeeping only).
	ContratoEsteticaUnisex TipoContrato = "Estetica Unisex"
)

// ParseTipoContrato maps a raw contract label to its typed value.
// ok is false for unknown labels; callers decide whether that is an error
// (marca registration) or a permissive default (settlement).
func ParseTipoContrato(s string) (TipoContrato, bool) {
	switch TipoContrato(s) {
	case ContratoDCE, ContratoPiso, ContratoPorcentaje, ContratoEsteticaUnisex:
		return TipoContrato(s), true
	}
	return "", false
}

// Valido reports whether t is one of the known contract types.
func (t TipoContrato) Valido() bool {
	_, ok := ParseTipoContrato(string(t))
	return ok
}
