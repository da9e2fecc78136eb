package entity

import "time"

// MovementType clasificación derivada de un movimiento según las ubicaciones informadas.
type MovementType string

// Tipos de movimiento.
const (
	MovementTypeTransfer MovementType = "TRANSFER"  // from y to
	MovementTypeStockIn  MovementType = "STOCK_IN"  // solo to
	MovementTypeStockOut MovementType = "STOCK_OUT" // solo from
	MovementTypeUnknown  MovementType = "UNKNOWN"   // ninguna (no persiste: la validación lo rechaza)
)

// Movement registra una cantidad de un producto que entra, sale o se traslada entre ubicaciones.
// Qty siempre es positiva; el sentido lo dan FromLocation/ToLocation (vacío = no informado).
type Movement struct {
	ID           string
	ProductID    string
	FromLocation string
	ToLocation   string
	Qty          int64
	Notes        string
	Timestamp    time.Time // asignado al crear, no editable
}

// Type clasifica el movimiento: traslado, entrada o salida.
func (m *Movement) Type() MovementType {
	return ClassifyMovement(m.FromLocation, m.ToLocation)
}

// ClassifyMovement devuelve el tipo a partir de las ubicaciones origen y destino.
func ClassifyMovement(from, to string) MovementType {
	switch {
	case from != "" && to != "":
		return MovementTypeTransfer
	case to != "":
		return MovementTypeStockIn
	case from != "":
		return MovementTypeStockOut
	default:
		return MovementTypeUnknown
	}
}
