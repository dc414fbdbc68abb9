package entity

// Códigos de tipo de movimiento sembrados en movement_types.
const (
	MovementCodeIN         = "IN"         // entrada al almacén
	MovementCodeOUT        = "OUT"        // salida / despacho
	MovementCodeRETURN     = "RETURN"     // devolución
	MovementCodeDAMAGED    = "DAMAGED"    // baja por daño
	MovementCodeADJUSTMENT = "ADJUSTMENT" // inventario físico: fija la cantidad
	MovementCodeTRANSFER   = "TRANSFER"   // traslado entre departamentos / pisos
)

// MovementType entrada del catálogo de tipos de movimiento.
// Effect es el multiplicador con signo (+1, -1, 0); ADJUSTMENT lo ignora.
type MovementType struct {
	ID          int64
	Name        string
	Code        string
	Effect      int
	Description *string
	IsActive    bool
}

// IsAdjustment indica si el tipo fija la cantidad en lugar de sumarla.
func (t *MovementType) IsAdjustment() bool { return t.Code == MovementCodeADJUSTMENT }
