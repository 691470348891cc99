package transfer

import "github.com/shopspring/decimal"

// Number cantidad o monto de los cuerpos enviados a la API remota.
// decimal.Decimal se serializa como string ("2500"); la API exige números JSON (2500).
type Number struct {
	decimal.Decimal
}

// NewNumber envuelve d.
func NewNumber(d decimal.Decimal) Number {
	return Number{Decimal: d}
}

// MarshalJSON escribe el valor sin comillas y sin pasar por float64.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

// UnmarshalJSON acepta 2500 o "2500".
func (n *Number) UnmarshalJSON(data []byte) error {
	return n.Decimal.UnmarshalJSON(data)
}
