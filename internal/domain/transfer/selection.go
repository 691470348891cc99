package transfer

import (
	"sort"
	"strings"

	"github.com/jhoicas/Inventario-transfers/internal/domain"
	"github.com/shopspring/decimal"
)

// SelectionItem línea seleccionada para trasladar.
type SelectionItem struct {
	ProductID string
	Name      string
	Quantity  decimal.Decimal // > 0
	UnitPrice decimal.Decimal // >= 0
	CostPrice decimal.Decimal // >= 0
}

// Subtotal devuelve Quantity × UnitPrice.
func (i SelectionItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Validate verifica cantidad positiva y precios no negativos.
func (i SelectionItem) Validate() error {
	if strings.TrimSpace(i.ProductID) == "" {
		return domain.ErrInvalidInput
	}
	if !i.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if i.UnitPrice.LessThan(decimal.Zero) || i.CostPrice.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// Selection mapa productID → línea. No es seguro para uso concurrente:
// su único dueño es el formulario que lo creó.
type Selection struct {
	items map[string]SelectionItem
}

// NewSelection crea una selección vacía.
func NewSelection() *Selection {
	return &Selection{items: make(map[string]SelectionItem)}
}

// Set agrega o reemplaza la línea del producto.
func (s *Selection) Set(item SelectionItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if s.items == nil {
		s.items = make(map[string]SelectionItem)
	}
	s.items[item.ProductID] = item
	return nil
}

// Remove quita la línea del producto (no-op si no existe).
func (s *Selection) Remove(productID string) {
	delete(s.items, productID)
}

// Clear vacía la selección.
func (s *Selection) Clear() {
	s.items = make(map[string]SelectionItem)
}

// Len número de líneas.
func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items devuelve las líneas ordenadas por productID.
func (s *Selection) Items() []SelectionItem {
	if s == nil {
		return nil
	}
	out := make([]SelectionItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// Total devuelve Σ(qty × unitPrice).
func (s *Selection) Total() decimal.Decimal {
	total := decimal.Zero
	if s == nil {
		return total
	}
	for _, it := range s.items {
		total = total.Add(it.Subtotal())
	}
	return total
}
