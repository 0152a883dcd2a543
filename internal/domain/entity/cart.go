package entity

import "time"

// CartLine línea del carrito en curso.
type CartLine struct {
	ProductID string
	Quantity  int
}

// Cart carrito del punto de venta (estado transitorio, no se persiste como venta).
type Cart struct {
	Lines     []CartLine
	UpdatedAt time.Time
}

// IsEmpty indica si no hay líneas.
func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// QuantityOf cantidad actual de un producto en el carrito.
func (c *Cart) QuantityOf(productID string) int {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}

// Set fija la cantidad de un producto; qty <= 0 elimina la línea.
func (c *Cart) Set(productID string, qty int) {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			if qty <= 0 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			} else {
				c.Lines[i].Quantity = qty
			}
			return
		}
	}
	if qty > 0 {
		c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: qty})
	}
}

// Remove elimina la línea del producto. Devuelve false si no estaba.
func (c *Cart) Remove(productID string) bool {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clear vacía el carrito.
func (c *Cart) Clear() { c.Lines = nil }
