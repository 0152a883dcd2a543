package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse error de validación con detalle por campo (nombre json).
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// StockErrorResponse venta rechazada por stock insuficiente.
// MissingIngredients lista insumos faltantes (individual) o el mensaje de disponibilidad (lote).
type StockErrorResponse struct {
	Code               string   `json:"code"`
	Message            string   `json:"message"`
	ProductID          string   `json:"product_id"`
	ProductName        string   `json:"product_name"`
	Requested          int      `json:"requested"`
	IsBatch            bool     `json:"is_batch"`
	MissingIngredients []string `json:"missing_ingredients"`
}
