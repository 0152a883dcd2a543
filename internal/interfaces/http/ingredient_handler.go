package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/shopspring/decimal"
)

// IngredientHandler maneja las peticiones HTTP de insumos y sus compras.
type IngredientHandler struct {
	uc                *inventory.IngredientUseCase
	replenishment     *inventory.ReplenishmentUseCase
	validator         *RequestValidator
	lowStockThreshold decimal.Decimal
}

// NewIngredientHandler construye el handler. lowStockThreshold es el % por defecto de /low-stock.
func NewIngredientHandler(
	uc *inventory.IngredientUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	v *RequestValidator,
	lowStockThreshold decimal.Decimal,
) *IngredientHandler {
	return &IngredientHandler{uc: uc, replenishment: replenishment, validator: v, lowStockThreshold: lowStockThreshold}
}

// Create godoc
// @Summary      Crear insumo
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIngredientRequest  true  "Datos del insumo"
// @Success      201   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients [post]
func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if ok, err := parseAndValidate(c, h.validator, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar insumos
// @Tags         ingredients
// @Produce      json
// @Success      200  {array}  dto.IngredientResponse
// @Router       /api/ingredients [get]
func (h *IngredientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener insumo por ID
// @Tags         ingredients
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.IngredientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [get]
func (h *IngredientHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "insumo no encontrado")
	}
	return c.JSON(out)
}

// AddPurchase godoc
// @Summary      Registrar compra (nuevo lote) de un insumo
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del insumo"
// @Param        body  body  dto.PurchaseRequest  true  "Compra"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/purchases [post]
func (h *IngredientHandler) AddPurchase(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.PurchaseRequest
	if ok, err := parseAndValidate(c, h.validator, &in); !ok {
		return err
	}
	out, err := h.uc.AddPurchase(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// LowStock godoc
// @Summary      Insumos con stock bajo
// @Tags         ingredients
// @Produce      json
// @Param        threshold  query  number  false  "Umbral en % de la cantidad máxima"
// @Success      200  {array}  dto.LowStockItem
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ingredients/low-stock [get]
func (h *IngredientHandler) LowStock(c *fiber.Ctx) error {
	threshold, ok := h.threshold(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold inválido"})
	}
	out, err := h.uc.LowStock(c.UserContext(), threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Lista de compras sugerida
// @Description  Insumos bajo el umbral con la cantidad para volver al máximo, ordenados por prioridad.
// @Tags         ingredients
// @Produce      json
// @Param        threshold  query  number  false  "Umbral en % de la cantidad máxima"
// @Success      200  {array}  dto.ReplenishmentSuggestion
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ingredients/replenishment [get]
func (h *IngredientHandler) Replenishment(c *fiber.Ctx) error {
	threshold, ok := h.threshold(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold inválido"})
	}
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *IngredientHandler) threshold(c *fiber.Ctx) (decimal.Decimal, bool) {
	raw := c.Query("threshold")
	if raw == "" {
		return h.lowStockThreshold, true
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || v.IsNegative() {
		return decimal.Zero, false
	}
	return v, true
}
