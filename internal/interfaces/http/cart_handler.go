package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/sales"
)

// CartHandler carrito único del punto de venta.
type CartHandler struct {
	uc        *sales.CartUseCase
	validator *RequestValidator
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *sales.CartUseCase, v *RequestValidator) *CartHandler {
	return &CartHandler{uc: uc, validator: v}
}

// View godoc
// @Summary      Ver carrito
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) View(c *fiber.Ctx) error {
	out, err := h.uc.View(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Description  La cantidad se recorta al máximo vendible con el stock actual (capped=true).
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if ok, err := parseAndValidate(c, h.validator, &in); !ok {
		return err
	}
	out, err := h.uc.AddItem(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetQuantity godoc
// @Summary      Fijar cantidad de un producto en el carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        productId  path  string                  true  "ID del producto"
// @Param        body       body  dto.SetCartItemRequest  true  "Cantidad (0 quita la línea)"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productId} [put]
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return missingID(c)
	}
	var in dto.SetCartItemRequest
	if ok, err := parseAndValidate(c, h.validator, &in); !ok {
		return err
	}
	out, err := h.uc.SetQuantity(c.UserContext(), productID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar producto del carrito
// @Tags         cart
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return missingID(c)
	}
	out, err := h.uc.RemoveItem(c.UserContext(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         cart
// @Success      204
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	h.uc.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}
