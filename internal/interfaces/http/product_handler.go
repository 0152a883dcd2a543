package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product, su disponibilidad y producción por lote.
type ProductHandler struct {
	uc           *usecase.ProductUseCase
	availability *inventory.AvailabilityUseCase
	production   *inventory.ProductionUseCase
	validator    *RequestValidator
}

// NewProductHandler construye el handler.
func NewProductHandler(
	uc *usecase.ProductUseCase,
	availability *inventory.AvailabilityUseCase,
	production *inventory.ProductionUseCase,
	v *RequestValidator,
) *ProductHandler {
	return &ProductHandler{uc: uc, availability: availability, production: production, validator: v}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if ok, err := parseAndValidate(c, h.validator, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Availability godoc
// @Summary      Consultar si se pueden vender N unidades
// @Tags         products
// @Produce      json
// @Param        id        path   string  true   "ID del producto"
// @Param        quantity  query  int     false  "Unidades solicitadas (0 solo consulta el máximo)"  default(0)
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/availability [get]
func (h *ProductHandler) Availability(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	quantity := c.QueryInt("quantity", 0)
	if quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity no puede ser negativo"})
	}
	out, err := h.availability.Check(c.UserContext(), id, quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Produce godoc
// @Summary      Producir lotes de un producto por lote
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del producto"
// @Param        body  body  dto.ProduceBatchRequest  true  "Cantidad de lotes"
// @Success      201   {object}  dto.ProduceBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockErrorResponse
// @Router       /api/products/{id}/production [post]
func (h *ProductHandler) Produce(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.ProduceBatchRequest
	if ok, err := parseAndValidate(c, h.validator, &in); !ok {
		return err
	}
	out, err := h.production.Produce(c.UserContext(), id, in.Batches)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
