package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/sales"
)

// SaleHandler confirmación, vista previa, historial y comprobantes de venta.
type SaleHandler struct {
	confirm   *sales.ConfirmSaleUseCase
	cart      *sales.CartUseCase
	query     *sales.QueryUseCase
	receipt   *sales.ReceiptUseCase
	validator *RequestValidator
}

// NewSaleHandler construye el handler.
func NewSaleHandler(
	confirm *sales.ConfirmSaleUseCase,
	cart *sales.CartUseCase,
	query *sales.QueryUseCase,
	receipt *sales.ReceiptUseCase,
	v *RequestValidator,
) *SaleHandler {
	return &SaleHandler{confirm: confirm, cart: cart, query: query, receipt: receipt, validator: v}
}

// Create godoc
// @Summary      Confirmar venta con líneas explícitas
// @Description  Valida todas las líneas contra el stock y descuenta insumos o unidades producidas. Todo o nada.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Líneas, medio de pago y descuento"
// @Success      201   {object}  dto.SaleConfirmationResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if ok, err := parseAndValidate(c, h.validator, &in); !ok {
		return err
	}
	out, err := h.confirm.Confirm(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Checkout godoc
// @Summary      Confirmar el carrito
// @Description  El carrito se vacía solo si la venta queda registrada.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Medio de pago y descuento"
// @Success      201   {object}  dto.SaleConfirmationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockErrorResponse
// @Router       /api/sales/checkout [post]
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if ok, err := parseAndValidate(c, h.validator, &in); !ok {
		return err
	}
	out, err := h.cart.Checkout(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Preview godoc
// @Summary      Vista previa del resumen de venta
// @Description  Sin items usa el contenido del carrito. No modifica stock.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PreviewRequest  true  "Líneas (opcional), medio de pago y descuento"
// @Success      200   {object}  dto.SalePreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales/preview [post]
func (h *SaleHandler) Preview(c *fiber.Ctx) error {
	var in dto.PreviewRequest
	if ok, err := parseAndValidate(c, h.validator, &in); !ok {
		return err
	}
	if len(in.Items) == 0 {
		in.Items = h.cart.Lines()
	}
	out, err := h.query.Preview(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Historial de ventas
// @Tags         sales
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Success      200  {object}  dto.SaleListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.query.List(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.query.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "venta no encontrada")
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar comprobante PDF de una venta
// @Tags         sales
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	pdf, filename, err := h.receipt.Download(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

// parseDateRange lee from/to (YYYY-MM-DD, hora local). to cubre el día completo.
func parseDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if raw := c.Query("from"); raw != "" {
		t, perr := time.ParseInLocation(time.DateOnly, raw, time.Local)
		if perr != nil {
			return nil, nil, errors.New("from inválido, formato YYYY-MM-DD")
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, perr := time.ParseInLocation(time.DateOnly, raw, time.Local)
		if perr != nil {
			return nil, nil, errors.New("to inválido, formato YYYY-MM-DD")
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, errors.New("to no puede ser anterior a from")
	}
	return from, to, nil
}
