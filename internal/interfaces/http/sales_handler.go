package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/sales"
)

// SalesHandler ventas walk-in y estados de entrega.
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// RegisterWalkIn godoc
// @Summary      Registrar venta walk-in
// @Description  Crea la orden de compra y descuenta el stock de cada línea en una transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WalkInSaleRequest  true  "Venta"
// @Success      201   {object}  dto.WalkInSaleResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/walk-in [post]
func (h *SalesHandler) RegisterWalkIn(c *fiber.Ctx) error {
	var in dto.WalkInSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RegisterWalkIn(c.UserContext(), tokenUserID(c), in)
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ChangeDeliveryStatus godoc
// @Summary      Cambiar estado de una entrega
// @Description  Entrar en S descuenta el stock y fija delivered_at; salir de S lo restaura.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la entrega"
// @Param        body  body  dto.DeliveryStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.DeliveryStatusResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/status [patch]
func (h *SalesHandler) ChangeDeliveryStatus(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err, "")
	}
	var in dto.DeliveryStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ChangeDeliveryStatus(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err, "entrega no encontrada")
	}
	return c.JSON(out)
}
