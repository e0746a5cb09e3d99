package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
)

// RestockHandler órdenes de reabastecimiento.
type RestockHandler struct {
	uc *inventory.RestockUseCase
}

// NewRestockHandler construye el handler.
func NewRestockHandler(uc *inventory.RestockUseCase) *RestockHandler {
	return &RestockHandler{uc: uc}
}

// List godoc
// @Summary      Listar órdenes de reabastecimiento
// @Tags         restock-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RestockOrderResponse
// @Router       /api/restock-orders [get]
func (h *RestockHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear orden de reabastecimiento
// @Description  Suma la cantidad al stock del producto en la misma transacción.
// @Tags         restock-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RestockOrderRequest  true  "Orden"
// @Success      201   {object}  dto.CreateRestockOrderResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/restock-orders [post]
func (h *RestockHandler) Create(c *fiber.Ctx) error {
	var in dto.RestockOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), tokenUserID(c), in)
	if err != nil {
		return writeError(c, err, "orden no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una orden
// @Tags         restock-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.RestockOrderDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restock-orders/{id} [get]
func (h *RestockHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err, "")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "orden no encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar orden de reabastecimiento
// @Description  Revierte la cantidad anterior y aplica la nueva de forma atómica.
// @Tags         restock-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la orden"
// @Param        body  body  dto.RestockOrderRequest  true  "Orden"
// @Success      200   {object}  dto.RestockOrderResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/restock-orders/{id} [put]
func (h *RestockHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err, "")
	}
	var in dto.RestockOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, tokenUserID(c), in)
	if err != nil {
		return writeError(c, err, "orden no encontrada")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden de reabastecimiento
// @Tags         restock-orders
// @Security     Bearer
// @Param        id   path  int  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restock-orders/{id} [delete]
func (h *RestockHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err, "")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err, "orden no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ProductSummary godoc
// @Summary      Órdenes de reabastecimiento de un producto
// @Tags         restock-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductRestockSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/restock-orders [get]
func (h *RestockHandler) ProductSummary(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err, "")
	}
	out, err := h.uc.ProductSummary(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	return c.JSON(out)
}
