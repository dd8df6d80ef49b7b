package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-ropa/internal/application/dto"
	"github.com/tu-usuario/tienda-ropa/internal/application/inventario"
)

// ProductoHandler traduce los eventos de la UI (formularios, buscador,
// modales, botón de refresco) a los puntos de entrada del controlador.
type ProductoHandler struct {
	ctrl *inventario.Controller
}

// NewProductoHandler construye el handler.
func NewProductoHandler(ctrl *inventario.Controller) *ProductoHandler {
	return &ProductoHandler{ctrl: ctrl}
}

// Tabla devuelve la vista filtrada vigente para render de la tabla.
func (h *ProductoHandler) Tabla(c *fiber.Ctx) error {
	return c.JSON(dto.AListaResponse(h.ctrl.Filtrados()))
}

// Refrescar dispara una carga completa del catálogo (botón de refresco).
func (h *ProductoHandler) Refrescar(c *fiber.Ctx) error {
	res := h.ctrl.Cargar(c.Context())
	status := fiber.StatusOK
	if !res.Success {
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(dto.MensajeResponse{Success: res.Success, Message: res.Message})
}

// Crear procesa el formulario de alta de producto.
func (h *ProductoHandler) Crear(c *fiber.Ctx) error {
	var in dto.ProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res := h.ctrl.CrearProducto(c.Context(), in)
	if !res.Success {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MensajeResponse{Success: false, Message: res.Message})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MensajeResponse{Success: true, Message: res.Message})
}

// Buscar registra el término del buscador; la vista se recalcula tras el
// debounce, por eso responde 202 y la UI vuelve a pedir la tabla.
func (h *ProductoHandler) Buscar(c *fiber.Ctx) error {
	h.ctrl.Buscar(c.Query("q"))
	return c.SendStatus(fiber.StatusAccepted)
}

// AbrirEdicion carga el producto al formulario de edición (modal).
func (h *ProductoHandler) AbrirEdicion(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	res := h.ctrl.AbrirEdicion(c.Context(), id)
	if !res.Success {
		return c.Status(fiber.StatusNotFound).JSON(dto.MensajeResponse{Success: false, Message: res.Message})
	}
	return c.JSON(dto.AProductoResponse(*res.Data))
}

// EnviarEdicion guarda el formulario de edición sobre el producto abierto.
func (h *ProductoHandler) EnviarEdicion(c *fiber.Ctx) error {
	var in dto.ProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res := h.ctrl.EnviarEdicion(c.Context(), in)
	if !res.Success {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MensajeResponse{Success: false, Message: res.Message})
	}
	return c.JSON(dto.MensajeResponse{Success: true, Message: res.Message})
}

// CerrarEdicion descarta la edición abierta (cerrar modal).
func (h *ProductoHandler) CerrarEdicion(c *fiber.Ctx) error {
	h.ctrl.CerrarEdicion()
	return c.SendStatus(fiber.StatusNoContent)
}

// SolicitarEliminacion registra el objetivo y abre la confirmación.
func (h *ProductoHandler) SolicitarEliminacion(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	h.ctrl.SolicitarEliminacion(id)
	return c.SendStatus(fiber.StatusNoContent)
}

// ConfirmarEliminacion ejecuta el borrado pendiente.
func (h *ProductoHandler) ConfirmarEliminacion(c *fiber.Ctx) error {
	res := h.ctrl.ConfirmarEliminacion(c.Context())
	if !res.Success {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MensajeResponse{Success: false, Message: res.Message})
	}
	return c.JSON(dto.MensajeResponse{Success: true, Message: res.Message})
}

// CancelarEliminacion limpia el objetivo pendiente (cerrar modal).
func (h *ProductoHandler) CancelarEliminacion(c *fiber.Ctx) error {
	h.ctrl.CancelarEliminacion()
	return c.SendStatus(fiber.StatusNoContent)
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
