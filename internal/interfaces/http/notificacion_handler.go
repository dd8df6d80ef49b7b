package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-ropa/internal/application/notify"
)

// NotificacionHandler expone las notificaciones visibles para la UI.
type NotificacionHandler struct {
	queue *notify.Queue
}

// NewNotificacionHandler construye el handler.
func NewNotificacionHandler(queue *notify.Queue) *NotificacionHandler {
	return &NotificacionHandler{queue: queue}
}

// Listar devuelve las notificaciones activas en orden de llegada.
func (h *NotificacionHandler) Listar(c *fiber.Ctx) error {
	return c.JSON(h.queue.Activas())
}
