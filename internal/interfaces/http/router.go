package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-ropa/internal/application/inventario"
	"github.com/tu-usuario/tienda-ropa/internal/application/notify"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ctrl  *inventario.Controller
	Notif *notify.Queue
}

// Router registra la superficie de eventos de UI: tabla, formulario de alta,
// modal de edición, modal de confirmación de borrado, buscador y refresco.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	productos := api.Group("/productos")
	h := NewProductoHandler(deps.Ctrl)
	productos.Get("/", h.Tabla)
	productos.Post("/", h.Crear)
	productos.Post("/refrescar", h.Refrescar)
	productos.Get("/buscar", h.Buscar)
	productos.Put("/editar", h.EnviarEdicion)
	productos.Post("/editar/cerrar", h.CerrarEdicion)
	productos.Post("/eliminar/confirmar", h.ConfirmarEliminacion)
	productos.Post("/eliminar/cancelar", h.CancelarEliminacion)
	productos.Post("/:id/editar", h.AbrirEdicion)
	productos.Post("/:id/eliminar", h.SolicitarEliminacion)

	nh := NewNotificacionHandler(deps.Notif)
	api.Get("/notificaciones", nh.Listar)
}
