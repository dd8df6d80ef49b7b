package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/tienda-ropa/internal/application/inventario"
	"github.com/tu-usuario/tienda-ropa/internal/application/notify"
	"github.com/tu-usuario/tienda-ropa/internal/infrastructure/supabase"
	httpRouter "github.com/tu-usuario/tienda-ropa/internal/interfaces/http"
	"github.com/tu-usuario/tienda-ropa/pkg/config"
	"github.com/tu-usuario/tienda-ropa/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación de tienda")

	// Inyección explícita: cliente -> repositorio -> controlador, sin
	// singletons globales.
	client := supabase.NewClient(cfg.Supabase, log)
	client.Probar(context.Background(), cfg.Supabase.Tabla)

	repo := supabase.NewProductoRepository(client, cfg.Supabase.Tabla, log)
	notif := notify.NewQueue(cfg.Notificacion.Duracion, log)
	ctrl := inventario.NewController(repo, notif, log)

	// Carga inicial del catálogo; un fallo deja la tabla vacía con su
	// notificación, la aplicación levanta igual.
	ctrl.Cargar(context.Background())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ctrl:  ctrl,
		Notif: notif,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
