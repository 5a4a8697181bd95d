package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Pinger es lo que readiness necesita del almacenamiento.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AdminHandler endpoints operativos (fuera del esquema público).
type AdminHandler struct {
	db      Pinger
	version string
}

// NewAdminHandler construye el handler.
func NewAdminHandler(db Pinger, version string) *AdminHandler {
	return &AdminHandler{db: db, version: version}
}

// Liveness responde siempre OK mientras el proceso esté vivo.
func (h *AdminHandler) Liveness(c *fiber.Ctx) error {
	return c.SendString("OK")
}

// Readiness verifica la conexión a la base de datos.
func (h *AdminHandler) Readiness(c *fiber.Ctx) error {
	if err := h.db.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("DB no disponible")
	}
	return c.SendString("OK")
}

// ServiceVersion devuelve la versión desplegada.
func (h *AdminHandler) ServiceVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"version": h.version})
}
