package screening

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ssvp-lar/ilpi-backend/internal/config"
	"gorm.io/gorm"
)

type Plugin struct {
	service *Service
}

func New(service *Service) *Plugin {
	return &Plugin{service: service}
}

func (p *Plugin) ID() string { return "screening" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Candidate{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewHandler(p.service)

	router.Get("/screening/board", handler.Board)
	router.Get("/screening/archive-reasons", handler.ListArchiveReasons)
	router.Get("/screening/candidates", handler.List)
	router.Post("/screening/candidates", handler.Create)
	router.Get("/screening/candidates/:id", handler.Get)
	router.Put("/screening/candidates/:id", handler.Update)
	router.Post("/screening/candidates/:id/advance", handler.Advance)
	router.Post("/screening/candidates/:id/archive", handler.Archive)
	router.Post("/screening/candidates/:id/reopen", handler.Reopen)
}
