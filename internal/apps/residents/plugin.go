package residents

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

func (p *Plugin) ID() string { return "residents" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&Resident{},
		&Relative{},
		&VisitRecord{},
		&FinancialTransaction{},
		&PersonalItem{},
		&HealthUpdate{},
		&Medication{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewHandler(p.service)

	router.Get("/residents", handler.List)
	router.Post("/residents", handler.Create)
	router.Get("/residents/:id", handler.Get)
	router.Put("/residents/:id", handler.Update)
	router.Delete("/residents/:id", handler.Delete)

	router.Post("/residents/:id/relatives", handler.AddRelative)
	router.Put("/residents/:id/relatives", handler.ReplaceRelatives)
	router.Put("/residents/:id/relatives/:recordID", handler.UpdateRelative)
	router.Delete("/residents/:id/relatives/:recordID", handler.RemoveRelative)

	router.Post("/residents/:id/visits", handler.AddVisit)
	router.Put("/residents/:id/visits/:recordID", handler.UpdateVisit)
	router.Delete("/residents/:id/visits/:recordID", handler.RemoveVisit)

	router.Get("/residents/:id/balance", handler.GetBalance)
	router.Post("/residents/:id/financials", handler.AddFinancial)
	router.Put("/residents/:id/financials/:recordID", handler.UpdateFinancial)
	router.Delete("/residents/:id/financials/:recordID", handler.RemoveFinancial)

	router.Post("/residents/:id/items", handler.AddItem)
	router.Put("/residents/:id/items/:recordID", handler.UpdateItem)
	router.Delete("/residents/:id/items/:recordID", handler.RemoveItem)

	router.Post("/residents/:id/health-updates", handler.AddHealthUpdate)
	router.Put("/residents/:id/health-updates/:recordID", handler.UpdateHealthUpdate)
	router.Delete("/residents/:id/health-updates/:recordID", handler.RemoveHealthUpdate)

	router.Post("/residents/:id/medications", handler.AddMedication)
	router.Put("/residents/:id/medications/:recordID", handler.UpdateMedication)
	router.Delete("/residents/:id/medications/:recordID", handler.RemoveMedication)
}
