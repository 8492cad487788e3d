package reports

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ssvp-lar/ilpi-backend/internal/apps/residents"
	"github.com/ssvp-lar/ilpi-backend/internal/apps/screening"
	"github.com/ssvp-lar/ilpi-backend/internal/config"
	"github.com/ssvp-lar/ilpi-backend/internal/services"
	"gorm.io/gorm"
)

type Plugin struct {
	residents *residents.Service
	screening *screening.Service
	settings  *services.SettingsService
}

func New(residentService *residents.Service, screeningService *screening.Service, settingsService *services.SettingsService) *Plugin {
	return &Plugin{
		residents: residentService,
		screening: screeningService,
		settings:  settingsService,
	}
}

func (p *Plugin) ID() string { return "reports" }

func (p *Plugin) Models() []interface{} { return nil }

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewHandler(p.residents, p.screening, p.settings)

	router.Get("/reports/residents.xlsx", handler.ResidentCensus)
	router.Get("/reports/waitlist.xlsx", handler.Waitlist)
	router.Get("/reports/residents/:id", handler.ResidentFile)
	router.Get("/reports/screening/:id", handler.ScreeningForm)
}
