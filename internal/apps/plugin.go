package apps

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ssvp-lar/ilpi-backend/internal/config"
	"gorm.io/gorm"
)

// Plugin defines the interface every module of the system implements.
type Plugin interface {
	// ID returns the unique module identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts module routes on the given Fiber group.
	// The group is already prefixed with /api and has JWT middleware applied.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
