package services

import (
	"errors"
	"fmt"

	"github.com/ssvp-lar/ilpi-backend/internal/dto"
	"github.com/ssvp-lar/ilpi-backend/internal/models"
	"gorm.io/gorm"
)

var ErrMissingSettingsFields = errors.New("nome e CNPJ são obrigatórios")

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the stored institution record, or the documented defaults
// before the first save.
func (s *SettingsService) Get() (models.InstitutionSettings, error) {
	var settings models.InstitutionSettings
	err := s.db.First(&settings, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultInstitutionSettings(), nil
	}
	if err != nil {
		return models.InstitutionSettings{}, err
	}
	return settings, nil
}

// Save overwrites the singleton record wholesale.
func (s *SettingsService) Save(req *dto.UpdateSettingsRequest) (models.InstitutionSettings, error) {
	if req.Name == "" || req.CNPJ == "" {
		return models.InstitutionSettings{}, ErrMissingSettingsFields
	}

	entityType := req.EntityType
	if entityType == "" {
		entityType = models.EntityObraUnida
	}

	settings := models.InstitutionSettings{
		ID:                  1,
		EntityType:          entityType,
		CouncilType:         req.CouncilType,
		Name:                req.Name,
		CNPJ:                req.CNPJ,
		City:                req.City,
		CentralCouncil:      req.CentralCouncil,
		MetropolitanCouncil: req.MetropolitanCouncil,
	}
	if err := s.db.Save(&settings).Error; err != nil {
		return models.InstitutionSettings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}
