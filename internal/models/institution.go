package models

import "time"

// Entity types an institution record can declare.
const (
	EntityObraUnida = "obra_unida"
	EntityConselho  = "conselho"
)

// InstitutionSettings is a singleton row (ID is always 1) holding the
// registration data of the institution. Saves overwrite the whole record.
type InstitutionSettings struct {
	ID                  uint      `gorm:"primaryKey" json:"-"`
	EntityType          string    `gorm:"size:20;not null;default:'obra_unida'" json:"entity_type"`
	CouncilType         string    `gorm:"size:20" json:"council_type,omitempty"`
	Name                string    `gorm:"size:255;not null" json:"name"`
	CNPJ                string    `gorm:"size:18" json:"cnpj"`
	City                string    `gorm:"size:100" json:"city,omitempty"`
	CentralCouncil      string    `gorm:"size:100" json:"central_council,omitempty"`
	MetropolitanCouncil string    `gorm:"size:100" json:"metropolitan_council,omitempty"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// DefaultInstitutionSettings returns the record served before the first save.
func DefaultInstitutionSettings() InstitutionSettings {
	return InstitutionSettings{
		ID:                  1,
		EntityType:          EntityObraUnida,
		Name:                "Lar São Vicente de Paulo",
		CentralCouncil:      "Monte Alto",
		MetropolitanCouncil: "Jaboticabal",
	}
}
