package dto

type CreateUserRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

type UpdateSettingsRequest struct {
	EntityType          string `json:"entity_type"`
	CouncilType         string `json:"council_type"`
	Name                string `json:"name"`
	CNPJ                string `json:"cnpj"`
	City                string `json:"city"`
	CentralCouncil      string `json:"central_council"`
	MetropolitanCouncil string `json:"metropolitan_council"`
}
