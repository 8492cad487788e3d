package residents

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resident is the case file of an admitted elder. Dates arrive from the
// client as ISO strings (YYYY-MM-DD) and are stored as-is; several of the
// administrative fields are free text on the official paper form.
type Resident struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Photo string    `gorm:"type:text" json:"photo,omitempty"`

	// Identification
	Name               string `gorm:"size:255;not null;index" json:"name"`
	Gender             string `gorm:"size:20" json:"gender"`
	BirthDate          string `gorm:"size:10" json:"birth_date"`
	Nationality        string `gorm:"size:100" json:"nationality"`
	Naturalness        string `gorm:"size:100" json:"naturalness"`
	MaritalStatus      string `gorm:"size:50" json:"marital_status"`
	Education          string `gorm:"size:100" json:"education"`
	FatherName         string `gorm:"size:255" json:"father_name"`
	MotherName         string `gorm:"size:255" json:"mother_name"`
	Nickname           string `gorm:"size:100" json:"nickname"`
	Profession         string `gorm:"size:100" json:"profession"`
	Spouse             string `gorm:"size:255" json:"spouse"`
	PreferredHospitals string `gorm:"size:255" json:"preferred_hospitals"`
	Observations       string `gorm:"type:text" json:"observations"`

	// Civil documents
	CPF          string `gorm:"size:14;index" json:"cpf"`
	RG           string `gorm:"size:20" json:"rg"`
	IssuingBody  string `gorm:"size:20" json:"issuing_body"`
	VoterTitle   string `gorm:"size:20" json:"voter_title"`
	VoterSection string `gorm:"size:10" json:"voter_section"`
	VoterZone    string `gorm:"size:10" json:"voter_zone"`
	CertType     string `gorm:"size:50" json:"cert_type"`
	CertNumber   string `gorm:"size:50" json:"cert_number"`
	CertPage     string `gorm:"size:10" json:"cert_page"`
	CertBook     string `gorm:"size:10" json:"cert_book"`
	CertCity     string `gorm:"size:100" json:"cert_city"`
	CertState    string `gorm:"size:2" json:"cert_state"`
	CertDate     string `gorm:"size:10" json:"cert_date"`

	// Benefit and insurance cards
	SAMSCard   string `gorm:"size:30" json:"sams_card"`
	SUSCard    string `gorm:"size:30" json:"sus_card"`
	CadUnico   string `gorm:"size:30" json:"cad_unico"`
	INSSNumber string `gorm:"size:30" json:"inss_number"`
	INSSType   string `gorm:"size:50" json:"inss_type"`
	INSSStatus string `gorm:"size:50" json:"inss_status"`

	// Address
	CEP           string `gorm:"size:9" json:"cep"`
	City          string `gorm:"size:100" json:"city"`
	State         string `gorm:"size:2" json:"state"`
	Neighborhood  string `gorm:"size:100" json:"neighborhood"`
	Address       string `gorm:"size:255" json:"address"`
	AddressNumber string `gorm:"size:10" json:"address_number"`
	Reference     string `gorm:"size:255" json:"reference"`
	Complement    string `gorm:"size:100" json:"complement"`

	// Admission
	StayType            string `gorm:"size:50" json:"stay_type"`
	AdmissionDate       string `gorm:"size:10" json:"admission_date"`
	Room                string `gorm:"size:50" json:"room"`
	Income              string `gorm:"size:50" json:"income"`
	AdmissionReason     string `gorm:"type:text" json:"admission_reason"`
	ResidentGroup       string `gorm:"size:100" json:"resident_group"`
	DependencyLevel     string `gorm:"size:50" json:"dependency_level"`
	PreviousInstitution string `gorm:"size:255" json:"previous_institution"`
	StayTime            string `gorm:"size:50" json:"stay_time"`
	ChangeReason        string `gorm:"size:255" json:"change_reason"`

	Relatives     []Relative             `gorm:"foreignKey:ResidentID;constraint:OnDelete:CASCADE" json:"relatives"`
	VisitRecords  []VisitRecord          `gorm:"foreignKey:ResidentID;constraint:OnDelete:CASCADE" json:"visit_records"`
	Financials    []FinancialTransaction `gorm:"foreignKey:ResidentID;constraint:OnDelete:CASCADE" json:"financials"`
	PersonalItems []PersonalItem         `gorm:"foreignKey:ResidentID;constraint:OnDelete:CASCADE" json:"personal_items"`
	HealthUpdates []HealthUpdate         `gorm:"foreignKey:ResidentID;constraint:OnDelete:CASCADE" json:"health_updates"`
	Medications   []Medication           `gorm:"foreignKey:ResidentID;constraint:OnDelete:CASCADE" json:"medications"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Relative is a family contact. At most one relative per resident carries
// IsResponsible; the service repairs the flag on every write.
type Relative struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResidentID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Kinship       string    `gorm:"size:50" json:"kinship"`
	Phone         string    `gorm:"size:20" json:"phone"`
	Observation   string    `gorm:"size:255" json:"observation"`
	IsResponsible bool      `gorm:"default:false" json:"is_responsible"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type VisitRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResidentID  uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Date        string    `gorm:"size:10" json:"date"`
	VisitorName string    `gorm:"size:255" json:"visitor_name"`
	VisitorDoc  string    `gorm:"size:20" json:"visitor_doc"`
	TimeIn      string    `gorm:"size:5" json:"time_in"`
	TimeOut     string    `gorm:"size:5" json:"time_out"`
	Observation string    `gorm:"size:255" json:"observation"`
	CreatedAt   time.Time `json:"created_at"`
}

// Financial transaction types.
const (
	TransactionEntrada = "entrada"
	TransactionSaida   = "saída"
)

type FinancialTransaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResidentID  uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Date        string    `gorm:"size:10" json:"date"`
	Type        string    `gorm:"size:10;not null" json:"type"`
	Description string    `gorm:"size:255" json:"description"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type PersonalItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResidentID  uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Status      string    `gorm:"size:10" json:"status"` // Entrada | Saída
	Date        string    `gorm:"size:10" json:"date"`
	Observation string    `gorm:"size:255" json:"observation"`
	CreatedAt   time.Time `json:"created_at"`
}

type HealthUpdate struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResidentID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Date         string    `gorm:"size:10" json:"date"`
	Summary      string    `gorm:"size:255" json:"summary"`
	Professional string    `gorm:"size:255" json:"professional"`
	Observation  string    `gorm:"type:text" json:"observation"`
	CreatedAt    time.Time `json:"created_at"`
}

// Medications at or below this stock count are flagged in list views.
const LowStockThreshold = 5

type Medication struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResidentID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Dosage     string    `gorm:"size:100" json:"dosage"`
	Frequency  string    `gorm:"size:100" json:"frequency"`
	Stock      int       `gorm:"default:0" json:"stock"`
	LastUpdate string    `gorm:"size:10" json:"last_update"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Row is a resident annotated with the aggregates list views display.
// The aggregates are recomputed on every request, never stored.
type Row struct {
	Resident
	Balance   float64 `json:"balance"`
	LowStock  bool    `json:"low_stock"`
	LastVisit string  `json:"last_visit,omitempty"`
}

// Balance is the signed sum of the resident's financial transactions.
func Balance(financials []FinancialTransaction) float64 {
	var total float64
	for _, f := range financials {
		switch f.Type {
		case TransactionEntrada:
			total += f.Amount
		case TransactionSaida:
			total -= f.Amount
		}
	}
	return total
}

// HasLowStock reports whether any medication is at or below the threshold.
func HasLowStock(medications []Medication) bool {
	for _, m := range medications {
		if m.Stock <= LowStockThreshold {
			return true
		}
	}
	return false
}

// LastVisitDate returns the date of the most recently registered visit, by
// insertion order, or empty when no visits exist.
func LastVisitDate(visits []VisitRecord) string {
	if len(visits) == 0 {
		return ""
	}
	return visits[len(visits)-1].Date
}

// NewRow annotates a resident with its computed aggregates.
func NewRow(r Resident) Row {
	return Row{
		Resident:  r,
		Balance:   Balance(r.Financials),
		LowStock:  HasLowStock(r.Medications),
		LastVisit: LastVisitDate(r.VisitRecords),
	}
}
