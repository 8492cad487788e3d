package residents

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrResidentNotFound = errors.New("residente não encontrado")
	ErrRecordNotFound   = errors.New("registro não encontrado")
	ErrNameRequired     = errors.New("nome é obrigatório")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func ordered(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func (s *Service) withChildren() *gorm.DB {
	return s.db.
		Preload("Relatives", ordered).
		Preload("VisitRecords", ordered).
		Preload("Financials", ordered).
		Preload("PersonalItems", ordered).
		Preload("HealthUpdates", ordered).
		Preload("Medications", ordered)
}

// List returns all residents matching the free-text filter, annotated with
// the per-row aggregates. An empty term matches everyone; the match is a
// case-insensitive substring on name or CPF.
func (s *Service) List(term string) ([]Row, error) {
	query := s.withChildren()
	if term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(name) LIKE ? OR cpf LIKE ?", pattern, pattern)
	}

	var found []Resident
	if err := query.Order("name ASC").Find(&found).Error; err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(found))
	for _, r := range found {
		rows = append(rows, NewRow(r))
	}
	return rows, nil
}

func (s *Service) Get(id uuid.UUID) (*Resident, error) {
	var resident Resident
	if err := s.withChildren().First(&resident, "id = ?", id).Error; err != nil {
		return nil, ErrResidentNotFound
	}
	return &resident, nil
}

// Create inserts a new case file, assigning fresh ids to the resident and
// any child rows submitted with it.
func (s *Service) Create(r *Resident) (*Resident, error) {
	if err := s.CreateTx(s.db, r); err != nil {
		return nil, err
	}
	return s.Get(r.ID)
}

// CreateTx is Create running inside the caller's transaction. The screening
// module uses it when an admitted candidate becomes a resident.
func (s *Service) CreateTx(tx *gorm.DB, r *Resident) error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	r.ID = uuid.New()
	assignChildIDs(r)
	normalizeResponsible(r.Relatives)
	return tx.Create(r).Error
}

// Update replaces the flat fields of an existing case file. Child
// collections are edited through their own operations and stay untouched.
func (s *Service) Update(id uuid.UUID, in *Resident) (*Resident, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}

	var existing Resident
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		return nil, ErrResidentNotFound
	}

	in.ID = id
	in.CreatedAt = existing.CreatedAt
	in.Relatives = nil
	in.VisitRecords = nil
	in.Financials = nil
	in.PersonalItems = nil
	in.HealthUpdates = nil
	in.Medications = nil
	if err := s.db.Omit(clause.Associations).Save(in).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *Service) Delete(id uuid.UUID) error {
	var resident Resident
	if err := s.db.First(&resident, "id = ?", id).Error; err != nil {
		return ErrResidentNotFound
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&Relative{}, &VisitRecord{}, &FinancialTransaction{},
			&PersonalItem{}, &HealthUpdate{}, &Medication{},
		} {
			if err := tx.Where("resident_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&resident).Error
	})
}

func (s *Service) exists(id uuid.UUID) error {
	var count int64
	if err := s.db.Model(&Resident{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrResidentNotFound
	}
	return nil
}

// --- Relatives ---

func (s *Service) AddRelative(residentID uuid.UUID, rel *Relative) (*Relative, error) {
	if err := s.exists(residentID); err != nil {
		return nil, err
	}
	rel.ID = uuid.New()
	rel.ResidentID = residentID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if rel.IsResponsible {
			if err := clearResponsible(tx, residentID, rel.ID); err != nil {
				return err
			}
		}
		return tx.Create(rel).Error
	})
	if err != nil {
		return nil, err
	}
	return rel, nil
}

func (s *Service) UpdateRelative(residentID, recordID uuid.UUID, rel *Relative) (*Relative, error) {
	var existing Relative
	if err := s.db.First(&existing, "id = ? AND resident_id = ?", recordID, residentID).Error; err != nil {
		return nil, ErrRecordNotFound
	}
	rel.ID = recordID
	rel.ResidentID = residentID
	rel.CreatedAt = existing.CreatedAt
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if rel.IsResponsible {
			if err := clearResponsible(tx, residentID, recordID); err != nil {
				return err
			}
		}
		return tx.Save(rel).Error
	})
	if err != nil {
		return nil, err
	}
	return rel, nil
}

// ReplaceRelatives swaps the whole contact list in one write, repairing the
// responsible flag so that at most one entry keeps it (last marked wins).
func (s *Service) ReplaceRelatives(residentID uuid.UUID, list []Relative) ([]Relative, error) {
	if err := s.exists(residentID); err != nil {
		return nil, err
	}
	normalizeResponsible(list)
	for i := range list {
		if list[i].ID == uuid.Nil {
			list[i].ID = uuid.New()
		}
		list[i].ResidentID = residentID
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resident_id = ?", residentID).Delete(&Relative{}).Error; err != nil {
			return err
		}
		if len(list) == 0 {
			return nil
		}
		return tx.Create(&list).Error
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) RemoveRelative(residentID, recordID uuid.UUID) error {
	return s.removeChild(residentID, recordID, &Relative{})
}

func clearResponsible(tx *gorm.DB, residentID, keep uuid.UUID) error {
	return tx.Model(&Relative{}).
		Where("resident_id = ? AND id <> ?", residentID, keep).
		Update("is_responsible", false).Error
}

// normalizeResponsible keeps the flag on the last marked entry only.
func normalizeResponsible(list []Relative) {
	last := -1
	for i := range list {
		if list[i].IsResponsible {
			last = i
		}
	}
	for i := range list {
		list[i].IsResponsible = i == last
	}
}

// --- Visit records ---

func (s *Service) AddVisit(residentID uuid.UUID, v *VisitRecord) (*VisitRecord, error) {
	if err := s.exists(residentID); err != nil {
		return nil, err
	}
	v.ID = uuid.New()
	v.ResidentID = residentID
	if v.Date == "" {
		v.Date = today()
	}
	if err := s.db.Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) UpdateVisit(residentID, recordID uuid.UUID, v *VisitRecord) (*VisitRecord, error) {
	var existing VisitRecord
	if err := s.db.First(&existing, "id = ? AND resident_id = ?", recordID, residentID).Error; err != nil {
		return nil, ErrRecordNotFound
	}
	v.ID = recordID
	v.ResidentID = residentID
	v.CreatedAt = existing.CreatedAt
	if err := s.db.Save(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) RemoveVisit(residentID, recordID uuid.UUID) error {
	return s.removeChild(residentID, recordID, &VisitRecord{})
}

// --- Financial transactions ---

func (s *Service) AddFinancial(residentID uuid.UUID, f *FinancialTransaction) (*FinancialTransaction, error) {
	if err := s.exists(residentID); err != nil {
		return nil, err
	}
	f.ID = uuid.New()
	f.ResidentID = residentID
	if f.Date == "" {
		f.Date = today()
	}
	if f.Type == "" {
		f.Type = TransactionEntrada
	}
	if err := s.db.Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) UpdateFinancial(residentID, recordID uuid.UUID, f *FinancialTransaction) (*FinancialTransaction, error) {
	var existing FinancialTransaction
	if err := s.db.First(&existing, "id = ? AND resident_id = ?", recordID, residentID).Error; err != nil {
		return nil, ErrRecordNotFound
	}
	f.ID = recordID
	f.ResidentID = residentID
	f.CreatedAt = existing.CreatedAt
	if err := s.db.Save(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) RemoveFinancial(residentID, recordID uuid.UUID) error {
	return s.removeChild(residentID, recordID, &FinancialTransaction{})
}

// ComputeBalance recomputes the financial balance from the stored
// transactions. Idempotent: calling it twice without writes in between
// yields the same value.
func (s *Service) ComputeBalance(residentID uuid.UUID) (float64, error) {
	var financials []FinancialTransaction
	if err := s.db.Where("resident_id = ?", residentID).Find(&financials).Error; err != nil {
		return 0, err
	}
	return Balance(financials), nil
}

// --- Personal items ---

func (s *Service) AddItem(residentID uuid.UUID, item *PersonalItem) (*PersonalItem, error) {
	if err := s.exists(residentID); err != nil {
		return nil, err
	}
	item.ID = uuid.New()
	item.ResidentID = residentID
	if item.Date == "" {
		item.Date = today()
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) UpdateItem(residentID, recordID uuid.UUID, item *PersonalItem) (*PersonalItem, error) {
	var existing PersonalItem
	if err := s.db.First(&existing, "id = ? AND resident_id = ?", recordID, residentID).Error; err != nil {
		return nil, ErrRecordNotFound
	}
	item.ID = recordID
	item.ResidentID = residentID
	item.CreatedAt = existing.CreatedAt
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) RemoveItem(residentID, recordID uuid.UUID) error {
	return s.removeChild(residentID, recordID, &PersonalItem{})
}

// --- Health updates ---

func (s *Service) AddHealthUpdate(residentID uuid.UUID, h *HealthUpdate) (*HealthUpdate, error) {
	if err := s.exists(residentID); err != nil {
		return nil, err
	}
	h.ID = uuid.New()
	h.ResidentID = residentID
	if h.Date == "" {
		h.Date = today()
	}
	if err := s.db.Create(h).Error; err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) UpdateHealthUpdate(residentID, recordID uuid.UUID, h *HealthUpdate) (*HealthUpdate, error) {
	var existing HealthUpdate
	if err := s.db.First(&existing, "id = ? AND resident_id = ?", recordID, residentID).Error; err != nil {
		return nil, ErrRecordNotFound
	}
	h.ID = recordID
	h.ResidentID = residentID
	h.CreatedAt = existing.CreatedAt
	if err := s.db.Save(h).Error; err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) RemoveHealthUpdate(residentID, recordID uuid.UUID) error {
	return s.removeChild(residentID, recordID, &HealthUpdate{})
}

// --- Medications ---

func (s *Service) AddMedication(residentID uuid.UUID, m *Medication) (*Medication, error) {
	if err := s.exists(residentID); err != nil {
		return nil, err
	}
	m.ID = uuid.New()
	m.ResidentID = residentID
	if m.LastUpdate == "" {
		m.LastUpdate = today()
	}
	if err := s.db.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) UpdateMedication(residentID, recordID uuid.UUID, m *Medication) (*Medication, error) {
	var existing Medication
	if err := s.db.First(&existing, "id = ? AND resident_id = ?", recordID, residentID).Error; err != nil {
		return nil, ErrRecordNotFound
	}
	m.ID = recordID
	m.ResidentID = residentID
	m.CreatedAt = existing.CreatedAt
	if err := s.db.Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) RemoveMedication(residentID, recordID uuid.UUID) error {
	return s.removeChild(residentID, recordID, &Medication{})
}

func (s *Service) removeChild(residentID, recordID uuid.UUID, model interface{}) error {
	result := s.db.Where("id = ? AND resident_id = ?", recordID, residentID).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func assignChildIDs(r *Resident) {
	for i := range r.Relatives {
		r.Relatives[i].ID = uuid.New()
	}
	for i := range r.VisitRecords {
		r.VisitRecords[i].ID = uuid.New()
	}
	for i := range r.Financials {
		r.Financials[i].ID = uuid.New()
	}
	for i := range r.PersonalItems {
		r.PersonalItems[i].ID = uuid.New()
	}
	for i := range r.HealthUpdates {
		r.HealthUpdates[i].ID = uuid.New()
	}
	for i := range r.Medications {
		r.Medications[i].ID = uuid.New()
	}
}

func today() string {
	return time.Now().Format("2006-01-02")
}
