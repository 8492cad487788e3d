package residents

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        filepath.Join(t.TempDir(), "residents.db"),
	}, &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&Resident{},
		&Relative{},
		&VisitRecord{},
		&FinancialTransaction{},
		&PersonalItem{},
		&HealthUpdate{},
		&Medication{},
	))
	return NewService(db)
}

func createResident(t *testing.T, svc *Service, name string) *Resident {
	t.Helper()
	created, err := svc.Create(&Resident{Name: name})
	require.NoError(t, err)
	return created
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Create(&Resident{Name: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestBalanceFromTransactions(t *testing.T) {
	svc := newTestService(t)
	resident := createResident(t, svc, "Antônio Silva")

	_, err := svc.AddFinancial(resident.ID, &FinancialTransaction{
		Type: TransactionEntrada, Description: "Aposentadoria", Amount: 1000,
	})
	require.NoError(t, err)
	_, err = svc.AddFinancial(resident.ID, &FinancialTransaction{
		Type: TransactionSaida, Description: "Farmácia", Amount: 400,
	})
	require.NoError(t, err)

	balance, err := svc.ComputeBalance(resident.ID)
	require.NoError(t, err)
	assert.Equal(t, 600.0, balance)

	// Recomputing without new transactions yields the same value.
	again, err := svc.ComputeBalance(resident.ID)
	require.NoError(t, err)
	assert.Equal(t, balance, again)

	rows, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 600.0, rows[0].Balance)
}

func TestFinancialDefaults(t *testing.T) {
	svc := newTestService(t)
	resident := createResident(t, svc, "Antônio Silva")

	tx, err := svc.AddFinancial(resident.ID, &FinancialTransaction{Amount: 50})
	require.NoError(t, err)
	assert.Equal(t, TransactionEntrada, tx.Type)
	assert.Equal(t, time.Now().Format("2006-01-02"), tx.Date)
}

func TestLowStockFlag(t *testing.T) {
	svc := newTestService(t)
	resident := createResident(t, svc, "Antônio Silva")

	med, err := svc.AddMedication(resident.ID, &Medication{Name: "Losartana", Stock: 12})
	require.NoError(t, err)

	rows, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].LowStock)

	med.Stock = LowStockThreshold
	_, err = svc.UpdateMedication(resident.ID, med.ID, med)
	require.NoError(t, err)

	rows, err = svc.List("")
	require.NoError(t, err)
	assert.True(t, rows[0].LowStock)
}

func TestLastVisit(t *testing.T) {
	svc := newTestService(t)
	resident := createResident(t, svc, "Antônio Silva")

	rows, err := svc.List("")
	require.NoError(t, err)
	assert.Empty(t, rows[0].LastVisit)

	_, err = svc.AddVisit(resident.ID, &VisitRecord{Date: "2026-08-01", VisitorName: "Filha"})
	require.NoError(t, err)
	_, err = svc.AddVisit(resident.ID, &VisitRecord{Date: "2026-08-20", VisitorName: "Neto"})
	require.NoError(t, err)

	rows, err = svc.List("")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-20", rows[0].LastVisit)
}

func TestResponsibleRelativeIsExclusive(t *testing.T) {
	svc := newTestService(t)
	resident := createResident(t, svc, "Antônio Silva")

	first, err := svc.AddRelative(resident.ID, &Relative{Name: "Ana", Kinship: "filha", IsResponsible: true})
	require.NoError(t, err)
	second, err := svc.AddRelative(resident.ID, &Relative{Name: "Bruno", Kinship: "filho", IsResponsible: true})
	require.NoError(t, err)

	reloaded, err := svc.Get(resident.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Relatives, 2)

	responsible := map[uuid.UUID]bool{}
	for _, rel := range reloaded.Relatives {
		responsible[rel.ID] = rel.IsResponsible
	}
	assert.False(t, responsible[first.ID])
	assert.True(t, responsible[second.ID])
}

func TestReplaceRelativesRepairsResponsible(t *testing.T) {
	svc := newTestService(t)
	resident := createResident(t, svc, "Antônio Silva")

	list, err := svc.ReplaceRelatives(resident.ID, []Relative{
		{Name: "Ana", IsResponsible: true},
		{Name: "Bruno", IsResponsible: true},
		{Name: "Carla", IsResponsible: true},
	})
	require.NoError(t, err)
	require.Len(t, list, 3)

	count := 0
	for _, rel := range list {
		if rel.IsResponsible {
			count++
			assert.Equal(t, "Carla", rel.Name)
		}
	}
	assert.Equal(t, 1, count)

	// An empty replacement clears the list.
	list, err = svc.ReplaceRelatives(resident.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	reloaded, err := svc.Get(resident.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Relatives)
}

func TestUpdateKeepsChildCollections(t *testing.T) {
	svc := newTestService(t)
	resident := createResident(t, svc, "Antônio Silva")

	_, err := svc.AddRelative(resident.ID, &Relative{Name: "Ana"})
	require.NoError(t, err)
	_, err = svc.AddMedication(resident.ID, &Medication{Name: "Losartana", Stock: 10})
	require.NoError(t, err)

	reloaded, err := svc.Get(resident.ID)
	require.NoError(t, err)

	// Saving the same flat fields twice must not touch the collections.
	for i := 0; i < 2; i++ {
		update := *reloaded
		update.Room = "Quarto 3"
		reloaded, err = svc.Update(resident.ID, &update)
		require.NoError(t, err)
	}

	assert.Equal(t, "Quarto 3", reloaded.Room)
	assert.Len(t, reloaded.Relatives, 1)
	assert.Len(t, reloaded.Medications, 1)
}

func TestListFilter(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Create(&Resident{Name: "Maria Souza", CPF: "111.222.333-44"})
	require.NoError(t, err)
	_, err = svc.Create(&Resident{Name: "João Pereira", CPF: "555.666.777-88"})
	require.NoError(t, err)

	byName, err := svc.List("maria")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Maria Souza", byName[0].Name)

	byCPF, err := svc.List("555.666")
	require.NoError(t, err)
	require.Len(t, byCPF, 1)
	assert.Equal(t, "João Pereira", byCPF[0].Name)

	all, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteRemovesChildren(t *testing.T) {
	svc := newTestService(t)
	resident := createResident(t, svc, "Antônio Silva")

	_, err := svc.AddRelative(resident.ID, &Relative{Name: "Ana"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(resident.ID))

	_, err = svc.Get(resident.ID)
	assert.ErrorIs(t, err, ErrResidentNotFound)

	assert.ErrorIs(t, svc.Delete(resident.ID), ErrResidentNotFound)
}

func TestRemoveChildNotFound(t *testing.T) {
	svc := newTestService(t)
	resident := createResident(t, svc, "Antônio Silva")

	err := svc.RemoveVisit(resident.ID, uuid.New())
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
