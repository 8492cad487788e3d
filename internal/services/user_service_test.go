package services

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/ssvp-lar/ilpi-backend/internal/dto"
	"github.com/ssvp-lar/ilpi-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        filepath.Join(t.TempDir(), "shared.db"),
	}, &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.InstitutionSettings{},
	))
	return db
}

func TestCreateUserNormalizesUsername(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	user, err := svc.Create(&dto.CreateUserRequest{
		Username: "  Enfermagem ",
		FullName: "Equipe de Enfermagem",
		Role:     "Saúde",
		Password: "segredo123",
	})
	require.NoError(t, err)

	assert.Equal(t, "enfermagem", user.Username)
	assert.Equal(t, "gerencial", user.AccessLevel)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("segredo123")))
}

func TestCreateUserRejectsDuplicate(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.Create(&dto.CreateUserRequest{Username: "social", Password: "x12345"})
	require.NoError(t, err)

	_, err = svc.Create(&dto.CreateUserRequest{Username: "Social", Password: "outra"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreateUserMissingFields(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.Create(&dto.CreateUserRequest{Username: "", Password: "x"})
	assert.ErrorIs(t, err, ErrMissingUserFields)

	_, err = svc.Create(&dto.CreateUserRequest{Username: "social", Password: ""})
	assert.ErrorIs(t, err, ErrMissingUserFields)
}

func TestDeleteProtectedUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	admin := models.User{
		ID:        uuid.New(),
		Username:  "admin",
		Protected: true,
	}
	require.NoError(t, db.Create(&admin).Error)

	assert.ErrorIs(t, svc.Delete(admin.ID), ErrProtectedUser)
	assert.ErrorIs(t, svc.Delete(uuid.New()), ErrUserNotFound)

	regular, err := svc.Create(&dto.CreateUserRequest{Username: "social", Password: "x12345"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(regular.ID))

	users, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestResetPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Create(&dto.CreateUserRequest{Username: "social", Password: "antiga"})
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(user.ID, "nova-senha"))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.Password), []byte("nova-senha")))

	assert.ErrorIs(t, svc.ResetPassword(user.ID, ""), ErrMissingUserFields)
	assert.ErrorIs(t, svc.ResetPassword(uuid.New(), "qualquer"), ErrUserNotFound)
}

func TestSettingsDefaultsBeforeFirstSave(t *testing.T) {
	svc := NewSettingsService(newTestDB(t))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "Lar São Vicente de Paulo", settings.Name)
	assert.Equal(t, models.EntityObraUnida, settings.EntityType)
}

func TestSettingsSaveOverwritesSingleton(t *testing.T) {
	svc := NewSettingsService(newTestDB(t))

	_, err := svc.Save(&dto.UpdateSettingsRequest{Name: "", CNPJ: ""})
	assert.ErrorIs(t, err, ErrMissingSettingsFields)

	saved, err := svc.Save(&dto.UpdateSettingsRequest{
		Name: "Lar Frederico Ozanam",
		CNPJ: "12.345.678/0001-90",
		City: "Jaboticabal",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), saved.ID)

	again, err := svc.Save(&dto.UpdateSettingsRequest{
		Name: "Lar Frederico Ozanam",
		CNPJ: "12.345.678/0001-90",
		City: "Monte Alto",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), again.ID)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "Monte Alto", settings.City)
}
