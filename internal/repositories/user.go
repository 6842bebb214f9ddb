package repositories

import (
	"notes_service/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines data access for user accounts. FindByEmail and
// EnsureExists only see live accounts; FindByIDAny is the restore path's
// way in.
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByIDAny(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindDeletedByEmail(email string) (*models.User, error)
	EnsureExists(id uint) error
	UpdateFields(id uint, fields map[string]interface{}) error
	SoftDelete(id uint) error
	Restore(id uint) error
	HardDelete(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDAny(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Unscoped().First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindDeletedByEmail returns the most recently deactivated account for
// the email; the restore flow's way in.
func (r *userRepository) FindDeletedByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Unscoped().
		Where("email = ? AND deleted_at IS NOT NULL", email).
		Order("deleted_at DESC").
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) EnsureExists(id uint) error {
	var count int64
	err := r.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *userRepository) SoftDelete(id uint) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

func (r *userRepository) Restore(id uint) error {
	return r.db.Unscoped().Model(&models.User{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

// HardDelete removes the record entirely. Owned notes are deliberately
// left in place so their audit chain survives the account.
func (r *userRepository) HardDelete(id uint) error {
	return r.db.Unscoped().Delete(&models.User{}, "id = ?", id).Error
}
