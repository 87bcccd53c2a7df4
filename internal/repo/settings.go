package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smartbill/internal/models"
	"smartbill/internal/validation"
)

// SettingRepo stores app-level key/value preferences.
type SettingRepo struct {
	DB *gorm.DB
}

func NewSettingRepo(db *gorm.DB) *SettingRepo { return &SettingRepo{DB: db} }

// Get returns the value for key, or "" when unset.
func (r *SettingRepo) Get(key string) (string, error) {
	var s models.Setting
	if err := r.DB.Where("key = ?", key).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return s.Value, nil
}

// Put inserts or overwrites the value for key.
func (r *SettingRepo) Put(key, value string) error {
	v := validation.Violations{}
	validation.Required("key", key, v)
	if err := validation.NewError(v); err != nil {
		return err
	}
	var existing models.Setting
	err := r.DB.Where("key = ?", key).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.DB.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
			return fmt.Errorf("create setting %s: %w", key, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("put setting %s: %w", key, err)
	default:
		if err := r.DB.Model(&existing).Update("value", value).Error; err != nil {
			return fmt.Errorf("put setting %s: %w", key, err)
		}
		return nil
	}
}
