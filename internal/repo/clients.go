package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smartbill/internal/models"
	"smartbill/internal/validation"
)

// ClientRepo is plain CRUD over clients. Delete is unconditional: invoices
// referencing a deleted client keep their client_id.
type ClientRepo struct {
	DB *gorm.DB
}

func NewClientRepo(db *gorm.DB) *ClientRepo { return &ClientRepo{DB: db} }

func (r *ClientRepo) List() ([]models.Client, error) {
	var clients []models.Client
	if err := r.DB.Order("id").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (r *ClientRepo) Get(id uint) (*models.Client, error) {
	var c models.Client
	if err := r.DB.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client %d: %w", id, err)
	}
	return &c, nil
}

func (r *ClientRepo) Create(c *models.Client) error {
	if err := validateClient(c); err != nil {
		return err
	}
	if err := r.DB.Create(c).Error; err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// Update overwrites only the user-editable fields; anything else on the row
// is retained.
func (r *ClientRepo) Update(id uint, c *models.Client) error {
	if err := validateClient(c); err != nil {
		return err
	}
	err := r.DB.Model(&models.Client{ID: id}).Updates(map[string]any{
		"name":    c.Name,
		"contact": c.Contact,
		"history": c.History,
	}).Error
	if err != nil {
		return fmt.Errorf("update client %d: %w", id, err)
	}
	return nil
}

func (r *ClientRepo) Delete(id uint) error {
	if err := r.DB.Delete(&models.Client{}, id).Error; err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	return nil
}

func validateClient(c *models.Client) error {
	v := validation.Violations{}
	validation.Required("name", c.Name, v)
	validation.Required("contact", c.Contact, v)
	return validation.NewError(v)
}
