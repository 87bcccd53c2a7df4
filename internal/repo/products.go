package repo

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"smartbill/internal/models"
	"smartbill/internal/validation"
)

// ProductRepo is plain CRUD over the product catalog plus the barcode lookup
// used during entry. Stock mutation goes through UpdateStock so only the
// stock column is touched.
type ProductRepo struct {
	DB *gorm.DB
}

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{DB: db} }

func (r *ProductRepo) List() ([]models.Product, error) {
	var products []models.Product
	if err := r.DB.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *ProductRepo) Get(id uint) (*models.Product, error) {
	var p models.Product
	if err := r.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}

// FindByBarcode returns the first product carrying the barcode, or nil.
// Barcodes are an indexed lookup key, not enforced unique.
func (r *ProductRepo) FindByBarcode(code string) (*models.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	var p models.Product
	if err := r.DB.Where("barcode = ?", code).Order("id").First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup barcode %s: %w", code, err)
	}
	return &p, nil
}

func (r *ProductRepo) Create(p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := r.DB.Create(p).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update overwrites the user-editable fields only.
func (r *ProductRepo) Update(id uint, p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	err := r.DB.Model(&models.Product{ID: id}).Updates(map[string]any{
		"name":    p.Name,
		"price":   p.Price,
		"stock":   p.Stock,
		"gst":     p.GST,
		"barcode": p.Barcode,
	}).Error
	if err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}
	return nil
}

// UpdateStock sets the absolute stock for a product, leaving every other
// column alone.
func (r *ProductRepo) UpdateStock(id uint, newStock int) error {
	if newStock < 0 {
		return validation.Errorf("stock", "must_not_be_negative")
	}
	if err := r.DB.Model(&models.Product{ID: id}).Update("stock", newStock).Error; err != nil {
		return fmt.Errorf("update stock for product %d: %w", id, err)
	}
	return nil
}

func (r *ProductRepo) Delete(id uint) error {
	if err := r.DB.Delete(&models.Product{}, id).Error; err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

func validateProduct(p *models.Product) error {
	v := validation.Violations{}
	validation.Required("name", p.Name, v)
	validation.PositiveDecimal("price", p.Price, v)
	validation.NonNegativeInt("stock", p.Stock, v)
	validation.NonNegativeDecimal("gst", p.GST, v)
	return validation.NewError(v)
}
