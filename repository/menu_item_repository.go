package repository

import (
	"context"

	"github.com/inamrestro/restaurant-app/models"
	"gorm.io/gorm"
)

type MenuItemRepository struct{ DB *gorm.DB }

func NewMenuItemRepository(db *gorm.DB) *MenuItemRepository { return &MenuItemRepository{DB: db} }

// ListAvailableByCategory hides items flagged unavailable.
func (r *MenuItemRepository) ListAvailableByCategory(ctx context.Context, categoryID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.DB.WithContext(ctx).
		Where("category_id = ? AND is_available = ?", categoryID, true).
		Order("id asc").
		Find(&items).Error
	return items, err
}

func (r *MenuItemRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.DB.WithContext(ctx).Order("category_id asc, id asc").Find(&items).Error
	return items, err
}

func (r *MenuItemRepository) Get(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *MenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return translate(r.DB.WithContext(ctx).Omit("Category").Create(item).Error)
}

func (r *MenuItemRepository) Save(ctx context.Context, item *models.MenuItem) error {
	return translate(r.DB.WithContext(ctx).Omit("Category").Save(item).Error)
}

func (r *MenuItemRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.MenuItem{}, id).Error; err != nil {
			return translate(err)
		}
		return deleteMenuItems(tx, []uint{id})
	})
}
