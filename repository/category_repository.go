package repository

import (
	"context"

	"github.com/inamrestro/restaurant-app/models"
	"gorm.io/gorm"
)

type CategoryRepository struct{ DB *gorm.DB }

func NewCategoryRepository(db *gorm.DB) *CategoryRepository { return &CategoryRepository{DB: db} }

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.DB.WithContext(ctx).Order("id asc").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return translate(r.DB.WithContext(ctx).Create(category).Error)
}

func (r *CategoryRepository) Save(ctx context.Context, category *models.Category) error {
	return translate(r.DB.WithContext(ctx).Save(category).Error)
}

// Delete removes the category together with its menu items and the cart
// rows pointing at them. Refused with ErrInUse when any of the items has
// been ordered.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Category{}, id).Error; err != nil {
			return translate(err)
		}

		var itemIDs []uint
		if err := tx.Model(&models.MenuItem{}).Where("category_id = ?", id).Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		if err := deleteMenuItems(tx, itemIDs); err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}

// deleteMenuItems cascades to cart rows; order snapshots block the delete.
func deleteMenuItems(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	var ordered int64
	if err := tx.Model(&models.OrderItem{}).Where("menu_item_id IN ?", ids).Count(&ordered).Error; err != nil {
		return err
	}
	if ordered > 0 {
		return ErrInUse
	}

	if err := tx.Where("menu_item_id IN ?", ids).Delete(&models.Cart{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.MenuItem{}).Error
}
