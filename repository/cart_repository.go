package repository

import (
	"context"

	"github.com/inamrestro/restaurant-app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// Increment inserts (user, item, 1) or bumps the quantity of the existing
// row in the same statement, so concurrent adds never lose an update or
// create a second row.
func (r *CartRepository) Increment(ctx context.Context, userID, itemID uint) error {
	row := models.Cart{UserID: userID, MenuItemID: itemID, Quantity: 1}
	return r.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "menu_item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("carts.quantity + 1")}),
		}).
		Create(&row).Error
}

// ListByUser returns the user's rows with their menu items. With forUpdate
// the rows are locked where the driver supports it.
func (r *CartRepository) ListByUser(ctx context.Context, userID uint, forUpdate bool) ([]models.Cart, error) {
	q := r.DB.WithContext(ctx).Preload("MenuItem").Where("user_id = ?", userID).Order("id asc")
	if forUpdate && r.DB.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rows []models.Cart
	err := q.Find(&rows).Error
	return rows, err
}

func (r *CartRepository) Get(ctx context.Context, userID, cartID uint) (*models.Cart, error) {
	var row models.Cart
	err := r.DB.WithContext(ctx).Preload("MenuItem").
		Where("id = ? AND user_id = ?", cartID, userID).
		First(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

// DeleteOwned removes a row only when it belongs to userID.
func (r *CartRepository) DeleteOwned(ctx context.Context, userID, cartID uint) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", cartID, userID).Delete(&models.Cart{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CartRepository) DeleteIDs(ctx context.Context, userID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).Where("user_id = ? AND id IN ?", userID, ids).Delete(&models.Cart{})
	return res.RowsAffected, res.Error
}
