package repository

import (
	"context"

	"github.com/inamrestro/restaurant-app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// Create writes the order header and then its items.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	items := order.OrderItems
	order.OrderItems = nil

	db := r.DB.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := db.Omit(clause.Associations).Create(&items).Error; err != nil {
			return err
		}
	}
	order.OrderItems = items
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Preload("OrderItems.MenuItem").First(&order, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).Preload("OrderItems.MenuItem").Order("id desc").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).Preload("OrderItems").Where("user_id = ?", userID).Order("id desc").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&n).Error
	return n, err
}
