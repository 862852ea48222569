package services

import (
	"context"
	"fmt"

	"github.com/inamrestro/restaurant-app/feed"
	"github.com/inamrestro/restaurant-app/metrics"
	"github.com/inamrestro/restaurant-app/models"
	"github.com/inamrestro/restaurant-app/repository"
	"gorm.io/gorm"
)

type OrderService struct {
	DB      *gorm.DB
	Feed    feed.Publisher
	Metrics *metrics.Metrics
}

func NewOrderService(db *gorm.DB, pub feed.Publisher, m *metrics.Metrics) *OrderService {
	if pub == nil {
		pub = feed.Nop{}
	}
	return &OrderService{DB: db, Feed: pub, Metrics: m}
}

// PlaceOrder turns the user's cart into an order in one transaction: the
// order, its items (with the current prices frozen) and the removal of
// exactly the cart rows that were read either all happen or none do.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint) (*models.Order, error) {
	var order *models.Order

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		carts := repository.NewCartRepository(tx)

		rows, err := carts.ListByUser(ctx, userID, true)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return ErrEmptyCart
		}

		order = &models.Order{
			UserID:        userID,
			TotalAmount:   CartTotal(rows),
			Status:        models.StatusPending,
			PaymentMethod: models.DefaultPaymentMethod,
		}
		ids := make([]uint, 0, len(rows))
		for _, row := range rows {
			order.OrderItems = append(order.OrderItems, models.OrderItem{
				MenuItemID: row.MenuItemID,
				Quantity:   row.Quantity,
				Price:      row.MenuItem.Price,
			})
			ids = append(ids, row.ID)
		}

		if err := repository.NewOrderRepository(tx).Create(ctx, order); err != nil {
			return err
		}
		deleted, err := carts.DeleteIDs(ctx, userID, ids)
		if err != nil {
			return err
		}
		if deleted != int64(len(ids)) {
			return fmt.Errorf("cart changed during checkout: removed %d of %d rows", deleted, len(ids))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("place order for user %d: %w", userID, err)
	}

	s.Metrics.OrderPlaced(order.TotalAmount)
	s.Feed.Publish(ctx, feed.Message{Event: feed.EventOrderPlaced, Data: order})
	return order, nil
}
