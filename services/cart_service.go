package services

import (
	"context"
	"fmt"

	"github.com/inamrestro/restaurant-app/metrics"
	"github.com/inamrestro/restaurant-app/models"
	"github.com/inamrestro/restaurant-app/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	DB      *gorm.DB
	Metrics *metrics.Metrics
}

func NewCartService(db *gorm.DB, m *metrics.Metrics) *CartService {
	return &CartService{DB: db, Metrics: m}
}

type CartView struct {
	Items []models.Cart   `json:"cart_items"`
	Total decimal.Decimal `json:"total"`
}

// CartTotal is the sum of price x quantity over rows with MenuItem loaded.
func CartTotal(rows []models.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.LineTotal())
	}
	return total
}

// Add puts one more of itemID into the user's cart.
func (s *CartService) Add(ctx context.Context, userID, itemID uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repository.NewMenuItemRepository(tx).Get(ctx, itemID); err != nil {
			return err
		}
		return repository.NewCartRepository(tx).Increment(ctx, userID, itemID)
	})
	if err != nil {
		return fmt.Errorf("add item %d to cart: %w", itemID, err)
	}
	s.Metrics.CartAdded()
	return nil
}

func (s *CartService) View(ctx context.Context, userID uint) (*CartView, error) {
	rows, err := repository.NewCartRepository(s.DB).ListByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.Cart{}
	}
	return &CartView{Items: rows, Total: CartTotal(rows)}, nil
}

// Remove deletes cartID only if it is one of userID's rows.
func (s *CartService) Remove(ctx context.Context, userID, cartID uint) error {
	if err := repository.NewCartRepository(s.DB).DeleteOwned(ctx, userID, cartID); err != nil {
		return fmt.Errorf("remove cart row %d: %w", cartID, err)
	}
	return nil
}
