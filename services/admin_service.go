package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/inamrestro/restaurant-app/feed"
	"github.com/inamrestro/restaurant-app/models"
	"github.com/inamrestro/restaurant-app/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdminService backs the staff back office. It never changes order status.
type AdminService struct {
	Categories *repository.CategoryRepository
	Items      *repository.MenuItemRepository
	Orders     *repository.OrderRepository
	Contacts   *repository.ContactRepository
	Feed       feed.Publisher
}

func NewAdminService(db *gorm.DB, pub feed.Publisher) *AdminService {
	if pub == nil {
		pub = feed.Nop{}
	}
	return &AdminService{
		Categories: repository.NewCategoryRepository(db),
		Items:      repository.NewMenuItemRepository(db),
		Orders:     repository.NewOrderRepository(db),
		Contacts:   repository.NewContactRepository(db),
		Feed:       pub,
	}
}

// maxPrice is the first value that no longer fits the decimal(7,2) price column.
var maxPrice = decimal.NewFromInt(100000)

type CategoryInput struct {
	Name        string
	Description string
	Image       *string
}

// MenuItemInput uses pointers so updates only touch provided fields.
type MenuItemInput struct {
	CategoryID  *uint
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Image       *string
	IsAvailable *bool
}

func (s *AdminService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	category := &models.Category{Name: in.Name, Description: in.Description, Image: in.Image}
	if err := s.Categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, "category_created", category.ID)
	return category, nil
}

func (s *AdminService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	category, err := s.Categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		category.Name = in.Name
	}
	if in.Description != "" {
		category.Description = in.Description
	}
	if in.Image != nil {
		category.Image = in.Image
	}
	if err := s.Categories.Save(ctx, category); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, "category_updated", category.ID)
	return category, nil
}

func (s *AdminService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.Categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	s.catalogChanged(ctx, "category_deleted", id)
	return nil
}

func (s *AdminService) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.Items.List(ctx)
}

func (s *AdminService) CreateMenuItem(ctx context.Context, in MenuItemInput) (*models.MenuItem, error) {
	if in.CategoryID == nil || in.Name == nil || strings.TrimSpace(*in.Name) == "" || in.Price == nil {
		return nil, fmt.Errorf("%w: category_id, name and price are required", ErrInvalidInput)
	}
	if _, err := s.Categories.Get(ctx, *in.CategoryID); err != nil {
		return nil, err
	}

	item := &models.MenuItem{CategoryID: *in.CategoryID, Name: *in.Name, IsAvailable: true}
	if err := applyMenuItemInput(item, in); err != nil {
		return nil, err
	}
	if err := s.Items.Create(ctx, item); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, "menu_item_created", item.ID)
	return item, nil
}

func (s *AdminService) UpdateMenuItem(ctx context.Context, id uint, in MenuItemInput) (*models.MenuItem, error) {
	item, err := s.Items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil && *in.CategoryID != item.CategoryID {
		if _, err := s.Categories.Get(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}
	if err := applyMenuItemInput(item, in); err != nil {
		return nil, err
	}
	if err := s.Items.Save(ctx, item); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, "menu_item_updated", item.ID)
	return item, nil
}

func (s *AdminService) DeleteMenuItem(ctx context.Context, id uint) error {
	if err := s.Items.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete menu item %d: %w", id, err)
	}
	s.catalogChanged(ctx, "menu_item_deleted", id)
	return nil
}

func (s *AdminService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.Orders.List(ctx)
}

func (s *AdminService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	return s.Orders.Get(ctx, id)
}

func (s *AdminService) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	return s.Contacts.List(ctx)
}

func applyMenuItemInput(item *models.MenuItem, in MenuItemInput) error {
	if in.Price != nil {
		if in.Price.IsNegative() {
			return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
		}
		price := in.Price.Round(2)
		if price.GreaterThanOrEqual(maxPrice) {
			return fmt.Errorf("%w: price must be below %s", ErrInvalidInput, maxPrice)
		}
		item.Price = price
	}
	if in.CategoryID != nil {
		item.CategoryID = *in.CategoryID
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Image != nil {
		item.Image = in.Image
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	return nil
}

func (s *AdminService) catalogChanged(ctx context.Context, action string, id uint) {
	s.Feed.Publish(ctx, feed.Message{
		Event: feed.EventCatalogUpdated,
		Data:  map[string]interface{}{"action": action, "id": id},
	})
}
