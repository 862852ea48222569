package services

import (
	"context"

	"github.com/inamrestro/restaurant-app/models"
	"github.com/inamrestro/restaurant-app/repository"
	"gorm.io/gorm"
)

type CatalogService struct {
	Categories *repository.CategoryRepository
	Items      *repository.MenuItemRepository
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		Categories: repository.NewCategoryRepository(db),
		Items:      repository.NewMenuItemRepository(db),
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Categories.List(ctx)
}

// ListAvailableItems never reports unavailable items nor an unknown
// category; both simply produce fewer (or no) rows.
func (s *CatalogService) ListAvailableItems(ctx context.Context, categoryID uint) ([]models.MenuItem, error) {
	return s.Items.ListAvailableByCategory(ctx, categoryID)
}
