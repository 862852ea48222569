package services_test

import (
	"context"
	"testing"

	"github.com/inamrestro/restaurant-app/models"
	"github.com/inamrestro/restaurant-app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService(t *testing.T) {
	db := setupTestDB(t)
	f := seed(t, db)
	require.NoError(t, db.Create(&models.Category{Name: "Drinks"}).Error)
	svc := services.NewCatalogService(db)
	ctx := context.Background()

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	items, err := svc.ListAvailableItems(ctx, f.category.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, f.pizza.ID, items[0].ID)

	items, err = svc.ListAvailableItems(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, items)
}
