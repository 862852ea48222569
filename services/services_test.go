package services_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/inamrestro/restaurant-app/feed"
	"github.com/inamrestro/restaurant-app/metrics"
	"github.com/inamrestro/restaurant-app/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

// recorder keeps every published message.
type recorder struct {
	mu   sync.Mutex
	msgs []feed.Message
}

func (r *recorder) Publish(_ context.Context, msg feed.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.msgs))
	for _, m := range r.msgs {
		out = append(out, m.Event)
	}
	return out
}

type fixture struct {
	user     models.User
	category models.Category
	pizza    models.MenuItem
	salad    models.MenuItem
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	f := fixture{
		user:     models.User{Username: "alice", Password: "x"},
		category: models.Category{Name: "Mains"},
	}
	require.NoError(t, db.Create(&f.user).Error)
	require.NoError(t, db.Create(&f.category).Error)

	f.pizza = models.MenuItem{CategoryID: f.category.ID, Name: "Pizza", Price: decimal.RequireFromString("12.50"), IsAvailable: true}
	f.salad = models.MenuItem{CategoryID: f.category.ID, Name: "Salad", Price: decimal.RequireFromString("7.25"), IsAvailable: false}
	require.NoError(t, db.Omit("Category").Create(&f.pizza).Error)
	require.NoError(t, db.Omit("Category").Create(&f.salad).Error)
	return f
}
