package services_test

import (
	"context"
	"testing"

	"github.com/inamrestro/restaurant-app/feed"
	"github.com/inamrestro/restaurant-app/services"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactService_Submit(t *testing.T) {
	db := setupTestDB(t)
	m := newMetrics()
	pub := &recorder{}
	svc := services.NewContactService(db, pub, m)
	ctx := context.Background()

	msg, err := svc.Submit(ctx, services.ContactInput{
		Name:    "Grace",
		Email:   "grace@example.com",
		Phone:   "0812345678",
		Message: "Do you cater for events?",
	})
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())

	msgs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Grace", msgs[0].Name)

	assert.Equal(t, []string{feed.EventContactMessage}, pub.events())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ContactMessages))
}
