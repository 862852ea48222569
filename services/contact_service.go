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

type ContactInput struct {
	Name    string `form:"name" json:"name" binding:"required"`
	Email   string `form:"email" json:"email" binding:"required"`
	Phone   string `form:"phone" json:"phone" binding:"required"`
	Message string `form:"message" json:"message" binding:"required"`
}

type ContactService struct {
	Repo    *repository.ContactRepository
	Feed    feed.Publisher
	Metrics *metrics.Metrics
}

func NewContactService(db *gorm.DB, pub feed.Publisher, m *metrics.Metrics) *ContactService {
	if pub == nil {
		pub = feed.Nop{}
	}
	return &ContactService{Repo: repository.NewContactRepository(db), Feed: pub, Metrics: m}
}

func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Message: in.Message,
	}
	if err := s.Repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("save contact message: %w", err)
	}

	s.Metrics.ContactReceived()
	s.Feed.Publish(ctx, feed.Message{Event: feed.EventContactMessage, Data: msg})
	return msg, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	return s.Repo.List(ctx)
}
