package repository

import (
	"context"

	"github.com/inamrestro/restaurant-app/models"
	"gorm.io/gorm"
)

type ContactRepository struct{ DB *gorm.DB }

func NewContactRepository(db *gorm.DB) *ContactRepository { return &ContactRepository{DB: db} }

func (r *ContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.DB.WithContext(ctx).Create(msg).Error
}

func (r *ContactRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	err := r.DB.WithContext(ctx).Order("id desc").Find(&msgs).Error
	return msgs, err
}
