package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"portfolio-site/internal/model"
)

// ContactRepository stores archived contact messages in MySQL.
type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Migrate() error {
	if err := r.db.AutoMigrate(&model.ContactMessage{}); err != nil {
		return fmt.Errorf("auto migrate contact_messages failed: %w", err)
	}
	return nil
}

func (r *ContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("create contact message failed: %w", err)
	}
	return nil
}
