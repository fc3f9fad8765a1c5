package repository

import (
	"context"
	"fmt"

	"watchlog/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type progressRepository struct {
	db *gorm.DB
}

// ProgressRepository stores watch entries. Create reports a second entry for
// the same (user, content) pair as gorm.ErrDuplicatedKey.
type ProgressRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.WatchEntry, error)
	Find(ctx context.Context, userID int64, ref models.ContentRef) (*models.WatchEntry, error)
	Create(ctx context.Context, entry *models.WatchEntry) error
	Update(ctx context.Context, entry *models.WatchEntry, fields map[string]any) error
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) ListByUser(ctx context.Context, userID int64) ([]models.WatchEntry, error) {
	list := make([]models.WatchEntry, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list watch entries: %w", err)
	}
	return list, nil
}

func (r *progressRepository) Find(ctx context.Context, userID int64, ref models.ContentRef) (*models.WatchEntry, error) {
	var entry models.WatchEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND content_type = ? AND content_id = ?", userID, ref.Kind, ref.ID).
		Order("id desc").
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *progressRepository) Create(ctx context.Context, entry *models.WatchEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create watch entry: %w", err)
	}
	return nil
}

// Update writes only the given columns and reloads the entry afterwards.
func (r *progressRepository) Update(ctx context.Context, entry *models.WatchEntry, fields map[string]any) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(entry).Updates(fields).Error; err != nil {
		return fmt.Errorf("update watch entry: %w", err)
	}
	if err := db.First(entry, entry.ID).Error; err != nil {
		return fmt.Errorf("reload watch entry: %w", err)
	}
	return nil
}
