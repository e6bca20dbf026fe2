package announcements

import (
	"context"

	"gorm.io/gorm"

	"github.com/luisrojasb/doorline-backend/internal/repo"
	"github.com/luisrojasb/doorline-backend/pkg/db/models"
	"github.com/luisrojasb/doorline-backend/pkg/pagination"
)

// Repository exposes announcement persistence operations.
type Repository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Announcement, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds an announcements repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) Create(ctx context.Context, announcement *models.Announcement) error {
	return r.DB(ctx).Create(announcement).Error
}

func (r *repository) List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Announcement, error) {
	query := r.DB(ctx).Model(&models.Announcement{}).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Announcement
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
