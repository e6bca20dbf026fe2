package dealers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisrojasb/doorline-backend/internal/repo"
	"github.com/luisrojasb/doorline-backend/pkg/db/models"
)

// Repository exposes dealer persistence operations.
type Repository interface {
	Create(ctx context.Context, dealer *models.Dealer) error
	Find(ctx context.Context, id uuid.UUID) (*models.Dealer, error)
	List(ctx context.Context, distributorID uuid.UUID, activeOnly bool) ([]models.Dealer, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a dealers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) Create(ctx context.Context, dealer *models.Dealer) error {
	return r.DB(ctx).Create(dealer).Error
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.Dealer, error) {
	var dealer models.Dealer
	if err := r.DB(ctx).Where("id = ?", id).First(&dealer).Error; err != nil {
		return nil, err
	}
	return &dealer, nil
}

func (r *repository) List(ctx context.Context, distributorID uuid.UUID, activeOnly bool) ([]models.Dealer, error) {
	query := r.DB(ctx).Model(&models.Dealer{}).Order("name ASC")
	if distributorID != uuid.Nil {
		query = query.Where("distributor_id = ?", distributorID)
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var dealers []models.Dealer
	if err := query.Find(&dealers).Error; err != nil {
		return nil, err
	}
	return dealers, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	res := r.DB(ctx).Model(&models.Dealer{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}
