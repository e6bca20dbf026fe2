package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisrojasb/doorline-backend/internal/repo"
	"github.com/luisrojasb/doorline-backend/pkg/db/models"
)

// Repository exposes catalog persistence operations.
type Repository interface {
	ListDoorTypes(ctx context.Context) ([]models.DoorType, error)
	ListDesigns(ctx context.Context) ([]models.Design, error)
	ListColors(ctx context.Context) ([]models.Color, error)
	FindDesign(ctx context.Context, id uuid.UUID) (*models.Design, error)
	FindColor(ctx context.Context, id uuid.UUID) (*models.Color, error)
	FindDoorType(ctx context.Context, id uuid.UUID) (*models.DoorType, error)
	CreateDoorType(ctx context.Context, doorType *models.DoorType) error
	CreateDesign(ctx context.Context, design *models.Design) error
	CreateColor(ctx context.Context, color *models.Color) error
	UpdateDesign(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type repository struct {
	repo.Base
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) ListDoorTypes(ctx context.Context) ([]models.DoorType, error) {
	var doorTypes []models.DoorType
	if err := r.DB(ctx).Order("name ASC").Find(&doorTypes).Error; err != nil {
		return nil, err
	}
	return doorTypes, nil
}

func (r *repository) ListDesigns(ctx context.Context) ([]models.Design, error) {
	var designs []models.Design
	if err := r.DB(ctx).Order("name ASC").Find(&designs).Error; err != nil {
		return nil, err
	}
	return designs, nil
}

func (r *repository) ListColors(ctx context.Context) ([]models.Color, error) {
	var colors []models.Color
	if err := r.DB(ctx).Order("name ASC").Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

func (r *repository) FindDesign(ctx context.Context, id uuid.UUID) (*models.Design, error) {
	var design models.Design
	if err := r.DB(ctx).Where("id = ?", id).First(&design).Error; err != nil {
		return nil, err
	}
	return &design, nil
}

func (r *repository) FindColor(ctx context.Context, id uuid.UUID) (*models.Color, error) {
	var color models.Color
	if err := r.DB(ctx).Where("id = ?", id).First(&color).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

func (r *repository) FindDoorType(ctx context.Context, id uuid.UUID) (*models.DoorType, error) {
	var doorType models.DoorType
	if err := r.DB(ctx).Where("id = ?", id).First(&doorType).Error; err != nil {
		return nil, err
	}
	return &doorType, nil
}

func (r *repository) CreateDoorType(ctx context.Context, doorType *models.DoorType) error {
	return r.DB(ctx).Create(doorType).Error
}

func (r *repository) CreateDesign(ctx context.Context, design *models.Design) error {
	return r.DB(ctx).Create(design).Error
}

func (r *repository) CreateColor(ctx context.Context, color *models.Color) error {
	return r.DB(ctx).Create(color).Error
}

func (r *repository) UpdateDesign(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.DB(ctx).Model(&models.Design{}).Where("id = ?", id).Updates(updates).Error
}
