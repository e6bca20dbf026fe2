package dealers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisrojasb/doorline-backend/pkg/db/models"
	pkgerrors "github.com/luisrojasb/doorline-backend/pkg/errors"
)

// CreateInput captures the fields a distributor provides for a new dealer.
type CreateInput struct {
	DistributorID uuid.UUID
	Name          string
	Phone         *string
	City          *string
}

// Service defines dealer-network management operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Dealer, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Dealer, error)
	List(ctx context.Context, distributorID uuid.UUID, activeOnly bool) ([]models.Dealer, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService wires dealer dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "dealers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Dealer, error) {
	if input.DistributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dealer name required")
	}

	dealer := &models.Dealer{
		DistributorID: input.DistributorID,
		Name:          name,
		Phone:         input.Phone,
		City:          input.City,
		Active:        true,
	}
	if err := s.repo.Create(ctx, dealer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create dealer")
	}
	return dealer, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Dealer, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dealer id required")
	}
	dealer, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "dealer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dealer")
	}
	return dealer, nil
}

func (s *service) List(ctx context.Context, distributorID uuid.UUID, activeOnly bool) ([]models.Dealer, error) {
	dealers, err := s.repo.List(ctx, distributorID, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list dealers")
	}
	return dealers, nil
}

// Deactivate keeps the dealer row for order history; placing new orders is a
// controller-level concern gated on the active flag.
func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "dealer id required")
	}

	now := time.Now().UTC()
	affected, err := s.repo.Update(ctx, id, map[string]any{
		"active":         false,
		"deactivated_at": now,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate dealer")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "dealer not found")
	}
	return nil
}
