package dealers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisrojasb/doorline-backend/pkg/db/models"
	pkgerrors "github.com/luisrojasb/doorline-backend/pkg/errors"
)

type stubDealersRepo struct {
	dealer    *models.Dealer
	dealers   []models.Dealer
	findErr   error
	createErr error
	affected  int64
	updateErr error
	updates   map[string]any
}

func (s *stubDealersRepo) Create(_ context.Context, dealer *models.Dealer) error {
	if s.createErr != nil {
		return s.createErr
	}
	dealer.ID = uuid.New()
	s.dealer = dealer
	return nil
}

func (s *stubDealersRepo) Find(_ context.Context, _ uuid.UUID) (*models.Dealer, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.dealer, nil
}

func (s *stubDealersRepo) List(_ context.Context, _ uuid.UUID, _ bool) ([]models.Dealer, error) {
	return s.dealers, nil
}

func (s *stubDealersRepo) Update(_ context.Context, _ uuid.UUID, updates map[string]any) (int64, error) {
	if s.updateErr != nil {
		return 0, s.updateErr
	}
	s.updates = updates
	return s.affected, nil
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func TestServiceCreateValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubDealersRepo{})

	_, err := svc.Create(context.Background(), CreateInput{Name: "Dealer"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing distributor, got %v", err)
	}

	_, err = svc.Create(context.Background(), CreateInput{DistributorID: uuid.New(), Name: "   "})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestServiceCreateSuccess(t *testing.T) {
	t.Parallel()

	repo := &stubDealersRepo{}
	svc := newTestService(t, repo)

	distributorID := uuid.New()
	dealer, err := svc.Create(context.Background(), CreateInput{DistributorID: distributorID, Name: "  North Gate Doors  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dealer.Name != "North Gate Doors" {
		t.Fatalf("expected trimmed name, got %q", dealer.Name)
	}
	if !dealer.Active || dealer.DistributorID != distributorID {
		t.Fatalf("unexpected dealer: %+v", dealer)
	}
}

func TestServiceGetNotFound(t *testing.T) {
	t.Parallel()

	repo := &stubDealersRepo{findErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, repo)

	_, err := svc.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServiceDeactivate(t *testing.T) {
	t.Parallel()

	repo := &stubDealersRepo{affected: 1}
	svc := newTestService(t, repo)

	if err := svc.Deactivate(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updates["active"] != false || repo.updates["deactivated_at"] == nil {
		t.Fatalf("unexpected updates: %+v", repo.updates)
	}
}

func TestServiceDeactivateUnknownDealer(t *testing.T) {
	t.Parallel()

	repo := &stubDealersRepo{affected: 0}
	svc := newTestService(t, repo)

	err := svc.Deactivate(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}
