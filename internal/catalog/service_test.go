package catalog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisrojasb/doorline-backend/pkg/db/models"
	pkgerrors "github.com/luisrojasb/doorline-backend/pkg/errors"
	"github.com/luisrojasb/doorline-backend/pkg/redis"
)

type stubCatalogRepo struct {
	doorTypes []models.DoorType
	designs   []models.Design
	colors    []models.Color
	design    *models.Design
	color     *models.Color
	doorType  *models.DoorType
	designErr error
	colorErr  error
	listCalls int
	updates   map[string]any
}

func (s *stubCatalogRepo) ListDoorTypes(_ context.Context) ([]models.DoorType, error) {
	s.listCalls++
	return s.doorTypes, nil
}

func (s *stubCatalogRepo) ListDesigns(_ context.Context) ([]models.Design, error) {
	return s.designs, nil
}

func (s *stubCatalogRepo) ListColors(_ context.Context) ([]models.Color, error) {
	return s.colors, nil
}

func (s *stubCatalogRepo) FindDesign(_ context.Context, _ uuid.UUID) (*models.Design, error) {
	if s.designErr != nil {
		return nil, s.designErr
	}
	return s.design, nil
}

func (s *stubCatalogRepo) FindColor(_ context.Context, _ uuid.UUID) (*models.Color, error) {
	if s.colorErr != nil {
		return nil, s.colorErr
	}
	return s.color, nil
}

func (s *stubCatalogRepo) FindDoorType(_ context.Context, _ uuid.UUID) (*models.DoorType, error) {
	if s.doorType == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.doorType, nil
}

func (s *stubCatalogRepo) CreateDoorType(_ context.Context, doorType *models.DoorType) error {
	doorType.ID = uuid.New()
	return nil
}

func (s *stubCatalogRepo) CreateDesign(_ context.Context, design *models.Design) error {
	design.ID = uuid.New()
	return nil
}

func (s *stubCatalogRepo) CreateColor(_ context.Context, color *models.Color) error {
	color.ID = uuid.New()
	return nil
}

func (s *stubCatalogRepo) UpdateDesign(_ context.Context, _ uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return nil
}

type fakeCache struct {
	values  map[string]string
	deleted []string
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case string:
		f.values[key] = v
	case []byte:
		f.values[key] = string(v)
	}
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
		f.deleted = append(f.deleted, key)
	}
	return nil
}

func (f *fakeCache) CatalogCacheKey(collection string) string {
	return "dl:catalog:" + collection
}

func newTestService(t *testing.T, repo Repository, cache cache) Service {
	t.Helper()
	svc, err := NewService(repo, cache, 5*time.Minute)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func TestServiceListPopulatesCache(t *testing.T) {
	t.Parallel()

	repo := &stubCatalogRepo{
		doorTypes: []models.DoorType{{ID: uuid.New(), Name: "Interior"}},
		designs:   []models.Design{{ID: uuid.New(), Name: "D-101"}},
		colors:    []models.Color{{ID: uuid.New(), Name: "Walnut"}},
	}
	cache := newFakeCache()
	svc := newTestService(t, repo, cache)

	listing, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listing.DoorTypes) != 1 || len(listing.Designs) != 1 || len(listing.Colors) != 1 {
		t.Fatalf("unexpected listing: %+v", listing)
	}
	if _, ok := cache.values["dl:catalog:listing"]; !ok {
		t.Fatal("expected listing written to cache")
	}

	// Second read must come from the cache.
	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected single repo read, got %d", repo.listCalls)
	}
}

func TestServiceListToleratesCacheDown(t *testing.T) {
	t.Parallel()

	repo := &stubCatalogRepo{doorTypes: []models.DoorType{{ID: uuid.New(), Name: "Exterior"}}}
	cache := newFakeCache()
	cache.getErr = context.DeadlineExceeded
	svc := newTestService(t, repo, cache)

	listing, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listing.DoorTypes) != 1 {
		t.Fatalf("unexpected listing: %+v", listing)
	}
}

func TestServiceListDropsCorruptCacheEntry(t *testing.T) {
	t.Parallel()

	repo := &stubCatalogRepo{}
	cache := newFakeCache()
	cache.values["dl:catalog:listing"] = "{broken"
	svc := newTestService(t, repo, cache)

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.listCalls != 1 {
		t.Fatal("expected fallthrough to repository")
	}
	var listing Listing
	if err := json.Unmarshal([]byte(cache.values["dl:catalog:listing"]), &listing); err != nil {
		t.Fatalf("expected cache rewritten with valid payload: %v", err)
	}
}

func TestServiceResolveSelection(t *testing.T) {
	t.Parallel()

	doorTypeID := uuid.New()
	design := &models.Design{ID: uuid.New(), DoorTypeID: doorTypeID, Name: "D-101", ImageURL: "img"}
	color := &models.Color{ID: uuid.New(), Name: "Walnut"}
	repo := &stubCatalogRepo{design: design, color: color}
	svc := newTestService(t, repo, newFakeCache())

	sel, err := svc.ResolveSelection(context.Background(), doorTypeID, design.ID, color.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.DesignName != "D-101" || sel.ColorName != "Walnut" || sel.DesignImage != "img" {
		t.Fatalf("unexpected selection: %+v", sel)
	}
}

func TestServiceResolveSelectionWrongDoorType(t *testing.T) {
	t.Parallel()

	design := &models.Design{ID: uuid.New(), DoorTypeID: uuid.New(), Name: "D-101"}
	repo := &stubCatalogRepo{design: design, color: &models.Color{ID: uuid.New(), Name: "Oak"}}
	svc := newTestService(t, repo, newFakeCache())

	_, err := svc.ResolveSelection(context.Background(), uuid.New(), design.ID, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServiceResolveSelectionNotFound(t *testing.T) {
	t.Parallel()

	repo := &stubCatalogRepo{designErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, repo, newFakeCache())

	_, err := svc.ResolveSelection(context.Background(), uuid.New(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServiceRenameDesignInvalidatesCache(t *testing.T) {
	t.Parallel()

	design := &models.Design{ID: uuid.New(), DoorTypeID: uuid.New(), Name: "D-101"}
	repo := &stubCatalogRepo{design: design}
	cache := newFakeCache()
	cache.values["dl:catalog:listing"] = "{}"
	svc := newTestService(t, repo, cache)

	if err := svc.RenameDesign(context.Background(), design.ID, "D-101 v2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updates["name"] != "D-101 v2" {
		t.Fatalf("unexpected updates: %+v", repo.updates)
	}
	if len(cache.deleted) != 1 {
		t.Fatal("expected cache invalidated")
	}
}
