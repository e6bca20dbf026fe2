package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisrojasb/doorline-backend/pkg/db/models"
	pkgerrors "github.com/luisrojasb/doorline-backend/pkg/errors"
)

const cacheCollection = "listing"

type cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CatalogCacheKey(collection string) string
}

// Listing is the full catalog snapshot the dashboards render pickers from.
type Listing struct {
	DoorTypes []models.DoorType `json:"door_types"`
	Designs   []models.Design   `json:"designs"`
	Colors    []models.Color    `json:"colors"`
}

// Selection is a resolved design/color pair with the denormalized fields the
// cart copies into line items.
type Selection struct {
	DoorTypeID  uuid.UUID
	DesignID    uuid.UUID
	ColorID     uuid.UUID
	DesignName  string
	DesignImage string
	ColorName   string
}

// Service exposes catalog reads plus the admin writes that maintain it.
type Service interface {
	List(ctx context.Context) (*Listing, error)
	ResolveSelection(ctx context.Context, doorTypeID, designID, colorID uuid.UUID) (*Selection, error)
	CreateDoorType(ctx context.Context, name string) (*models.DoorType, error)
	CreateDesign(ctx context.Context, doorTypeID uuid.UUID, name, imageURL string) (*models.Design, error)
	CreateColor(ctx context.Context, name string) (*models.Color, error)
	RenameDesign(ctx context.Context, id uuid.UUID, name string) error
}

type service struct {
	repo     Repository
	cache    cache
	cacheTTL time.Duration
}

// NewService builds a catalog service with a redis read-through cache.
func NewService(repo Repository, cache cache, cacheTTL time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if cache == nil {
		return nil, fmt.Errorf("catalog cache required")
	}
	return &service{repo: repo, cache: cache, cacheTTL: cacheTTL}, nil
}

func (s *service) List(ctx context.Context) (*Listing, error) {
	// Cache misses, corrupt entries and redis being down all fall through to
	// the source of truth.
	key := s.cache.CatalogCacheKey(cacheCollection)
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		var listing Listing
		if err := json.Unmarshal([]byte(cached), &listing); err == nil {
			return &listing, nil
		}
		_ = s.cache.Del(ctx, key)
	}

	doorTypes, err := s.repo.ListDoorTypes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list door types")
	}
	designs, err := s.repo.ListDesigns(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list designs")
	}
	colors, err := s.repo.ListColors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list colors")
	}

	listing := &Listing{DoorTypes: doorTypes, Designs: designs, Colors: colors}
	if payload, err := json.Marshal(listing); err == nil {
		_ = s.cache.Set(ctx, key, string(payload), s.cacheTTL)
	}
	return listing, nil
}

func (s *service) ResolveSelection(ctx context.Context, doorTypeID, designID, colorID uuid.UUID) (*Selection, error) {
	if doorTypeID == uuid.Nil || designID == uuid.Nil || colorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "door type, design and color are required")
	}

	design, err := s.repo.FindDesign(ctx, designID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "design not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load design")
	}
	if design.DoorTypeID != doorTypeID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "design does not belong to door type")
	}

	color, err := s.repo.FindColor(ctx, colorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "color not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load color")
	}

	return &Selection{
		DoorTypeID:  doorTypeID,
		DesignID:    design.ID,
		ColorID:     color.ID,
		DesignName:  design.Name,
		DesignImage: design.ImageURL,
		ColorName:   color.Name,
	}, nil
}

func (s *service) CreateDoorType(ctx context.Context, name string) (*models.DoorType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "door type name is required")
	}
	doorType := &models.DoorType{Name: name}
	if err := s.repo.CreateDoorType(ctx, doorType); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create door type")
	}
	s.invalidate(ctx)
	return doorType, nil
}

func (s *service) CreateDesign(ctx context.Context, doorTypeID uuid.UUID, name, imageURL string) (*models.Design, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "design name is required")
	}
	if doorTypeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "door type id is required")
	}
	if _, err := s.repo.FindDoorType(ctx, doorTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "door type not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load door type")
	}
	design := &models.Design{DoorTypeID: doorTypeID, Name: name, ImageURL: strings.TrimSpace(imageURL)}
	if err := s.repo.CreateDesign(ctx, design); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create design")
	}
	s.invalidate(ctx)
	return design, nil
}

func (s *service) CreateColor(ctx context.Context, name string) (*models.Color, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "color name is required")
	}
	color := &models.Color{Name: name}
	if err := s.repo.CreateColor(ctx, color); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create color")
	}
	s.invalidate(ctx)
	return color, nil
}

func (s *service) RenameDesign(ctx context.Context, id uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "design name is required")
	}
	if _, err := s.repo.FindDesign(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "design not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load design")
	}
	if err := s.repo.UpdateDesign(ctx, id, map[string]any{"name": name}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rename design")
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	_ = s.cache.Del(ctx, s.cache.CatalogCacheKey(cacheCollection))
}
