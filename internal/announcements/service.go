package announcements

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/luisrojasb/doorline-backend/pkg/db/models"
	pkgerrors "github.com/luisrojasb/doorline-backend/pkg/errors"
	"github.com/luisrojasb/doorline-backend/pkg/pagination"
)

// Service defines distributor broadcast operations.
type Service interface {
	Create(ctx context.Context, distributorID uuid.UUID, title, body string) (*models.Announcement, error)
	List(ctx context.Context, params pagination.Params) (*ListResult, error)
}

// ListResult wraps returned announcements and the cursor for the next page.
type ListResult struct {
	Items  []models.Announcement `json:"items"`
	Cursor string                `json:"cursor,omitempty"`
}

type service struct {
	repo Repository
}

// NewService wires announcement dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "announcements repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, distributorID uuid.UUID, title, body string) (*models.Announcement, error) {
	if distributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id required")
	}
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "announcement title required")
	}
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "announcement body required")
	}

	announcement := &models.Announcement{
		DistributorID: distributorID,
		Title:         title,
		Body:          body,
	}
	if err := s.repo.Create(ctx, announcement); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create announcement")
	}
	return announcement, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	var cursor *pagination.Cursor
	if params.Cursor != "" {
		parsed, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		cursor = parsed
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.List(ctx, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list announcements")
	}

	result := &ListResult{Items: rows}
	if len(rows) > limit {
		result.Items = rows[:limit]
		last := result.Items[limit-1]
		result.Cursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}
