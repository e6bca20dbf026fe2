package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisrojasb/doorline-backend/pkg/db/models"
	"github.com/luisrojasb/doorline-backend/pkg/enums"
	pkgerrors "github.com/luisrojasb/doorline-backend/pkg/errors"
	"github.com/luisrojasb/doorline-backend/pkg/metrics"
	"github.com/luisrojasb/doorline-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

const (
	placeOutcomePlaced   = "placed"
	placeOutcomeRejected = "rejected"
	placeOutcomeError    = "error"
)

type service struct {
	repo    Repository
	tx      txRunner
	metrics *metrics.OrderMetrics
}

// NewService builds an order service with the required dependencies. Metrics
// may be nil, in which case instrumentation is skipped.
func NewService(repo Repository, tx txRunner, orderMetrics *metrics.OrderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		metrics: orderMetrics,
	}, nil
}

// Place persists the order and its items in one transaction. Items arrive
// pre-validated from the cart builder; only structural guards apply here.
func (s *service) Place(ctx context.Context, dealerID uuid.UUID, items []NewItem) (*models.Order, error) {
	start := time.Now()

	if dealerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dealer id required")
	}
	if len(items) == 0 {
		s.metrics.ObservePlaceDuration(placeOutcomeRejected, time.Since(start))
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	for i, item := range items {
		if item.Width <= 0 || item.Height <= 0 || item.Quantity < 1 || !item.Thickness.IsValid() {
			s.metrics.ObservePlaceDuration(placeOutcomeRejected, time.Since(start))
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order item").
				WithDetails(map[string]any{"line_index": i})
		}
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		created, err := repo.CreateOrder(ctx, &models.Order{
			DealerID: dealerID,
			Status:   enums.OrderStatusReceived,
		})
		if err != nil {
			return err
		}

		rows := make([]models.OrderItem, len(items))
		for i, item := range items {
			rows[i] = models.OrderItem{
				OrderID:             created.ID,
				LineIndex:           i,
				DesignNameSnapshot:  item.DesignName,
				DesignImageSnapshot: item.DesignImage,
				ColorNameSnapshot:   item.ColorName,
				Width:               item.Width,
				Height:              item.Height,
				Thickness:           item.Thickness,
				Quantity:            item.Quantity,
				HasLock:             item.HasLock,
				HasVent:             item.HasVent,
			}
		}
		if err := repo.CreateOrderItems(ctx, rows); err != nil {
			return err
		}

		created.Items = rows
		order = created
		return nil
	})
	if err != nil {
		s.metrics.ObservePlaceDuration(placeOutcomeError, time.Since(start))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	s.metrics.IncPlaced(dealerID.String())
	s.metrics.ObservePlaceDuration(placeOutcomePlaced, time.Since(start))
	return order, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// UpdateStatus moves the order along the lifecycle table. The write is a
// compare-and-swap against the status observed here, so a concurrent writer
// surfaces as a state conflict rather than a lost update.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus, actor enums.ActorRole) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"status": string(next)})
	}
	if !actor.CanAdvanceOrders() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot update order status")
	}

	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if err := s.transition(ctx, order.ID, order.Status, next); err != nil {
		return nil, err
	}
	order.Status = next
	return order, nil
}

// Cancel is the dealer-side exit: only the owning dealer may cancel, and only
// while the order is still received.
func (s *service) Cancel(ctx context.Context, orderID, requestingDealerID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if requestingDealerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "dealer identity missing")
	}

	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.DealerID != requestingDealerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to dealer")
	}
	if order.Status != enums.OrderStatusReceived {
		s.metrics.IncRejection(order.Status.String(), enums.OrderStatusCancelled.String())
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only received orders can be cancelled")
	}

	if err := s.transition(ctx, order.ID, order.Status, enums.OrderStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = enums.OrderStatusCancelled
	return order, nil
}

func (s *service) transition(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus) error {
	if !from.CanTransition(to) {
		s.metrics.IncRejection(from.String(), to.String())
		return pkgerrors.New(pkgerrors.CodeStateConflict, "status transition not allowed").
			WithDetails(map[string]any{"from": from.String(), "to": to.String()})
	}

	swapped, err := s.repo.UpdateOrderStatus(ctx, orderID, from, to)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if !swapped {
		s.metrics.IncRejection(from.String(), to.String())
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order status changed concurrently")
	}

	s.metrics.IncTransition(from.String(), to.String())
	return nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error) {
	if filters.StatusClass != "" && !filters.StatusClass.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	list, err := s.repo.ListOrders(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func (s *service) Group(ctx context.Context, groupBy enums.GroupBy, filters ListFilters) (*Grouping, error) {
	if !groupBy.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid group by")
	}

	grouping := &Grouping{GroupBy: groupBy}
	switch groupBy {
	case enums.GroupByOrder:
		list, err := s.List(ctx, pagination.Params{}, filters)
		if err != nil {
			return nil, err
		}
		grouping.Orders = list.Orders
	case enums.GroupByDealer:
		groups, err := s.repo.GroupByDealer(ctx, filters)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "group orders by dealer")
		}
		grouping.Dealers = groups
	case enums.GroupByDesign:
		groups, err := s.repo.GroupByDesign(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "group items by design")
		}
		grouping.Designs = groups
	case enums.GroupByColor:
		groups, err := s.repo.GroupByColor(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "group items by color")
		}
		grouping.Colors = groups
	}
	return grouping, nil
}
