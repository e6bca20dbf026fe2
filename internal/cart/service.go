package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/luisrojasb/doorline-backend/internal/catalog"
	"github.com/luisrojasb/doorline-backend/internal/orders"
	"github.com/luisrojasb/doorline-backend/pkg/db/models"
	pkgerrors "github.com/luisrojasb/doorline-backend/pkg/errors"
)

// selectionResolver is the slice of the catalog service the cart needs.
type selectionResolver interface {
	ResolveSelection(ctx context.Context, doorTypeID, designID, colorID uuid.UUID) (*catalog.Selection, error)
}

// orderPlacer is the slice of the orders service the cart needs.
type orderPlacer interface {
	Place(ctx context.Context, dealerID uuid.UUID, items []orders.NewItem) (*models.Order, error)
}

// Service drives the cart builder: every operation loads the session state,
// applies one mutation and stores it back.
type Service interface {
	Get(ctx context.Context, dealerID, sessionID uuid.UUID) (*State, error)
	Select(ctx context.Context, dealerID, sessionID, doorTypeID, designID, colorID uuid.UUID) (*State, error)
	AddRow(ctx context.Context, dealerID, sessionID uuid.UUID) (*State, error)
	RemoveRow(ctx context.Context, dealerID, sessionID, rowID uuid.UUID) (*State, error)
	UpdateRow(ctx context.Context, dealerID, sessionID, rowID uuid.UUID, field, value string) (*State, error)
	AddAllToCart(ctx context.Context, dealerID, sessionID uuid.UUID) (*State, error)
	RemoveFromCart(ctx context.Context, dealerID, sessionID, itemID uuid.UUID) (*State, error)
	ClearCart(ctx context.Context, dealerID, sessionID uuid.UUID) (*State, error)
	PlaceOrder(ctx context.Context, dealerID, sessionID uuid.UUID) (*models.Order, error)
}

type service struct {
	store   SessionStore
	catalog selectionResolver
	orders  orderPlacer
}

// NewService builds the cart service with the required collaborators.
func NewService(store SessionStore, catalogSvc selectionResolver, ordersSvc orderPlacer) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart session store required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if ordersSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	return &service{store: store, catalog: catalogSvc, orders: ordersSvc}, nil
}

func (s *service) Get(ctx context.Context, dealerID, sessionID uuid.UUID) (*State, error) {
	if err := requireSession(dealerID, sessionID); err != nil {
		return nil, err
	}
	return s.store.Load(ctx, dealerID, sessionID)
}

func (s *service) Select(ctx context.Context, dealerID, sessionID, doorTypeID, designID, colorID uuid.UUID) (*State, error) {
	resolved, err := s.catalog.ResolveSelection(ctx, doorTypeID, designID, colorID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, dealerID, sessionID, func(state *State) error {
		state.SetSelection(Selection{
			DoorTypeID:  resolved.DoorTypeID,
			DesignID:    resolved.DesignID,
			ColorID:     resolved.ColorID,
			DesignName:  resolved.DesignName,
			DesignImage: resolved.DesignImage,
			ColorName:   resolved.ColorName,
		})
		return nil
	})
}

func (s *service) AddRow(ctx context.Context, dealerID, sessionID uuid.UUID) (*State, error) {
	return s.mutate(ctx, dealerID, sessionID, func(state *State) error {
		state.AddRow()
		return nil
	})
}

func (s *service) RemoveRow(ctx context.Context, dealerID, sessionID, rowID uuid.UUID) (*State, error) {
	return s.mutate(ctx, dealerID, sessionID, func(state *State) error {
		state.RemoveRow(rowID)
		return nil
	})
}

func (s *service) UpdateRow(ctx context.Context, dealerID, sessionID, rowID uuid.UUID, field, value string) (*State, error) {
	return s.mutate(ctx, dealerID, sessionID, func(state *State) error {
		return state.UpdateRow(rowID, field, value)
	})
}

func (s *service) AddAllToCart(ctx context.Context, dealerID, sessionID uuid.UUID) (*State, error) {
	return s.mutate(ctx, dealerID, sessionID, func(state *State) error {
		return state.AddAllToCart()
	})
}

func (s *service) RemoveFromCart(ctx context.Context, dealerID, sessionID, itemID uuid.UUID) (*State, error) {
	return s.mutate(ctx, dealerID, sessionID, func(state *State) error {
		state.RemoveFromCart(itemID)
		return nil
	})
}

func (s *service) ClearCart(ctx context.Context, dealerID, sessionID uuid.UUID) (*State, error) {
	return s.mutate(ctx, dealerID, sessionID, func(state *State) error {
		state.ClearCart()
		return nil
	})
}

// PlaceOrder hands the cart items to the orders service and drops the session
// only after the order committed. A failed placement leaves the cart intact so
// the dealer can retry.
func (s *service) PlaceOrder(ctx context.Context, dealerID, sessionID uuid.UUID) (*models.Order, error) {
	if err := requireSession(dealerID, sessionID); err != nil {
		return nil, err
	}
	state, err := s.store.Load(ctx, dealerID, sessionID)
	if err != nil {
		return nil, err
	}
	if len(state.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	items := make([]orders.NewItem, len(state.Items))
	for i, item := range state.Items {
		items[i] = orders.NewItem{
			DesignName:  item.DesignName,
			DesignImage: item.DesignImage,
			ColorName:   item.ColorName,
			Width:       item.Width,
			Height:      item.Height,
			Thickness:   item.Thickness,
			Quantity:    item.Quantity,
			HasLock:     item.HasLock,
			HasVent:     item.HasVent,
		}
	}

	order, err := s.orders.Place(ctx, dealerID, items)
	if err != nil {
		return nil, err
	}
	if err := s.store.Clear(ctx, dealerID, sessionID); err != nil {
		// Order committed; stale session data expires on its own TTL.
		return order, nil
	}
	return order, nil
}

func (s *service) mutate(ctx context.Context, dealerID, sessionID uuid.UUID, fn func(*State) error) (*State, error) {
	if err := requireSession(dealerID, sessionID); err != nil {
		return nil, err
	}
	state, err := s.store.Load(ctx, dealerID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(state); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, dealerID, sessionID, state); err != nil {
		return nil, err
	}
	return state, nil
}

func requireSession(dealerID, sessionID uuid.UUID) error {
	if dealerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "dealer id required")
	}
	if sessionID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	return nil
}
