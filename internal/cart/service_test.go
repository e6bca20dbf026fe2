package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/luisrojasb/doorline-backend/internal/catalog"
	"github.com/luisrojasb/doorline-backend/internal/orders"
	"github.com/luisrojasb/doorline-backend/pkg/db/models"
	"github.com/luisrojasb/doorline-backend/pkg/enums"
	pkgerrors "github.com/luisrojasb/doorline-backend/pkg/errors"
)

type memoryStore struct {
	states   map[string]*State
	loadErr  error
	saveErr  error
	clearErr error
	cleared  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{states: map[string]*State{}}
}

func (m *memoryStore) key(dealerID, sessionID uuid.UUID) string {
	return dealerID.String() + ":" + sessionID.String()
}

func (m *memoryStore) Load(_ context.Context, dealerID, sessionID uuid.UUID) (*State, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if state, ok := m.states[m.key(dealerID, sessionID)]; ok {
		return state, nil
	}
	return NewState(), nil
}

func (m *memoryStore) Save(_ context.Context, dealerID, sessionID uuid.UUID, state *State) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.states[m.key(dealerID, sessionID)] = state
	return nil
}

func (m *memoryStore) Clear(_ context.Context, dealerID, sessionID uuid.UUID) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared++
	delete(m.states, m.key(dealerID, sessionID))
	return nil
}

type stubResolver struct {
	selection *catalog.Selection
	err       error
}

func (s *stubResolver) ResolveSelection(_ context.Context, doorTypeID, designID, colorID uuid.UUID) (*catalog.Selection, error) {
	if s.err != nil {
		return nil, s.err
	}
	sel := *s.selection
	sel.DoorTypeID = doorTypeID
	sel.DesignID = designID
	sel.ColorID = colorID
	return &sel, nil
}

type stubPlacer struct {
	order  *models.Order
	err    error
	placed []orders.NewItem
}

func (s *stubPlacer) Place(_ context.Context, dealerID uuid.UUID, items []orders.NewItem) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.placed = items
	if s.order == nil {
		s.order = &models.Order{ID: uuid.New(), DealerID: dealerID, Status: enums.OrderStatusReceived}
	}
	return s.order, nil
}

func newTestService(t *testing.T, store SessionStore, resolver selectionResolver, placer orderPlacer) Service {
	t.Helper()
	svc, err := NewService(store, resolver, placer)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func readyCart(t *testing.T, svc Service, dealerID, sessionID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	if _, err := svc.Select(ctx, dealerID, sessionID, uuid.New(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("select: %v", err)
	}
	state, err := svc.Get(ctx, dealerID, sessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	rowID := state.Rows[0].ID
	if _, err := svc.UpdateRow(ctx, dealerID, sessionID, rowID, FieldWidth, "90"); err != nil {
		t.Fatalf("width: %v", err)
	}
	if _, err := svc.UpdateRow(ctx, dealerID, sessionID, rowID, FieldHeight, "210"); err != nil {
		t.Fatalf("height: %v", err)
	}
	if _, err := svc.AddAllToCart(ctx, dealerID, sessionID); err != nil {
		t.Fatalf("add all: %v", err)
	}
}

func TestServiceSelectStoresSnapshot(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	resolver := &stubResolver{selection: &catalog.Selection{DesignName: "D-101", DesignImage: "img", ColorName: "Walnut"}}
	svc := newTestService(t, store, resolver, &stubPlacer{})

	dealerID, sessionID := uuid.New(), uuid.New()
	state, err := svc.Select(context.Background(), dealerID, sessionID, uuid.New(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Selection == nil || state.Selection.DesignName != "D-101" || state.Selection.ColorName != "Walnut" {
		t.Fatalf("expected resolved selection on state, got %+v", state.Selection)
	}

	reloaded, err := svc.Get(context.Background(), dealerID, sessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reloaded.Selection == nil || reloaded.Selection.DesignName != "D-101" {
		t.Fatal("expected selection persisted to store")
	}
}

func TestServiceSelectPropagatesCatalogError(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{err: pkgerrors.New(pkgerrors.CodeNotFound, "design not found")}
	svc := newTestService(t, newMemoryStore(), resolver, &stubPlacer{})

	_, err := svc.Select(context.Background(), uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServiceUpdateRowFailureDoesNotPersist(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	svc := newTestService(t, store, &stubResolver{selection: &catalog.Selection{}}, &stubPlacer{})

	dealerID, sessionID := uuid.New(), uuid.New()
	if _, err := svc.AddRow(context.Background(), dealerID, sessionID); err != nil {
		t.Fatalf("add row: %v", err)
	}

	_, err := svc.UpdateRow(context.Background(), dealerID, sessionID, uuid.New(), FieldWidth, "90")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}

	state, err := svc.Get(context.Background(), dealerID, sessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(state.Rows) != 2 {
		t.Fatalf("expected stored state unchanged with 2 rows, got %d", len(state.Rows))
	}
}

func TestServicePlaceOrderEmptyCart(t *testing.T) {
	t.Parallel()

	placer := &stubPlacer{}
	svc := newTestService(t, newMemoryStore(), &stubResolver{selection: &catalog.Selection{}}, placer)

	_, err := svc.PlaceOrder(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
	if placer.placed != nil {
		t.Fatal("expected no placement attempt for empty cart")
	}
}

func TestServicePlaceOrderClearsSessionOnSuccess(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	resolver := &stubResolver{selection: &catalog.Selection{DesignName: "D-101", DesignImage: "img", ColorName: "Walnut"}}
	placer := &stubPlacer{}
	svc := newTestService(t, store, resolver, placer)

	dealerID, sessionID := uuid.New(), uuid.New()
	readyCart(t, svc, dealerID, sessionID)

	order, err := svc.PlaceOrder(context.Background(), dealerID, sessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order == nil || order.DealerID != dealerID {
		t.Fatalf("unexpected order: %+v", order)
	}
	if len(placer.placed) != 1 || placer.placed[0].DesignName != "D-101" {
		t.Fatalf("expected snapshot fields forwarded, got %+v", placer.placed)
	}
	if store.cleared != 1 {
		t.Fatalf("expected session cleared once, got %d", store.cleared)
	}
}

func TestServicePlaceOrderKeepsCartOnFailure(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	resolver := &stubResolver{selection: &catalog.Selection{DesignName: "D-101", DesignImage: "img", ColorName: "Walnut"}}
	placer := &stubPlacer{err: pkgerrors.New(pkgerrors.CodeDependency, "persist order")}
	svc := newTestService(t, store, resolver, placer)

	dealerID, sessionID := uuid.New(), uuid.New()
	readyCart(t, svc, dealerID, sessionID)

	_, err := svc.PlaceOrder(context.Background(), dealerID, sessionID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.cleared != 0 {
		t.Fatal("expected session kept after failed placement")
	}
	state, err := svc.Get(context.Background(), dealerID, sessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(state.Items) != 1 {
		t.Fatalf("expected cart intact, got %d items", len(state.Items))
	}
}

func TestServiceRequiresSessionIdentity(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMemoryStore(), &stubResolver{selection: &catalog.Selection{}}, &stubPlacer{})

	cases := []struct {
		name      string
		dealerID  uuid.UUID
		sessionID uuid.UUID
	}{
		{"missing dealer", uuid.Nil, uuid.New()},
		{"missing session", uuid.New(), uuid.Nil},
	}
	for i, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("%d_%s", i, tc.name), func(t *testing.T) {
			t.Parallel()
			_, err := svc.Get(context.Background(), tc.dealerID, tc.sessionID)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
