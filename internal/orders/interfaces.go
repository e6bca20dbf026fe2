package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisrojasb/doorline-backend/pkg/db/models"
	"github.com/luisrojasb/doorline-backend/pkg/enums"
	"github.com/luisrojasb/doorline-backend/pkg/pagination"
)

// Repository defines persistence operations for the order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus) (bool, error)
	ListOrders(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error)
	GroupByDealer(ctx context.Context, filters ListFilters) ([]DealerGroup, error)
	GroupByDesign(ctx context.Context) ([]DesignGroup, error)
	GroupByColor(ctx context.Context) ([]ColorGroup, error)
}

// Service defines order-level operations beyond repository reads.
type Service interface {
	Place(ctx context.Context, dealerID uuid.UUID, items []NewItem) (*models.Order, error)
	Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus, actor enums.ActorRole) (*models.Order, error)
	Cancel(ctx context.Context, orderID, requestingDealerID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error)
	Group(ctx context.Context, groupBy enums.GroupBy, filters ListFilters) (*Grouping, error)
}
