package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisrojasb/doorline-backend/internal/repo"
	"github.com/luisrojasb/doorline-backend/pkg/db/models"
	"github.com/luisrojasb/doorline-backend/pkg/enums"
	"github.com/luisrojasb/doorline-backend/pkg/pagination"
)

type repository struct {
	repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.DB(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB(ctx).Create(&items).Error
}

func (r *repository) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.DB(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_index ASC")
		}).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus applies a compare-and-swap on the status column. A false
// return with nil error means the row no longer carries the expected status.
func (r *repository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus) (bool, error) {
	res := r.DB(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ListOrders(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.DB(ctx).Model(&models.Order{}).
		Select("orders.id, orders.dealer_id, orders.status, orders.created_at, COALESCE(SUM(order_items.quantity), 0) AS total_items").
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Group("orders.id")

	query = applyFilters(query, filters)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"orders.created_at < ? OR (orders.created_at = ? AND orders.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []OrderSummary
	err = query.
		Order("orders.created_at DESC, orders.id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &OrderList{Orders: rows}
	if len(rows) > limit {
		list.Orders = rows[:limit]
		last := list.Orders[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}

func (r *repository) GroupByDealer(ctx context.Context, filters ListFilters) ([]DealerGroup, error) {
	query := r.DB(ctx).Model(&models.Order{}).
		Select("orders.dealer_id, dealers.name AS dealer_name, COUNT(DISTINCT orders.id) AS total_orders, COALESCE(SUM(order_items.quantity), 0) AS total_items").
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Joins("LEFT JOIN dealers ON dealers.id = orders.dealer_id").
		Group("orders.dealer_id, dealers.name").
		Order("total_items DESC")

	query = applyFilters(query, filters)

	var groups []DealerGroup
	if err := query.Scan(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// GroupByDesign totals item quantity per design snapshot name across every
// order regardless of status, cancellations included.
func (r *repository) GroupByDesign(ctx context.Context) ([]DesignGroup, error) {
	var groups []DesignGroup
	err := r.DB(ctx).Model(&models.OrderItem{}).
		Select("design_name_snapshot AS design_name, COALESCE(SUM(quantity), 0) AS total_items").
		Group("design_name_snapshot").
		Order("total_items DESC").
		Scan(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// GroupByColor mirrors GroupByDesign for the color snapshot.
func (r *repository) GroupByColor(ctx context.Context) ([]ColorGroup, error) {
	var groups []ColorGroup
	err := r.DB(ctx).Model(&models.OrderItem{}).
		Select("color_name_snapshot AS color_name, COALESCE(SUM(quantity), 0) AS total_items").
		Group("color_name_snapshot").
		Order("total_items DESC").
		Scan(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func applyFilters(query *gorm.DB, filters ListFilters) *gorm.DB {
	if filters.DealerID != nil && *filters.DealerID != uuid.Nil {
		query = query.Where("orders.dealer_id = ?", *filters.DealerID)
	}
	if statuses := filters.StatusClass.Statuses(); statuses != nil {
		query = query.Where("orders.status IN ?", statuses)
	}
	return query
}
