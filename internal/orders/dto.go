package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/luisrojasb/doorline-backend/pkg/enums"
)

// NewItem carries one cart line into order placement. The design/color fields
// are the snapshot values resolved at selection time, not catalog references.
type NewItem struct {
	DesignName  string
	DesignImage string
	ColorName   string
	Width       float64
	Height      float64
	Thickness   enums.Thickness
	Quantity    int
	HasLock     bool
	HasVent     bool
}

// ListFilters describe the inputs supported by the order listings.
type ListFilters struct {
	DealerID    *uuid.UUID
	StatusClass enums.StatusFilter
}

// OrderSummary exposes the aggregated fields returned in the order list.
type OrderSummary struct {
	ID         uuid.UUID         `json:"id"`
	DealerID   uuid.UUID         `json:"dealer_id"`
	Status     enums.OrderStatus `json:"status"`
	TotalItems int               `json:"total_items"`
	CreatedAt  time.Time         `json:"created_at"`
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// DealerGroup aggregates order volume per dealer.
type DealerGroup struct {
	DealerID    uuid.UUID `json:"dealer_id"`
	DealerName  string    `json:"dealer_name"`
	TotalOrders int       `json:"total_orders"`
	TotalItems  int       `json:"total_items"`
}

// DesignGroup aggregates item volume per design snapshot name.
type DesignGroup struct {
	DesignName string `json:"design_name"`
	TotalItems int    `json:"total_items"`
}

// ColorGroup aggregates item volume per color snapshot name.
type ColorGroup struct {
	ColorName  string `json:"color_name"`
	TotalItems int    `json:"total_items"`
}

// Grouping is the read-model response for the group-by views. Only the slice
// matching the requested key is populated.
type Grouping struct {
	GroupBy enums.GroupBy  `json:"group_by"`
	Orders  []OrderSummary `json:"orders,omitempty"`
	Dealers []DealerGroup  `json:"dealers,omitempty"`
	Designs []DesignGroup  `json:"designs,omitempty"`
	Colors  []ColorGroup   `json:"colors,omitempty"`
}
