package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/luisrojasb/doorline-backend/pkg/enums"
)

// OrderItem is one manufactured-unit line within an order. The snapshot
// columns are copied from the catalog at order creation and carry no relation
// back to the catalog tables, so later catalog edits never touch them.
type OrderItem struct {
	OrderID             uuid.UUID       `gorm:"column:order_id;type:uuid;primaryKey"`
	LineIndex           int             `gorm:"column:line_index;primaryKey"`
	DesignNameSnapshot  string          `gorm:"column:design_name_snapshot;not null"`
	DesignImageSnapshot string          `gorm:"column:design_image_snapshot;not null"`
	ColorNameSnapshot   string          `gorm:"column:color_name_snapshot;not null"`
	Width               float64         `gorm:"column:width;not null"`
	Height              float64         `gorm:"column:height;not null"`
	Thickness           enums.Thickness `gorm:"column:thickness;type:thickness;not null"`
	Quantity            int             `gorm:"column:quantity;not null"`
	HasLock             bool            `gorm:"column:has_lock;not null;default:false"`
	HasVent             bool            `gorm:"column:has_vent;not null;default:false"`
	CreatedAt           time.Time       `gorm:"column:created_at;autoCreateTime"`
}
