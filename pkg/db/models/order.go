package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/luisrojasb/doorline-backend/pkg/enums"
)

// Order is the dealer-owned aggregate; one status applies to every item.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DealerID  uuid.UUID         `gorm:"column:dealer_id;type:uuid;not null"`
	Status    enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'received'"`
	Items     []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
