package models

import (
	"time"

	"github.com/google/uuid"
)

// Dealer is an end customer placing door orders, managed by a distributor.
type Dealer struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DistributorID uuid.UUID  `gorm:"column:distributor_id;type:uuid;not null"`
	Name          string     `gorm:"column:name;not null"`
	Phone         *string    `gorm:"column:phone"`
	City          *string    `gorm:"column:city"`
	Active        bool       `gorm:"column:active;not null;default:true"`
	DeactivatedAt *time.Time `gorm:"column:deactivated_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
