package models

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is a distributor broadcast shown on every dealer dashboard.
type Announcement struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DistributorID uuid.UUID `gorm:"column:distributor_id;type:uuid;not null"`
	Title         string    `gorm:"column:title;not null"`
	Body          string    `gorm:"column:body;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}
