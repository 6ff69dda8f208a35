// Package domain defines the core persistence models for the application.
// These types are used by GORM for database schema mapping and are shared
// across the repository and service layers.
package domain

import "time"

// ProcessedDelivery records a webhook delivery that has already been
// handled, keyed by (chat_id, delivery_id). Message sources re-deliver
// updates after transport hiccups; recording the delivery ID lets the
// ingestion layer short-circuit replays instead of processing the same
// inbound message twice.
type ProcessedDelivery struct {
	ID         string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	ChatID     int64     `gorm:"not null;uniqueIndex:ux_chat_delivery,priority:1"`
	DeliveryID string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_chat_delivery,priority:2"`
	Outcome    string    `gorm:"type:TEXT NOT NULL"`
	CreatedAt  time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (ProcessedDelivery) TableName() string { return "processed_deliveries" }
