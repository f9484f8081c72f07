// Package models defines the persisted entities shared by the services and
// the store implementations.
package models

import "time"

// CoreModel carries the columns every table has.
type CoreModel struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
