package models

import (
	"time"
)

type Image struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	URL       string    `gorm:"not null" json:"url"`
	Size      int64     `gorm:"not null" json:"size"`
	Type      string    `gorm:"size:100" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
