package models

import "time"

// Base carries the columns every catalog entity shares.
type Base struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Slug      string    `json:"slug" gorm:"size:191;not null;uniqueIndex"`
	IsActive  bool      `json:"is_active" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (b *Base) Meta() *Base { return b }

// Record is implemented by every catalog model through its embedded Base.
type Record interface {
	Meta() *Base
	// SlugSource is the text a new slug is derived from.
	SlugSource() string
}

// Named exposes the display name printed in tables.
type Named interface {
	DisplayName() string
}
