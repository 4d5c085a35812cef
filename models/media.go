package models

import "time"

// Media is one gallery image owned by an entity.
type Media struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EntityType Kind      `json:"entity_type" gorm:"size:32;not null;index:idx_media_owner"`
	EntityID   uint      `json:"entity_id" gorm:"not null;index:idx_media_owner"`
	FilePath   string    `json:"file_path" gorm:"not null"`
	AltText    *string   `json:"alt_text"`
	Caption    *string   `json:"caption"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Media) TableName() string { return "media" }
