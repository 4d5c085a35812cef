package models

import "time"

// Relationship links an owning hotel or attraction to a package or group trip.
type Relationship struct {
	ID          uint      `gorm:"primaryKey"`
	OwnerKind   Kind      `gorm:"size:32;not null;uniqueIndex:idx_relationship_tuple"`
	OwnerID     uint      `gorm:"not null;uniqueIndex:idx_relationship_tuple"`
	RelatedKind Kind      `gorm:"size:32;not null;uniqueIndex:idx_relationship_tuple"`
	RelatedID   uint      `gorm:"not null;uniqueIndex:idx_relationship_tuple"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// Relationships is the read shape of an owner's links.
type Relationships struct {
	PackageIDs   []uint `json:"package_ids"`
	GroupTripIDs []uint `json:"group_trip_ids"`
}

func (Relationship) TableName() string { return "relationships" }
