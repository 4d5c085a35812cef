package models

import "gorm.io/datatypes"

type Hotel struct {
	Base
	Name         string                      `json:"name" gorm:"size:200;not null"`
	Description  string                      `json:"description"`
	Address      string                      `json:"address"`
	City         string                      `json:"city" gorm:"index"`
	CountryID    uint                        `json:"country_id" gorm:"index"`
	HotelTypeID  *uint                       `json:"hotel_type_id" gorm:"index"`
	Stars        int                         `json:"stars"`
	Latitude     float64                     `json:"latitude"`
	Longitude    float64                     `json:"longitude"`
	Amenities    datatypes.JSONSlice[string] `json:"amenities"`
	CoverImageID *uint                       `json:"cover_image_id"`
}

func (h *Hotel) SlugSource() string  { return h.Name }
func (h *Hotel) DisplayName() string { return h.Name }
