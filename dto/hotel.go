package dto

import (
	"gorm.io/datatypes"

	"travelcms/models"
)

type CreateHotelRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=200"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address,omitempty" binding:"max=300"`
	City        string   `json:"city,omitempty" binding:"max=120"`
	CountryID   uint     `json:"country_id" binding:"required"`
	HotelTypeID *uint    `json:"hotel_type_id,omitempty"`
	Stars       int      `json:"stars,omitempty" binding:"omitempty,min=1,max=5"`
	Latitude    float64  `json:"latitude,omitempty" binding:"min=-90,max=90"`
	Longitude   float64  `json:"longitude,omitempty" binding:"min=-180,max=180"`
	Amenities   []string `json:"amenities,omitempty" binding:"max=50"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

func (r CreateHotelRequest) NewModel() models.Hotel {
	h := models.Hotel{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		City:        r.City,
		CountryID:   r.CountryID,
		Stars:       r.Stars,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Amenities:   datatypes.JSONSlice[string](r.Amenities),
	}
	setRef(&h.HotelTypeID, r.HotelTypeID)
	h.IsActive = activeOrDefault(r.IsActive)
	return h
}

type UpdateHotelRequest struct {
	Name        *string   `json:"name,omitempty" binding:"omitempty,min=2,max=200"`
	Description *string   `json:"description,omitempty"`
	Address     *string   `json:"address,omitempty" binding:"omitempty,max=300"`
	City        *string   `json:"city,omitempty" binding:"omitempty,max=120"`
	CountryID   *uint     `json:"country_id,omitempty" binding:"omitempty,gt=0"`
	HotelTypeID *uint     `json:"hotel_type_id,omitempty"`
	Stars       *int      `json:"stars,omitempty" binding:"omitempty,min=1,max=5"`
	Latitude    *float64  `json:"latitude,omitempty" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64  `json:"longitude,omitempty" binding:"omitempty,min=-180,max=180"`
	Amenities   *[]string `json:"amenities,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
}

func (r UpdateHotelRequest) ApplyTo(h *models.Hotel) {
	setString(&h.Name, r.Name)
	setString(&h.Description, r.Description)
	setString(&h.Address, r.Address)
	setString(&h.City, r.City)
	setUint(&h.CountryID, r.CountryID)
	setRef(&h.HotelTypeID, r.HotelTypeID)
	setInt(&h.Stars, r.Stars)
	setFloat(&h.Latitude, r.Latitude)
	setFloat(&h.Longitude, r.Longitude)
	if r.Amenities != nil {
		h.Amenities = datatypes.JSONSlice[string](*r.Amenities)
	}
	setBool(&h.IsActive, r.IsActive)
}
