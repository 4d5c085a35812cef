package dto

import "travelcms/models"

type CreateAttractionRequest struct {
	Name            string  `json:"name" binding:"required,min=2,max=200"`
	Description     string  `json:"description,omitempty"`
	City            string  `json:"city,omitempty" binding:"max=120"`
	CountryID       uint    `json:"country_id" binding:"required"`
	DurationMinutes int     `json:"duration_minutes,omitempty" binding:"min=0"`
	Price           float64 `json:"price,omitempty" binding:"min=0"`
	Latitude        float64 `json:"latitude,omitempty" binding:"min=-90,max=90"`
	Longitude       float64 `json:"longitude,omitempty" binding:"min=-180,max=180"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

func (r CreateAttractionRequest) NewModel() models.Attraction {
	a := models.Attraction{
		Name:            r.Name,
		Description:     r.Description,
		City:            r.City,
		CountryID:       r.CountryID,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
	}
	a.IsActive = activeOrDefault(r.IsActive)
	return a
}

type UpdateAttractionRequest struct {
	Name            *string  `json:"name,omitempty" binding:"omitempty,min=2,max=200"`
	Description     *string  `json:"description,omitempty"`
	City            *string  `json:"city,omitempty" binding:"omitempty,max=120"`
	CountryID       *uint    `json:"country_id,omitempty" binding:"omitempty,gt=0"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" binding:"omitempty,min=0"`
	Price           *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	Latitude        *float64 `json:"latitude,omitempty" binding:"omitempty,min=-90,max=90"`
	Longitude       *float64 `json:"longitude,omitempty" binding:"omitempty,min=-180,max=180"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

func (r UpdateAttractionRequest) ApplyTo(a *models.Attraction) {
	setString(&a.Name, r.Name)
	setString(&a.Description, r.Description)
	setString(&a.City, r.City)
	setUint(&a.CountryID, r.CountryID)
	setInt(&a.DurationMinutes, r.DurationMinutes)
	setFloat(&a.Price, r.Price)
	setFloat(&a.Latitude, r.Latitude)
	setFloat(&a.Longitude, r.Longitude)
	setBool(&a.IsActive, r.IsActive)
}
