package models

type Attraction struct {
	Base
	Name            string  `json:"name" gorm:"size:200;not null"`
	Description     string  `json:"description"`
	City            string  `json:"city" gorm:"index"`
	CountryID       uint    `json:"country_id" gorm:"index"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	CoverImageID    *uint   `json:"cover_image_id"`
}

func (a *Attraction) SlugSource() string  { return a.Name }
func (a *Attraction) DisplayName() string { return a.Name }
