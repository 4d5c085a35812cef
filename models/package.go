package models

type Package struct {
	Base
	Name          string  `json:"name" gorm:"size:200;not null"`
	Description   string  `json:"description"`
	CountryID     uint    `json:"country_id" gorm:"index"`
	HolidayTypeID *uint   `json:"holiday_type_id" gorm:"index"`
	DurationDays  int     `json:"duration_days"`
	Price         float64 `json:"price"`
	CoverImageID  *uint   `json:"cover_image_id"`
}

func (p *Package) SlugSource() string  { return p.Name }
func (p *Package) DisplayName() string { return p.Name }
