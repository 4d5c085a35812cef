package dto

import "travelcms/models"

type CreatePackageRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=200"`
	Description   string  `json:"description,omitempty"`
	CountryID     uint    `json:"country_id" binding:"required"`
	HolidayTypeID *uint   `json:"holiday_type_id,omitempty"`
	DurationDays  int     `json:"duration_days,omitempty" binding:"min=0"`
	Price         float64 `json:"price,omitempty" binding:"min=0"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

func (r CreatePackageRequest) NewModel() models.Package {
	p := models.Package{
		Name:         r.Name,
		Description:  r.Description,
		CountryID:    r.CountryID,
		DurationDays: r.DurationDays,
		Price:        r.Price,
	}
	setRef(&p.HolidayTypeID, r.HolidayTypeID)
	p.IsActive = activeOrDefault(r.IsActive)
	return p
}

type UpdatePackageRequest struct {
	Name          *string  `json:"name,omitempty" binding:"omitempty,min=2,max=200"`
	Description   *string  `json:"description,omitempty"`
	CountryID     *uint    `json:"country_id,omitempty" binding:"omitempty,gt=0"`
	HolidayTypeID *uint    `json:"holiday_type_id,omitempty"`
	DurationDays  *int     `json:"duration_days,omitempty" binding:"omitempty,min=0"`
	Price         *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

func (r UpdatePackageRequest) ApplyTo(p *models.Package) {
	setString(&p.Name, r.Name)
	setString(&p.Description, r.Description)
	setUint(&p.CountryID, r.CountryID)
	setRef(&p.HolidayTypeID, r.HolidayTypeID)
	setInt(&p.DurationDays, r.DurationDays)
	setFloat(&p.Price, r.Price)
	setBool(&p.IsActive, r.IsActive)
}
