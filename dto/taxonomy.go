package dto

import "travelcms/models"

// NamedFields is the payload shared by the lookup kinds.
type NamedFields struct {
	Name        string `json:"name" binding:"required,min=2,max=120"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// NamedPatch is the partial form of NamedFields.
type NamedPatch struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=120"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (p NamedPatch) apply(name, description *string, active *bool) {
	setString(name, p.Name)
	setString(description, p.Description)
	setBool(active, p.IsActive)
}

type CreateHolidayTypeRequest NamedFields

func (r CreateHolidayTypeRequest) NewModel() models.HolidayType {
	m := models.HolidayType{Name: r.Name, Description: r.Description}
	m.IsActive = activeOrDefault(r.IsActive)
	return m
}

type UpdateHolidayTypeRequest NamedPatch

func (r UpdateHolidayTypeRequest) ApplyTo(m *models.HolidayType) {
	NamedPatch(r).apply(&m.Name, &m.Description, &m.IsActive)
}

type CreateHotelTypeRequest NamedFields

func (r CreateHotelTypeRequest) NewModel() models.HotelType {
	m := models.HotelType{Name: r.Name, Description: r.Description}
	m.IsActive = activeOrDefault(r.IsActive)
	return m
}

type UpdateHotelTypeRequest NamedPatch

func (r UpdateHotelTypeRequest) ApplyTo(m *models.HotelType) {
	NamedPatch(r).apply(&m.Name, &m.Description, &m.IsActive)
}

type CreateInclusionRequest NamedFields

func (r CreateInclusionRequest) NewModel() models.Inclusion {
	m := models.Inclusion{Name: r.Name, Description: r.Description}
	m.IsActive = activeOrDefault(r.IsActive)
	return m
}

type UpdateInclusionRequest NamedPatch

func (r UpdateInclusionRequest) ApplyTo(m *models.Inclusion) {
	NamedPatch(r).apply(&m.Name, &m.Description, &m.IsActive)
}

type CreateExclusionRequest NamedFields

func (r CreateExclusionRequest) NewModel() models.Exclusion {
	m := models.Exclusion{Name: r.Name, Description: r.Description}
	m.IsActive = activeOrDefault(r.IsActive)
	return m
}

type UpdateExclusionRequest NamedPatch

func (r UpdateExclusionRequest) ApplyTo(m *models.Exclusion) {
	NamedPatch(r).apply(&m.Name, &m.Description, &m.IsActive)
}
