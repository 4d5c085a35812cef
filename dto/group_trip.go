package dto

import "travelcms/models"

type CreateGroupTripRequest struct {
	Name            string  `json:"name" binding:"required,min=2,max=200"`
	Description     string  `json:"description,omitempty"`
	PackageID       *uint   `json:"package_id,omitempty"`
	StartDate       string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate         string  `json:"end_date" binding:"required,datetime=2006-01-02"`
	Price           float64 `json:"price,omitempty" binding:"min=0"`
	MaxParticipants int     `json:"max_participants,omitempty" binding:"min=0"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

func (r CreateGroupTripRequest) NewModel() models.GroupTrip {
	g := models.GroupTrip{
		Name:            r.Name,
		Description:     r.Description,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Price:           r.Price,
		MaxParticipants: r.MaxParticipants,
	}
	setRef(&g.PackageID, r.PackageID)
	g.IsActive = activeOrDefault(r.IsActive)
	return g
}

type UpdateGroupTripRequest struct {
	Name            *string  `json:"name,omitempty" binding:"omitempty,min=2,max=200"`
	Description     *string  `json:"description,omitempty"`
	PackageID       *uint    `json:"package_id,omitempty"`
	StartDate       *string  `json:"start_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	EndDate         *string  `json:"end_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Price           *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	MaxParticipants *int     `json:"max_participants,omitempty" binding:"omitempty,min=0"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

func (r UpdateGroupTripRequest) ApplyTo(g *models.GroupTrip) {
	setString(&g.Name, r.Name)
	setString(&g.Description, r.Description)
	setRef(&g.PackageID, r.PackageID)
	setString(&g.StartDate, r.StartDate)
	setString(&g.EndDate, r.EndDate)
	setFloat(&g.Price, r.Price)
	setInt(&g.MaxParticipants, r.MaxParticipants)
	setBool(&g.IsActive, r.IsActive)
}
