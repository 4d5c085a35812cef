package models

// GroupTrip is a scheduled departure of a package. Dates are YYYY-MM-DD.
type GroupTrip struct {
	Base
	Name            string  `json:"name" gorm:"size:200;not null"`
	Description     string  `json:"description"`
	PackageID       *uint   `json:"package_id" gorm:"index"`
	StartDate       string  `json:"start_date" gorm:"size:10;index"`
	EndDate         string  `json:"end_date" gorm:"size:10;index"`
	Price           float64 `json:"price"`
	MaxParticipants int     `json:"max_participants"`
	CoverImageID    *uint   `json:"cover_image_id"`
}

func (g *GroupTrip) SlugSource() string  { return g.Name }
func (g *GroupTrip) DisplayName() string { return g.Name }
