package models

type HolidayType struct {
	Base
	Name         string `json:"name" gorm:"size:120;not null"`
	Description  string `json:"description"`
	CoverImageID *uint  `json:"cover_image_id"`
}

func (h *HolidayType) SlugSource() string  { return h.Name }
func (h *HolidayType) DisplayName() string { return h.Name }
